package service

import (
	"context"
	"realitycheck/internal/analysis"
	"realitycheck/internal/llm"
	"realitycheck/internal/logger"
	"realitycheck/internal/model"
	"realitycheck/internal/quota"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/errors"
	"golang.org/x/time/rate"
)

// Error reasons surfaced to callers
const (
	ReasonInvalidInput      = "invalid_input"
	ReasonRateLimited       = "rate_limited"
	ReasonUpstreamAuthError = "upstream_auth_error"
	ReasonGenericFailure    = "generic_failure"
)

var (
	ErrProductRequired = errors.BadRequest(ReasonInvalidInput, "Product name is required")
	ErrProductTooLong  = errors.BadRequest(ReasonInvalidInput, "Product name must be 50 characters or less")
	ErrHourlyLimit     = errors.New(429, ReasonRateLimited, "Rate limit exceeded. Please try again later.")
	ErrDailyLimit      = errors.New(429, ReasonRateLimited, "Daily limit reached. Please come back tomorrow.")
	ErrProviderLimit   = errors.New(429, ReasonRateLimited, "AI provider rate limit exceeded. Please try again later.")
	ErrProviderAuth    = errors.InternalServer(ReasonUpstreamAuthError, "Invalid API key configuration.")
	ErrGeneric         = errors.InternalServer(ReasonGenericFailure, "An error occurred while processing your request.")
)

// Caller identifies who is asking, for quota purposes
type Caller struct {
	IP        string
	VisitorID string
}

func (c Caller) ipKey() string {
	if c.IP == "" {
		return "ip:unknown"
	}
	return "ip:" + c.IP
}

// dailyKey prefers the visitor id and falls back to the client IP
func (c Caller) dailyKey() string {
	if c.VisitorID != "" {
		return "visitor:" + c.VisitorID
	}
	return c.ipKey()
}

// AnalysisService runs one product through prompt, model and parser
type AnalysisService struct {
	client llm.Client
	params llm.Params
	hourly quota.Limiter
	daily  quota.Limiter
	pacer  *rate.Limiter
	now    func() time.Time
}

// NewAnalysisService creates a new analysis service. Either limiter may be
// nil to disable that quota; a nil pacer disables outbound pacing.
func NewAnalysisService(client llm.Client, params llm.Params, hourly, daily quota.Limiter, pacer *rate.Limiter) *AnalysisService {
	return &AnalysisService{
		client: client,
		params: params,
		hourly: hourly,
		daily:  daily,
		pacer:  pacer,
		now:    time.Now,
	}
}

// NewPacer builds the outbound limiter from a requests-per-minute budget
func NewPacer(rpm, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// Analyze validates the input, applies quotas, calls the model once and
// parses the answer.
func (s *AnalysisService) Analyze(ctx context.Context, caller Caller, product string, opts model.AnalysisOptions) (*model.Analysis, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, ErrProductRequired
	}
	if utf8.RuneCountInString(product) > model.MaxProductNameLength {
		return nil, ErrProductTooLong
	}

	if !s.allowed(ctx, s.hourly, caller.ipKey()) {
		return nil, ErrHourlyLimit
	}
	if !s.allowed(ctx, s.daily, caller.dailyKey()) {
		return nil, ErrDailyLimit
	}
	s.record(ctx, s.hourly, caller.ipKey())
	s.record(ctx, s.daily, caller.dailyKey())

	prompt := analysis.BuildPrompt(product, opts)

	if s.pacer != nil {
		if err := s.pacer.Wait(ctx); err != nil {
			logger.Log.Warnf("outbound pacing aborted: %v", err)
			return nil, ErrGeneric.WithCause(err)
		}
	}

	start := time.Now()
	raw, err := s.client.Generate(ctx, prompt, s.params)
	if err != nil {
		logger.Log.Errorf("llm %s failed for %q: %v", s.client.Name(), product, err)
		return nil, mapLLMError(err)
	}
	logger.Log.Infof("llm %s answered for %q in %s (%d bytes)", s.client.Name(), product, time.Since(start).Round(time.Millisecond), len(raw))

	return &model.Analysis{
		Product:     product,
		Options:     opts,
		Result:      analysis.Parse(raw),
		Raw:         raw,
		Provider:    s.client.Name(),
		Model:       s.params.Model,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// AnalyzeText parses an already generated response
func (s *AnalysisService) AnalyzeText(raw string) *model.AnalysisResult {
	return analysis.Parse(raw)
}

// allowed fails open: a broken quota backend must not take the service down
func (s *AnalysisService) allowed(ctx context.Context, l quota.Limiter, key string) bool {
	if l == nil {
		return true
	}
	ok, err := l.Check(ctx, key)
	if err != nil {
		logger.Log.Warnf("quota check for %s failed, allowing: %v", key, err)
		return true
	}
	return ok
}

func (s *AnalysisService) record(ctx context.Context, l quota.Limiter, key string) {
	if l == nil {
		return
	}
	if err := l.Record(ctx, key); err != nil {
		logger.Log.Warnf("quota record for %s failed: %v", key, err)
	}
}

func mapLLMError(err error) error {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return ErrProviderLimit.WithCause(err)
	case errors.Is(err, llm.ErrUnauthorized):
		return ErrProviderAuth.WithCause(err)
	default:
		return ErrGeneric.WithCause(err)
	}
}
