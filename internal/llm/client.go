package llm

import (
	"context"
	"errors"
	"fmt"
	"realitycheck/internal/config"
	"time"
)

var (
	// ErrRateLimited means the provider answered HTTP 429
	ErrRateLimited = errors.New("llm: upstream rate limited")
	// ErrUnauthorized means the provider rejected the API key (401/403)
	ErrUnauthorized = errors.New("llm: upstream rejected credentials")
	// ErrEmptyResponse means the call succeeded but carried no text
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Params are the per-call model settings
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client sends one prompt and returns the generated text
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// DefaultParams returns the call parameters for a config
func DefaultParams(cfg config.LLMConfig) Params {
	return Params{
		Model:       cfg.ModelName(),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

// NewClient creates the client for the configured provider. Without an API
// key the mock client is returned.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond

	switch cfg.ResolvedProvider() {
	case config.ProviderOpenAI:
		return NewOpenAIClient(ctx, cfg.BaseURL, cfg.APIKey(), cfg.ModelName(), timeout)
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.APIKey(), cfg.BaseURL), nil
	case config.ProviderGemini:
		return NewGeminiClient(&cfg, timeout), nil
	case config.ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// classifyStatus maps an upstream HTTP status onto the sentinel errors
func classifyStatus(status int) error {
	switch status {
	case 429:
		return ErrRateLimited
	case 401, 403:
		return ErrUnauthorized
	}
	return nil
}
