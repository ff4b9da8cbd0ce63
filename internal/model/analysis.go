package model

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Tone is the rhetorical stance applied to the critique
type Tone string

const (
	ToneCritical Tone = "critical"
	ToneNeutral  Tone = "neutral"
	ToneFriendly Tone = "friendly"
)

// Focus is the thematic emphasis of the analysis
type Focus string

const (
	FocusInnovation Focus = "innovation"
	FocusUX         Focus = "UX"
	FocusAI         Focus = "AI"
)

const (
	DefaultResultLimit = 5
	MinResultLimit     = 1
	MaxResultLimit     = 15

	// MaxProductNameLength is counted in characters, not bytes
	MaxProductNameLength = 50
)

// AnalysisOptions are the caller-selected knobs for one analysis.
// ResultLimit is nil when the caller did not send a usable number.
type AnalysisOptions struct {
	Tone        Tone  `json:"tone"`
	Focus       Focus `json:"focus"`
	ResultLimit *int  `json:"limit,omitempty"`
}

// UnmarshalJSON never rejects options: a non-object value, a non-string tone
// or focus and an unusable limit are all treated as absent.
func (o *AnalysisOptions) UnmarshalJSON(data []byte) error {
	*o = AnalysisOptions{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	o.Tone = Tone(stringValue(fields["tone"]))
	o.Focus = Focus(stringValue(fields["focus"]))
	o.ResultLimit = parseLimit(fields["limit"])
	return nil
}

func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func parseLimit(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] != '"' {
		if f, ok := parseNumber(string(raw)); ok {
			return truncLimit(f)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, ok := parseNumber(strings.TrimSpace(s)); ok {
			return truncLimit(f)
		}
	}
	return nil
}

// parseNumber accepts out-of-range literals as +/-Inf so they clamp instead
// of falling back to the default.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// truncLimit keeps huge values representable; clamping happens at point of use
func truncLimit(f float64) *int {
	switch {
	case f > math.MaxInt32:
		f = math.MaxInt32
	case f < math.MinInt32:
		f = math.MinInt32
	}
	n := int(f)
	return &n
}

// EffectiveLimit returns the result limit clamped to [MinResultLimit, MaxResultLimit]
func (o AnalysisOptions) EffectiveLimit() int {
	if o.ResultLimit == nil {
		return DefaultResultLimit
	}
	n := *o.ResultLimit
	if n < MinResultLimit {
		return MinResultLimit
	}
	if n > MaxResultLimit {
		return MaxResultLimit
	}
	return n
}

// Limit is a convenience for building options with an explicit result limit
func Limit(n int) *int {
	return &n
}

// ComparisonRow is one competing tool extracted from the model's table
type ComparisonRow struct {
	Name string `json:"name"`
	Pros string `json:"pros"`
	Cons string `json:"cons"`
	Gaps string `json:"gaps"`
}

// ProductIdea is one generated product suggestion
type ProductIdea struct {
	Title    string   `json:"title"`
	Features []string `json:"features"`
}

// AnalysisResult is the structured form of one model response
type AnalysisResult struct {
	Rows             []ComparisonRow `json:"tools"`
	Summary          string          `json:"summary"`
	Ideas            []ProductIdea   `json:"ideas"`
	RenderedMarkdown string          `json:"markdown"`
}

// Analysis is what callers get back from one analyze request
type Analysis struct {
	Product     string          `json:"product"`
	Options     AnalysisOptions `json:"options"`
	Result      *AnalysisResult `json:"result"`
	Raw         string          `json:"raw"`
	Provider    string          `json:"provider"`
	Model       string          `json:"model"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// AnalyzeRequest is the request body for POST /v1/analyze
type AnalyzeRequest struct {
	Product string          `json:"product"`
	Options AnalysisOptions `json:"options"`
}

// ParseRequest is the request body for POST /v1/parse
type ParseRequest struct {
	Text string `json:"text"`
}
