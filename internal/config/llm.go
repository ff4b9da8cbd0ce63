package config

import (
	"fmt"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// LLMConfig holds the model provider settings. Keys are never serialized.
type LLMConfig struct {
	// Provider is one of openai, anthropic, gemini or mock. Empty means
	// the first provider with a key, falling back to mock.
	Provider string `yaml:"provider"`

	OpenAIKey    string `yaml:"-"`
	AnthropicKey string `yaml:"-"`
	GeminiKey    string `yaml:"-"`

	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutMS   int     `yaml:"timeout_ms"`

	// RPM and Burst pace outbound model calls
	RPM   int `yaml:"rpm"`
	Burst int `yaml:"burst"`
}

// DefaultLLMConfig mirrors the parameters the analyzer has always used
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Temperature: 0.7,
		MaxTokens:   2000,
		TimeoutMS:   60000,
		RPM:         60,
		Burst:       5,
	}
}

// ResolvedProvider returns the provider that will actually serve requests
func (c *LLMConfig) ResolvedProvider() string {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	if p == "" {
		switch {
		case c.OpenAIKey != "":
			return ProviderOpenAI
		case c.AnthropicKey != "":
			return ProviderAnthropic
		case c.GeminiKey != "":
			return ProviderGemini
		default:
			return ProviderMock
		}
	}
	if p != ProviderMock && c.keyFor(p) == "" {
		return ProviderMock
	}
	return p
}

// APIKey returns the key for the resolved provider
func (c *LLMConfig) APIKey() string {
	return c.keyFor(c.ResolvedProvider())
}

// IsEnabled returns true if a real model API is configured
func (c *LLMConfig) IsEnabled() bool {
	return c.ResolvedProvider() != ProviderMock
}

// ModelName returns the configured model or the provider default
func (c *LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.ResolvedProvider() {
	case ProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderMock:
		return "mock"
	default:
		return "gpt-4"
	}
}

// ModelEndpoint returns the Gemini generateContent endpoint for a model
func (c *LLMConfig) ModelEndpoint(model string) string {
	base := c.BaseURL
	if base == "" {
		base = geminiBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + model + ":generateContent"
}

func (c *LLMConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "", ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderMock:
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("llm max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.RPM < 1 {
		return fmt.Errorf("llm rpm must be positive, got %d", c.RPM)
	}
	return nil
}

func (c *LLMConfig) keyFor(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderAnthropic:
		return c.AnthropicKey
	case ProviderGemini:
		return c.GeminiKey
	}
	return ""
}
