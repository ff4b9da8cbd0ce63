package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"realitycheck/internal/config"
	"time"
)

// GeminiClient calls the Gemini generateContent REST endpoint directly
type GeminiClient struct {
	config *config.LLMConfig
	client *http.Client
}

// NewGeminiClient creates a Gemini client
func NewGeminiClient(cfg *config.LLMConfig, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

// Generate makes one generateContent request
func (c *GeminiClient) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     params.Temperature,
			"maxOutputTokens": params.MaxTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ModelEndpoint(params.Model), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		if sentinel := classifyStatus(resp.StatusCode); sentinel != nil {
			return "", fmt.Errorf("%w: gemini status %d", sentinel, resp.StatusCode)
		}
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		if text := geminiResp.Candidates[0].Content.Parts[0].Text; text != "" {
			return text, nil
		}
	}

	return "", ErrEmptyResponse
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
