package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// OpenAIClient talks to any OpenAI-compatible chat endpoint through eino
type OpenAIClient struct {
	chatModel model.ChatModel
}

// NewOpenAIClient creates an eino chat model. An empty baseURL means the
// public OpenAI API.
func NewOpenAIClient(ctx context.Context, baseURL, apiKey, modelName string, timeout time.Duration) (*OpenAIClient, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}
	return &OpenAIClient{chatModel: chatModel}, nil
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}

	opts := []model.Option{
		model.WithTemperature(float32(params.Temperature)),
		model.WithMaxTokens(params.MaxTokens),
	}
	if params.Model != "" {
		opts = append(opts, model.WithModel(params.Model))
	}

	resp, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", classifyMessage(err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}

// classifyMessage inspects the error text; the eino client does not expose
// the HTTP status as a typed field.
func classifyMessage(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "invalid api key"):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return fmt.Errorf("openai generate: %w", err)
}
