package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/Nyssa/internal/logger"
)

// OpenAIClient serves profiles pointing at OpenAI-compatible endpoints.
type OpenAIClient struct {
	client *openai.Client
	opts   Options
}

func NewOpenAIClient(apiKey, baseURL string, opts Options, timeout time.Duration) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		opts:   opts,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) Outcome {
	req := openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.opts.Temperature),
		MaxTokens:   c.opts.MaxOutputTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			logger.Warn("openai api error", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
			return Failed(apiErr.Message)
		}
		logger.Error("openai request failed", "error", err)
		return Unreachable(fmt.Errorf("chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return Succeeded(NoResponseText)
	}
	if resp.Choices[0].Message.Content == "" {
		return Succeeded(EmptyText)
	}
	return Succeeded(resp.Choices[0].Message.Content)
}
