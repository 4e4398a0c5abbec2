package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rorical/Nyssa/internal/logger"
)

type GeminiClient struct {
	apiKey     string
	baseURL    string
	opts       Options
	httpClient *http.Client
}

func NewGeminiClient(apiKey, baseURL string, opts Options, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       opts,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) Outcome {
	body, err := c.call(ctx, prompt)
	if err != nil {
		logger.Error("gemini request failed", "error", err)
		return Unreachable(err)
	}

	outcome, err := interpretGemini(body)
	if err != nil {
		logger.Error("gemini response unreadable", "error", err)
		return Unreachable(err)
	}
	if outcome.Kind == APIError {
		logger.Warn("gemini api error", "message", outcome.Message)
	}
	return outcome
}

func (c *GeminiClient) call(ctx context.Context, prompt string) ([]byte, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.opts.Temperature,
			MaxOutputTokens: c.opts.MaxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.opts.Model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("gemini response", "status", resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// interpretGemini maps a generateContent payload onto an Outcome. Only a
// body that is not JSON at all is an error.
func interpretGemini(body []byte) (Outcome, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Outcome{}, fmt.Errorf("parse response: %w", err)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		parts := resp.Candidates[0].Content.Parts
		if parts == nil {
			// content without a parts field
			return Succeeded(NoResponseText), nil
		}
		if len(parts) == 0 || parts[0].Text == "" {
			return Succeeded(EmptyText), nil
		}
		return Succeeded(parts[0].Text), nil
	}
	if resp.Error != nil {
		return Failed(resp.Error.Message), nil
	}
	return Succeeded(NoResponseText), nil
}
