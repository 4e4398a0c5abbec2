package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, status int, body string, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenAIClient_Success(t *testing.T) {
	var seen openai.ChatCompletionRequest
	server := newOpenAIServer(t, http.StatusOK,
		`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Drink water"}}]}`, &seen)
	defer server.Close()

	client := NewOpenAIClient("key", server.URL+"/v1", Options{Model: "gpt-4o-mini", Temperature: 0.7, MaxOutputTokens: 1000}, 5*time.Second)
	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, Success, outcome.Kind)
	assert.Equal(t, "Drink water", outcome.EntryText())
	assert.Equal(t, "gpt-4o-mini", seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, seen.Messages[0].Role)
	assert.Equal(t, "prompt", seen.Messages[0].Content)
	assert.Equal(t, 1000, seen.MaxTokens)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"1","choices":[]}`, nil)
	defer server.Close()

	client := NewOpenAIClient("key", server.URL+"/v1", Options{Model: "m"}, 5*time.Second)
	assert.Equal(t, NoResponseText, client.Generate(context.Background(), "p").EntryText())
}

func TestOpenAIClient_EmptyContent(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"1","choices":[{"message":{"role":"assistant","content":""}}]}`, nil)
	defer server.Close()

	client := NewOpenAIClient("key", server.URL+"/v1", Options{Model: "m"}, 5*time.Second)
	assert.Equal(t, EmptyText, client.Generate(context.Background(), "p").EntryText())
}

func TestOpenAIClient_APIError(t *testing.T) {
	server := newOpenAIServer(t, http.StatusTooManyRequests,
		`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`, nil)
	defer server.Close()

	client := NewOpenAIClient("key", server.URL+"/v1", Options{Model: "m"}, 5*time.Second)
	outcome := client.Generate(context.Background(), "p")

	assert.Equal(t, APIError, outcome.Kind)
	assert.Equal(t, "Error: quota exceeded", outcome.EntryText())
}
