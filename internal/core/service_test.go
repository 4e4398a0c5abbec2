package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/Nyssa/internal/llm"
	"github.com/Rorical/Nyssa/internal/models"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	outcome llm.Outcome
	block   chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) llm.Outcome {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return g.outcome
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type fakeNotifier struct {
	mu       sync.Mutex
	titles   []string
	messages []string
}

func (n *fakeNotifier) Notify(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
}

func newTestService(gen llm.Generator, notifier Notifier) (*ChatService, *[]ChatSnapshot) {
	var mu sync.Mutex
	snapshots := []ChatSnapshot{}
	svc := NewChatService(gen, "PREAMBLE", notifier, func(s ChatSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, s)
	})
	return svc, &snapshots
}

func TestChatService_SendMessage_Success(t *testing.T) {
	gen := &fakeGenerator{outcome: llm.Succeeded("Hello")}
	notifier := &fakeNotifier{}
	svc, snapshots := newTestService(gen, notifier)

	log, outcome, err := svc.SendMessage(context.Background(), "  when is my next period?  ")
	require.NoError(t, err)

	assert.Equal(t, llm.Success, outcome.Kind)
	require.Len(t, log, 2)
	assert.Equal(t, models.User, log[0].Type)
	assert.Equal(t, "when is my next period?", log[0].Content)
	assert.Equal(t, models.Assistant, log[1].Type)
	assert.Equal(t, "Hello", log[1].Content)
	assert.NotEqual(t, log[0].ID, log[1].ID)

	require.Equal(t, 1, gen.Calls())
	assert.Equal(t, "PREAMBLE\n\nUser: when is my next period?", gen.prompts[0])
	assert.Empty(t, notifier.titles)

	// user entry is published before the reply
	require.Len(t, *snapshots, 2)
	assert.Len(t, (*snapshots)[0].Messages, 1)
	assert.True(t, (*snapshots)[0].IsProcessing)
	assert.Len(t, (*snapshots)[1].Messages, 2)
	assert.False(t, (*snapshots)[1].IsProcessing)
}

func TestChatService_SendMessage_GrowsByTwo(t *testing.T) {
	outcomes := []llm.Outcome{
		llm.Succeeded("a"),
		llm.Failed("quota exceeded"),
		llm.Unreachable(errors.New("dial tcp: refused")),
		llm.Succeeded(llm.EmptyText),
	}
	gen := &fakeGenerator{}
	svc, _ := newTestService(gen, &fakeNotifier{})

	for i, outcome := range outcomes {
		gen.outcome = outcome
		log, _, err := svc.SendMessage(context.Background(), "hi")
		require.NoError(t, err)
		assert.Len(t, log, 2*(i+1))
	}
}

func TestChatService_SendMessage_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		gen := &fakeGenerator{outcome: llm.Succeeded("x")}
		svc, snapshots := newTestService(gen, &fakeNotifier{})

		log, _, err := svc.SendMessage(context.Background(), input)

		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, log)
		assert.Equal(t, 0, gen.Calls())
		assert.Empty(t, *snapshots)
	}
}

func TestChatService_SendMessage_APIError(t *testing.T) {
	gen := &fakeGenerator{outcome: llm.Failed("quota exceeded")}
	notifier := &fakeNotifier{}
	svc, _ := newTestService(gen, notifier)

	log, outcome, err := svc.SendMessage(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, llm.APIError, outcome.Kind)
	assert.Equal(t, "Error: quota exceeded", log[1].Content)
	assert.Empty(t, notifier.titles)
	assert.Error(t, svc.Snapshot().Error)
}

func TestChatService_SendMessage_TransportError(t *testing.T) {
	gen := &fakeGenerator{outcome: llm.Unreachable(errors.New("connection reset"))}
	notifier := &fakeNotifier{}
	svc, _ := newTestService(gen, notifier)

	log, outcome, err := svc.SendMessage(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, llm.TransportError, outcome.Kind)
	assert.Equal(t, "Sorry, I couldn't process your request. Please try again.", log[1].Content)
	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "Error", notifier.titles[0])
	assert.Equal(t, "Failed to communicate with Gemini API: connection reset", notifier.messages[0])
}

func TestChatService_SendMessage_OneInFlight(t *testing.T) {
	gen := &fakeGenerator{outcome: llm.Succeeded("done"), block: make(chan struct{})}
	svc, _ := newTestService(gen, &fakeNotifier{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, err := svc.SendMessage(context.Background(), "first")
		assert.NoError(t, err)
	}()

	require.Eventually(t, svc.IsProcessing, time.Second, 5*time.Millisecond)
	assert.False(t, svc.CanSend("second"))

	log, _, err := svc.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, ErrRequestInFlight)
	assert.Len(t, log, 1)

	close(gen.block)
	<-done

	assert.True(t, svc.CanSend("second"))
	assert.False(t, svc.CanSend("  "))
	assert.Len(t, svc.Messages(), 2)
	assert.Equal(t, 1, gen.Calls())
}

func TestChatService_ResetDropsLateReply(t *testing.T) {
	gen := &fakeGenerator{outcome: llm.Succeeded("late"), block: make(chan struct{})}
	svc, _ := newTestService(gen, &fakeNotifier{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = svc.SendMessage(context.Background(), "first")
	}()
	require.Eventually(t, svc.IsProcessing, time.Second, 5*time.Millisecond)

	svc.Reset()
	assert.Empty(t, svc.Messages())

	close(gen.block)
	<-done

	assert.Empty(t, svc.Messages())
	assert.False(t, svc.IsProcessing())
}

func TestChatService_WithGeminiPayloads(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"hello", `{"candidates":[{"content":{"parts":[{"text":"Hello"}]}}]}`, "Hello"},
		{"empty parts", `{"candidates":[{"content":{"parts":[]}}]}`, "Empty response"},
		{"error", `{"error":{"message":"quota exceeded"}}`, "Error: quota exceeded"},
		{"error without message", `{"error":{}}`, "Error: Unknown error"},
		{"malformed", `not json`, "Sorry, I couldn't process your request. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			gen := llm.NewGeminiClient("key", server.URL, llm.Options{Model: "gemini-2.0-flash"}, time.Second)
			svc, _ := newTestService(gen, &fakeNotifier{})

			log, _, err := svc.SendMessage(context.Background(), "hi")
			require.NoError(t, err)
			require.Len(t, log, 2)
			assert.Equal(t, tt.expected, log[1].Content)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "Be kind.\n\nUser: hello", BuildPrompt("Be kind.", "hello"))
}
