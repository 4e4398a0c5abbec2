package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/Nyssa/internal/models"
)

// ChatState owns the conversation log of one chat screen
type ChatState struct {
	mu           sync.RWMutex
	messages     []models.Message // Single source of truth for the conversation
	isProcessing bool
	lastError    error
	generation   int // Bumped by Reset so late replies skip a cleared log
}

func NewChatState() *ChatState {
	return &ChatState{
		messages:     make([]models.Message, 0),
		isProcessing: false,
		lastError:    nil,
	}
}

func (cs *ChatState) GetMessages() []models.Message {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	result := make([]models.Message, len(cs.messages))
	copy(result, cs.messages)
	return result
}

func (cs *ChatState) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.messages)
}

func (cs *ChatState) IsProcessing() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.isProcessing
}

func (cs *ChatState) GetLastError() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastError
}

// Reset empties the log. A request still in flight keeps the slot until it
// resolves, but its reply is not added to the new log.
func (cs *ChatState) Reset() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.messages = make([]models.Message, 0)
	cs.lastError = nil
	cs.generation++
}

// StartProcessingWithUserMessage atomically claims the single request slot
// and appends the user entry. It returns false, changing nothing, when a
// request is already outstanding. The returned generation must be passed to
// FinishProcessingWithAssistantMessage.
func (cs *ChatState) StartProcessingWithUserMessage(content string) (int, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.isProcessing {
		return cs.generation, false
	}

	cs.isProcessing = true
	cs.lastError = nil
	cs.messages = append(cs.messages, models.Message{
		ID:      uuid.NewString(),
		Content: content,
		Type:    models.User,
	})
	return cs.generation, true
}

// FinishProcessingWithAssistantMessage appends the reply and frees the slot.
// err is the failure behind the reply, if any.
func (cs *ChatState) FinishProcessingWithAssistantMessage(generation int, content string, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = false
	if generation != cs.generation {
		return
	}
	cs.lastError = err
	cs.messages = append(cs.messages, models.Message{
		ID:      uuid.NewString(),
		Content: content,
		Type:    models.Assistant,
	})
}
