package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
)

// PromptBroker shows blocking prompts on the UI and routes the pressed
// button back to whoever asked.
type PromptBroker struct {
	eventBus *eventbus.EventBus
	mu       sync.Mutex
	pending  map[string]func(button string)
}

func NewPromptBroker(eb *eventbus.EventBus) *PromptBroker {
	return &PromptBroker{
		eventBus: eb,
		pending:  make(map[string]func(string)),
	}
}

// Show sends the prompt to the UI. onPress may be nil and runs at most once.
func (pb *PromptBroker) Show(title, message string, buttons []string, onPress func(button string)) error {
	if len(buttons) == 0 {
		buttons = []string{"OK"}
	}
	id := uuid.NewString()

	pb.mu.Lock()
	pb.pending[id] = onPress
	pb.mu.Unlock()

	request := eventbus.PromptRequestEvent{
		Prompt: models.Prompt{
			ID:      id,
			Title:   title,
			Message: message,
			Buttons: buttons,
		},
	}
	if err := pb.eventBus.SendToUI(request); err != nil {
		pb.mu.Lock()
		delete(pb.pending, id)
		pb.mu.Unlock()
		return err
	}
	return nil
}

// Notify is a single-button prompt nobody waits on.
func (pb *PromptBroker) Notify(title, message string) {
	if err := pb.Show(title, message, []string{"OK"}, nil); err != nil {
		logger.Error("failed to show notification", "title", title, "error", err)
	}
}

// Respond handles the UI's answer. Unknown or repeated IDs are ignored.
func (pb *PromptBroker) Respond(response eventbus.PromptResponseEvent) {
	pb.mu.Lock()
	onPress, exists := pb.pending[response.ID]
	delete(pb.pending, response.ID)
	pb.mu.Unlock()

	if !exists {
		logger.Debug("response for unknown prompt", "id", response.ID)
		return
	}
	if onPress != nil {
		onPress(response.Button)
	}
}

func (pb *PromptBroker) Pending() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return len(pb.pending)
}
