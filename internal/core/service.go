package core

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Rorical/Nyssa/internal/llm"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
)

var (
	// ErrEmptyMessage rejects input that is blank after trimming.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrRequestInFlight rejects a send while the previous one is unresolved.
	ErrRequestInFlight = errors.New("a message is already being processed")
)

// ChatSnapshot is what observers of the chat log receive after every change
type ChatSnapshot struct {
	Messages     []models.Message
	IsProcessing bool
	Error        error
}

// Notifier surfaces a blocking message outside the chat log
type Notifier interface {
	Notify(title, message string)
}

type ChatService struct {
	generator llm.Generator
	preamble  string
	state     *ChatState
	notifier  Notifier
	onChange  func(ChatSnapshot)
	log       *log.Logger
}

// NewChatService wires the chat workflow. notifier and onChange may be nil.
func NewChatService(generator llm.Generator, preamble string, notifier Notifier, onChange func(ChatSnapshot)) *ChatService {
	return &ChatService{
		generator: generator,
		preamble:  preamble,
		state:     NewChatState(),
		notifier:  notifier,
		onChange:  onChange,
		log:       logger.NewComponentLogger("chat"),
	}
}

// BuildPrompt combines the preamble with the user's text. Only the current
// message is sent; earlier turns stay local.
func BuildPrompt(preamble, userText string) string {
	return preamble + "\n\nUser: " + userText
}

// CanSend reports whether the send control should be enabled for input.
func (cs *ChatService) CanSend(input string) bool {
	return strings.TrimSpace(input) != "" && !cs.state.IsProcessing()
}

// SendMessage runs one exchange: user entry, one request, one assistant
// entry. Only validation failures are returned as errors; every remote
// failure becomes an assistant entry.
func (cs *ChatService) SendMessage(ctx context.Context, userText string) ([]models.Message, llm.Outcome, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return cs.state.GetMessages(), llm.Outcome{}, ErrEmptyMessage
	}

	generation, ok := cs.state.StartProcessingWithUserMessage(text)
	if !ok {
		return cs.state.GetMessages(), llm.Outcome{}, ErrRequestInFlight
	}
	cs.pushState()

	cs.log.Debug("sending message", "length", len(text))
	outcome := cs.generator.Generate(ctx, BuildPrompt(cs.preamble, text))
	cs.log.Info("message resolved", "outcome", outcome.Kind)

	cs.state.FinishProcessingWithAssistantMessage(generation, outcome.EntryText(), outcome.Cause())
	cs.pushState()

	if outcome.Kind == llm.TransportError && cs.notifier != nil {
		msg := "Failed to communicate with Gemini API"
		if outcome.Err != nil {
			msg += ": " + outcome.Err.Error()
		}
		cs.notifier.Notify("Error", msg)
	}

	return cs.state.GetMessages(), outcome, nil
}

// Reset clears the conversation, as when the chat screen is opened again.
func (cs *ChatService) Reset() {
	cs.state.Reset()
	cs.pushState()
}

func (cs *ChatService) Messages() []models.Message {
	return cs.state.GetMessages()
}

func (cs *ChatService) IsProcessing() bool {
	return cs.state.IsProcessing()
}

func (cs *ChatService) Snapshot() ChatSnapshot {
	return ChatSnapshot{
		Messages:     cs.state.GetMessages(),
		IsProcessing: cs.state.IsProcessing(),
		Error:        cs.state.GetLastError(),
	}
}

func (cs *ChatService) pushState() {
	if cs.onChange == nil {
		return
	}
	cs.onChange(cs.Snapshot())
}
