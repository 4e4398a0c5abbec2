package core

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Rorical/Nyssa/internal/alert"
	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
)

// Runtime is the core side of the event bus. It owns the chat service and
// the alert session and reacts to UI events.
type Runtime struct {
	eventBus  *eventbus.EventBus
	chat      *ChatService
	alert     *alert.Session
	prompts   *PromptBroker
	navigator *Navigator
	log       *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// Components builds the alert session and chat service once the runtime's
// collaborators exist.
type Components struct {
	Chat  func(notifier Notifier, onChange func(ChatSnapshot)) *ChatService
	Alert func(prompter alert.Prompter, navigator alert.Navigator, onChange func(alert.Snapshot)) *alert.Session
}

func NewRuntime(eb *eventbus.EventBus, components Components) *Runtime {
	ctx, cancel := context.WithCancel(context.Background())
	rt := &Runtime{
		eventBus:  eb,
		prompts:   NewPromptBroker(eb),
		navigator: NewNavigator(eb),
		log:       logger.NewComponentLogger("core"),
		ctx:       ctx,
		cancel:    cancel,
	}
	rt.chat = components.Chat(rt.prompts, rt.pushChatState)
	rt.alert = components.Alert(rt.prompts, rt.navigator, rt.pushAlertState)
	return rt
}

// Start runs the core logic in a goroutine
func (rt *Runtime) Start() {
	rt.pushChatState(rt.chat.Snapshot())
	rt.wg.Add(1)
	go rt.eventLoop()
}

// Stop tears down the alert and waits for in-flight work.
func (rt *Runtime) Stop() {
	rt.alert.Unmount()
	rt.cancel()
	rt.wg.Wait()
}

func (rt *Runtime) Chat() *ChatService {
	return rt.chat
}

func (rt *Runtime) Alert() *alert.Session {
	return rt.alert
}

func (rt *Runtime) eventLoop() {
	defer rt.wg.Done()
	for {
		select {
		case <-rt.ctx.Done():
			return
		case event, ok := <-rt.eventBus.UIToCore():
			if !ok {
				return
			}
			rt.handleUIEvent(event)
		}
	}
}

func (rt *Runtime) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SendMessageEvent:
		rt.handleSend(e.Message)
	case eventbus.PromptResponseEvent:
		rt.prompts.Respond(e)
	case eventbus.ScreenEvent:
		rt.handleScreen(e)
	}
}

func (rt *Runtime) handleSend(message string) {
	// rejected here, before any goroutine or network activity
	if strings.TrimSpace(message) == "" {
		rt.prompts.Notify("Error", "Message cannot be empty")
		return
	}
	if !rt.chat.CanSend(message) {
		rt.log.Warn("send ignored, request outstanding")
		return
	}

	rt.wg.Add(1)
	go func() {
		defer rt.wg.Done()
		_, _, err := rt.chat.SendMessage(rt.ctx, message)
		switch {
		case errors.Is(err, ErrRequestInFlight):
			rt.log.Warn("send ignored, request outstanding")
		case err != nil:
			rt.log.Error("send rejected", "error", err)
		}
	}()
}

func (rt *Runtime) handleScreen(e eventbus.ScreenEvent) {
	rt.log.Debug("screen event", "screen", e.Screen, "mounted", e.Mounted)
	switch e.Screen {
	case models.ScreenChat:
		if e.Mounted {
			rt.chat.Reset()
		}
	case models.ScreenAlert:
		if e.Mounted {
			rt.alert.Mount(rt.ctx)
		} else {
			rt.alert.Unmount()
		}
	}
}

func (rt *Runtime) pushChatState(snapshot ChatSnapshot) {
	if err := rt.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages:     snapshot.Messages,
		IsProcessing: snapshot.IsProcessing,
		Error:        snapshot.Error,
	}); err != nil {
		rt.log.Error("failed to send chat state to UI", "error", err)
	}
}

func (rt *Runtime) pushAlertState(snapshot alert.Snapshot) {
	if err := rt.eventBus.SendToUI(eventbus.AlertStateEvent{
		State: snapshot.State,
		Error: snapshot.Err,
	}); err != nil {
		rt.log.Error("failed to send alert state to UI", "error", err)
	}
}
