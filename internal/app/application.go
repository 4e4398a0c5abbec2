package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/Nyssa/internal/alert"
	"github.com/Rorical/Nyssa/internal/audio"
	"github.com/Rorical/Nyssa/internal/config"
	"github.com/Rorical/Nyssa/internal/core"
	"github.com/Rorical/Nyssa/internal/dispatcher"
	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/llm"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/internal/update"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	runtime    *core.Runtime
	model      *AppModel
	screen     models.Screen
}

// NewApplication wires config, core and UI. screen is shown first.
func NewApplication(cfg *config.Config, screen models.Screen) (*Application, error) {
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn("event bus", "operation", e.Operation, "error", e.Err)
	})

	disp := dispatcher.NewEventDispatcher(eb)

	chatReady := cfg.IsValid()
	var generator llm.Generator
	if chatReady {
		g, err := llm.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize chat: %w", err)
		}
		generator = g
	} else {
		logger.Warn("no API key configured, chat disabled")
		generator = unavailable{}
	}

	player := newPlayer(cfg)
	delay := cfg.AlertDelay()

	rt := core.NewRuntime(eb, core.Components{
		Chat: func(notifier core.Notifier, onChange func(core.ChatSnapshot)) *core.ChatService {
			return core.NewChatService(generator, cfg.Chat.Preamble, notifier, onChange)
		},
		Alert: func(prompter alert.Prompter, navigator alert.Navigator, onChange func(alert.Snapshot)) *alert.Session {
			return alert.NewSession(delay, player, prompter, navigator, alert.WithObserver(onChange))
		},
	})

	model := &AppModel{
		model:      update.NewModel(createInitialAppModel(chatReady, screen, delay)),
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		runtime:    rt,
		model:      model,
		screen:     screen,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.runtime.Start()
	if app.screen != models.ScreenHome {
		if err := app.eventBus.SendToCore(eventbus.ScreenEvent{Screen: app.screen, Mounted: true}); err != nil {
			return fmt.Errorf("failed to open %s screen: %w", app.screen, err)
		}
	}

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.runtime.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}

func newPlayer(cfg *config.Config) audio.Player {
	if !cfg.SoundEnabled() {
		return audio.NopPlayer{}
	}
	return audio.NewBeepPlayer(cfg.SoundFile())
}

func createInitialAppModel(chatReady bool, screen models.Screen, delay time.Duration) models.AppModel {
	// No initial messages in UI - they come from core as single source of truth
	return models.AppModel{
		Screen:           screen,
		Messages:         make([]models.Message, 0),
		Status:           "Ready",
		ChatServiceReady: chatReady,
		AlertDelay:       delay,
	}
}

// unavailable answers every request with a transport failure
type unavailable struct{}

func (unavailable) Generate(ctx context.Context, prompt string) llm.Outcome {
	return llm.Unreachable(errors.New("no API key configured"))
}
