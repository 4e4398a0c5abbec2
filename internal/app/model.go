package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/Nyssa/internal/dispatcher"
	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/internal/update"
	"github.com/Rorical/Nyssa/ui/components"
)

type AppModel struct {
	model      update.Model
	dispatcher *dispatcher.EventDispatcher
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.model.Spinner.Tick,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.model, coreEvent, m.dispatcher.GetEventBus())
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.model, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder
	s := &m.model

	switch s.Screen {
	case models.ScreenHome:
		b.WriteString(components.RenderHome(s.HomeCursor, s.ChatServiceReady))
		b.WriteString("\n")
		b.WriteString(components.RenderHelp("↑/↓ select • enter open • q quit"))
	case models.ScreenChat:
		b.WriteString(s.Viewport.View())
		b.WriteString("\n")
		if s.Loading {
			b.WriteString(components.RenderThinking(s.Spinner.View()))
		}
		b.WriteString("\n")
		b.WriteString(components.RenderInput(s.Input.View(), s.Width))
		b.WriteString("\n")
		b.WriteString(components.RenderStatus(s.Status, s.Loading, s.Spinner.View(), s.Width))
	case models.ScreenAlert:
		remaining := s.AlertDelay - time.Since(s.ArmedAt)
		b.WriteString(components.RenderAlert(s.Alert, remaining, s.AlertError))
		b.WriteString("\n")
		b.WriteString(components.RenderHelp("esc back"))
	}

	view := b.String()
	if prompt := s.ActivePrompt(); prompt != nil {
		box := components.RenderPrompt(*prompt, s.PromptCursor, s.Width)
		if s.Width > 0 && s.Height > 0 {
			return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, box)
		}
		return view + "\n" + box
	}
	return view
}
