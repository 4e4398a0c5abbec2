package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/ui/components"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(m *Model, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	// A shown prompt blocks every other key
	if m.ActivePrompt() != nil {
		return handlePromptKey(m, keyMsg, eb)
	}

	switch m.Screen {
	case models.ScreenHome:
		return handleHomeKey(m, keyMsg, eb)
	case models.ScreenChat:
		return handleChatKey(m, keyMsg, eb)
	case models.ScreenAlert:
		if keyMsg.Type == tea.KeyEsc {
			Navigate(m, eb, models.ScreenHome)
		}
	}
	return nil
}

func handleHomeKey(m *Model, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "q", "esc":
		return tea.Quit
	case "up", "k":
		if m.HomeCursor > 0 {
			m.HomeCursor--
		}
	case "down", "j":
		if m.HomeCursor < len(components.HomeMenu)-1 {
			m.HomeCursor++
		}
	case "enter":
		Navigate(m, eb, components.HomeMenu[m.HomeCursor].Screen)
	}
	return nil
}

func handleChatKey(m *Model, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyEsc:
		Navigate(m, eb, models.ScreenHome)
		return nil
	case tea.KeyEnter:
		// disabled while a reply is outstanding or the input is blank
		if !CanSend(m) {
			return nil
		}
		if !m.ChatServiceReady {
			m.Status = "Chat service not available"
			return nil
		}
		if err := eb.SendToCore(eventbus.SendMessageEvent{Message: m.Input.Value()}); err != nil {
			m.Status = "Error sending message: " + err.Error()
			return nil
		}
		m.Input.Reset()
		return nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(keyMsg)
		return cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(keyMsg)
	return cmd
}

// CanSend mirrors ChatService.CanSend for the UI's copy of the state
func CanSend(m *Model) bool {
	return strings.TrimSpace(m.Input.Value()) != "" && !m.Loading
}

func handlePromptKey(m *Model, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	prompt := m.ActivePrompt()
	switch keyMsg.String() {
	case "left", "shift+tab", "h":
		if m.PromptCursor > 0 {
			m.PromptCursor--
		}
	case "right", "tab", "l":
		if m.PromptCursor < len(prompt.Buttons)-1 {
			m.PromptCursor++
		}
	case "enter", " ":
		response := eventbus.PromptResponseEvent{ID: prompt.ID}
		if m.PromptCursor < len(prompt.Buttons) {
			response.Button = prompt.Buttons[m.PromptCursor]
		}
		m.Prompts = m.Prompts[1:]
		m.PromptCursor = 0
		if err := eb.SendToCore(response); err != nil {
			m.Status = "Error answering prompt: " + err.Error()
		}
	}
	return nil
}

// Navigate leaves the current screen for target, reporting both to core
func Navigate(m *Model, eb *eventbus.EventBus, target models.Screen) {
	if m.Screen == target {
		return
	}
	if m.Screen != models.ScreenHome {
		sendScreen(eb, m.Screen, false)
	}

	m.Screen = target
	m.Status = "Ready"
	m.Input.Blur()
	if target == models.ScreenChat {
		m.Input.Reset()
		m.Input.Focus()
	}

	if target != models.ScreenHome {
		sendScreen(eb, target, true)
	}
}

func sendScreen(eb *eventbus.EventBus, screen models.Screen, mounted bool) {
	if err := eb.SendToCore(eventbus.ScreenEvent{Screen: screen, Mounted: mounted}); err != nil {
		logger.Error("failed to report screen", "screen", screen, "mounted", mounted, "error", err)
	}
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(m *Model, coreEventMsg CoreEventMsg, eb *eventbus.EventBus) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Update UI state from core state
		wasLoading := m.Loading
		m.Messages = event.Messages
		m.Loading = event.IsProcessing
		m.refreshChat()

		if event.Error != nil {
			m.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			m.Status = "Processing"
		} else {
			m.Status = "Ready"
		}

		if m.Loading && !wasLoading {
			return m.Spinner.Tick
		}

	case eventbus.AlertStateEvent:
		if event.State == models.AlertArmed && m.Alert != models.AlertArmed {
			m.ArmedAt = time.Now()
		}
		m.Alert = event.State
		m.AlertError = ""
		if event.Error != nil {
			m.AlertError = event.Error.Error()
		}

	case eventbus.PromptRequestEvent:
		m.Prompts = append(m.Prompts, event.Prompt)

	case eventbus.NavigateEvent:
		target := event.Screen
		if event.Back {
			target = models.ScreenHome
		}
		Navigate(m, eb, target)
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(m *Model, sizeMsg tea.WindowSizeMsg) {
	m.Width = sizeMsg.Width
	m.Height = sizeMsg.Height
	m.resize()
}

// HandleTickMsg keeps the alert countdown moving; the view reads the clock
func HandleTickMsg(m *Model) tea.Cmd {
	return TickCmd()
}
