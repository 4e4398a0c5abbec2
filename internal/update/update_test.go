package update

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/models"
)

func newTestModel(t *testing.T, screen models.Screen) (*Model, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)
	m := NewModel(models.AppModel{Screen: screen, Status: "Ready", ChatServiceReady: true})
	return &m, eb
}

func drainUI(eb *eventbus.EventBus) []eventbus.UIEvent {
	var events []eventbus.UIEvent
	for {
		select {
		case e := <-eb.UIToCore():
			events = append(events, e)
		default:
			return events
		}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeMenuOpensScreens(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenHome)

	HandleKeyMsgWithEventBus(m, key("enter"), eb)
	assert.Equal(t, models.ScreenChat, m.Screen)
	assert.Equal(t, []eventbus.UIEvent{
		eventbus.ScreenEvent{Screen: models.ScreenChat, Mounted: true},
	}, drainUI(eb))

	HandleKeyMsgWithEventBus(m, key("esc"), eb)
	assert.Equal(t, models.ScreenHome, m.Screen)

	HandleKeyMsgWithEventBus(m, key("down"), eb)
	HandleKeyMsgWithEventBus(m, key("enter"), eb)
	assert.Equal(t, models.ScreenAlert, m.Screen)

	assert.Equal(t, []eventbus.UIEvent{
		eventbus.ScreenEvent{Screen: models.ScreenChat, Mounted: false},
		eventbus.ScreenEvent{Screen: models.ScreenAlert, Mounted: true},
	}, drainUI(eb))
}

func TestQuitKeys(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenChat)

	cmd := HandleKeyMsgWithEventBus(m, key("ctrl+c"), eb)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q is text on the chat screen
	HandleKeyMsgWithEventBus(m, key("q"), eb)
	assert.Equal(t, "q", m.Input.Value())

	m.Screen = models.ScreenHome
	cmd = HandleKeyMsgWithEventBus(m, key("q"), eb)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChatEnterSendsMessage(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenChat)
	m.Input.SetValue("is a late period normal?")
	assert.True(t, CanSend(m))

	HandleKeyMsgWithEventBus(m, key("enter"), eb)

	assert.Equal(t, []eventbus.UIEvent{
		eventbus.SendMessageEvent{Message: "is a late period normal?"},
	}, drainUI(eb))
	assert.Empty(t, m.Input.Value())
}

func TestChatEnterBlankSendsNothing(t *testing.T) {
	for _, input := range []string{"", "   ", "\t \t"} {
		m, eb := newTestModel(t, models.ScreenChat)
		m.Input.SetValue(input)

		assert.False(t, CanSend(m))
		HandleKeyMsgWithEventBus(m, key("enter"), eb)

		assert.Empty(t, drainUI(eb))
		assert.Equal(t, input, m.Input.Value())
	}
}

func TestChatEnterIgnoredWhileLoading(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenChat)
	m.Loading = true
	m.Input.SetValue("second")

	HandleKeyMsgWithEventBus(m, key("enter"), eb)

	assert.Empty(t, drainUI(eb))
	assert.Equal(t, "second", m.Input.Value())
}

func TestChatEnterWithoutService(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenChat)
	m.ChatServiceReady = false
	m.Input.SetValue("hi")

	HandleKeyMsgWithEventBus(m, key("enter"), eb)

	assert.Empty(t, drainUI(eb))
	assert.Equal(t, "Chat service not available", m.Status)
}

func TestStateUpdateEvent(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenChat)
	messages := []models.Message{{ID: "1", Content: "hi", Type: models.User}}

	cmd := HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Messages: messages, IsProcessing: true}}, eb)
	assert.NotNil(t, cmd)
	assert.True(t, m.Loading)
	assert.Equal(t, "Processing", m.Status)
	assert.Equal(t, messages, m.Messages)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Messages: messages, Error: errors.New("quota exceeded")}}, eb)
	assert.False(t, m.Loading)
	assert.Equal(t, "Error: quota exceeded", m.Status)
}

func TestAlertStateEvent(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenAlert)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.AlertStateEvent{State: models.AlertArmed}}, eb)
	assert.Equal(t, models.AlertArmed, m.Alert)
	assert.WithinDuration(t, time.Now(), m.ArmedAt, time.Second)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.AlertStateEvent{State: models.AlertSounding, Error: errors.New("alert sound: no device")}}, eb)
	assert.Equal(t, models.AlertSounding, m.Alert)
	assert.Equal(t, "alert sound: no device", m.AlertError)
}

func TestPromptBlocksAndAnswers(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenAlert)
	first := models.Prompt{ID: "a", Title: "Menstrual Cup Alert", Buttons: []string{"OK"}}
	second := models.Prompt{ID: "b", Title: "Error", Buttons: []string{"Retry", "Cancel"}}

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.PromptRequestEvent{Prompt: first}}, eb)
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.PromptRequestEvent{Prompt: second}}, eb)
	require.Equal(t, "a", m.ActivePrompt().ID)

	// esc does not leave the screen while a prompt is shown
	HandleKeyMsgWithEventBus(m, key("esc"), eb)
	assert.Equal(t, models.ScreenAlert, m.Screen)

	HandleKeyMsgWithEventBus(m, key("enter"), eb)
	require.Equal(t, "b", m.ActivePrompt().ID)

	HandleKeyMsgWithEventBus(m, key("right"), eb)
	HandleKeyMsgWithEventBus(m, key("right"), eb)
	HandleKeyMsgWithEventBus(m, key("enter"), eb)
	assert.Nil(t, m.ActivePrompt())

	assert.Equal(t, []eventbus.UIEvent{
		eventbus.PromptResponseEvent{ID: "a", Button: "OK"},
		eventbus.PromptResponseEvent{ID: "b", Button: "Cancel"},
	}, drainUI(eb))
}

func TestNavigateEventLeavesAlert(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenAlert)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.NavigateEvent{Screen: models.ScreenHome}}, eb)

	assert.Equal(t, models.ScreenHome, m.Screen)
	assert.Equal(t, []eventbus.UIEvent{
		eventbus.ScreenEvent{Screen: models.ScreenAlert, Mounted: false},
	}, drainUI(eb))
}

func TestWindowSize(t *testing.T) {
	m, eb := newTestModel(t, models.ScreenChat)

	HandleUpdateWithEventBus(m, tea.WindowSizeMsg{Width: 100, Height: 40}, eb)

	assert.Equal(t, 100, m.Width)
	assert.Equal(t, 100, m.Viewport.Width)
	assert.Equal(t, 33, m.Viewport.Height)
}
