package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/Nyssa/internal/eventbus"
)

func HandleUpdateWithEventBus(m *Model, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(m, msg, eb)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(m, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(m)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return cmd
	case CoreEventMsg:
		return HandleCoreEvent(m, msg, eb)
	}
	return nil
}
