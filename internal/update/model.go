package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/ui/components"
)

const inputPlaceholder = "Ask Nyssa anything... (Enter to send, Esc to go back)"

// Model is the UI state plus the widgets the handlers drive
type Model struct {
	models.AppModel
	Input    textinput.Model
	Spinner  spinner.Model
	Viewport viewport.Model
}

func NewModel(app models.AppModel) Model {
	input := textinput.New()
	input.Placeholder = inputPlaceholder
	input.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		AppModel: app,
		Input:    input,
		Spinner:  sp,
		Viewport: viewport.New(80, 20),
	}
	if m.Screen == models.ScreenChat {
		m.Input.Focus()
	}
	m.refreshChat()
	return m
}

// refreshChat re-renders the log into the viewport and scrolls to the end
func (m *Model) refreshChat() {
	m.Viewport.SetContent(components.RenderMessages(m.Messages, m.Viewport.Width))
	m.Viewport.GotoBottom()
}

func (m *Model) resize() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	// input box, thinking line, status bar, help
	m.Viewport.Width = m.Width
	m.Viewport.Height = max(m.Height-7, 3)
	m.Input.Width = max(m.Width-8, 10)
	m.refreshChat()
}
