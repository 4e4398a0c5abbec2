package models

import "time"

// Screen identifies which screen the UI is showing
type Screen int

const (
	ScreenHome Screen = iota
	ScreenChat
	ScreenAlert
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenChat:
		return "chat"
	case ScreenAlert:
		return "alert"
	}
	return "unknown"
}

// AlertState is the lifecycle state of the cup alert screen
type AlertState int

const (
	AlertIdle AlertState = iota
	AlertArmed
	AlertSounding
)

func (s AlertState) String() string {
	switch s {
	case AlertIdle:
		return "idle"
	case AlertArmed:
		return "armed"
	case AlertSounding:
		return "sounding"
	}
	return "unknown"
}

// Prompt is a blocking message with one or more buttons (avoiding import cycle)
type Prompt struct {
	ID      string   // Unique identifier for this prompt
	Title   string   // Short heading
	Message string   // Body text
	Buttons []string // Button labels, first is the default
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Screen           Screen        // Screen currently shown
	HomeCursor       int           // Selected home menu entry
	Messages         []Message     // Current chat messages to display
	Status           string        // Status bar text
	Loading          bool          // Chat request outstanding
	Width            int           // Terminal width
	Height           int           // Terminal height
	ChatServiceReady bool          // Whether a credential is configured
	Alert            AlertState    // Alert screen lifecycle state
	AlertError       string        // Last alert resource error, if any
	AlertDelay       time.Duration // Delay before the alert sounds
	ArmedAt          time.Time     // When the alert was last armed
	Prompts          []Prompt      // Blocking prompts, the first is shown
	PromptCursor     int           // Selected button on the shown prompt
}

// ActivePrompt returns the prompt currently blocking the UI, or nil.
func (m *AppModel) ActivePrompt() *Prompt {
	if len(m.Prompts) == 0 {
		return nil
	}
	return &m.Prompts[0]
}
