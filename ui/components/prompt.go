package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/ui/styles"
)

// RenderPrompt draws a blocking prompt with its buttons
func RenderPrompt(prompt models.Prompt, cursor int, width int) string {
	buttons := make([]string, len(prompt.Buttons))
	for i, label := range prompt.Buttons {
		buttons[i] = styles.ButtonStyle(i == cursor).Render(label)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(prompt.Title))
	b.WriteString("\n\n")
	b.WriteString(prompt.Message)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	return styles.PromptStyle(width).Render(b.String())
}
