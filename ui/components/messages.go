package components

import (
	"strings"

	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/ui/styles"
)

const (
	WelcomeText  = "Hello! I'm Nyssa your personal AI period and health Advisor. How can I help you today?"
	ThinkingText = "Thinking..."
)

// RenderMessages draws the chat log. An empty log shows the greeting.
func RenderMessages(messages []models.Message, width int) string {
	if len(messages) == 0 {
		messages = []models.Message{{Content: WelcomeText, Type: models.Program}}
	}

	var b strings.Builder

	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()
	programStyle := styles.WelcomeStyle()

	for _, msg := range messages {
		switch msg.Type {
		case models.User:
			b.WriteString(userStyle.Render("You: "+msg.Content) + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render(RenderMarkdown(msg.Content, width-6)) + "\n\n")
		case models.Program:
			b.WriteString(programStyle.Width(max(width-4, 20)).Render(msg.Content) + "\n\n")
		}
	}

	return b.String()
}

// RenderThinking is shown under the log while a request is outstanding
func RenderThinking(spinnerView string) string {
	return styles.ThinkingStyle().Render(spinnerView + " " + ThinkingText)
}
