package components

import (
	"github.com/Rorical/Nyssa/ui/styles"
)

func RenderStatus(status string, loading bool, spinnerView string, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent = spinnerView + " " + statusContent
	}

	return statusStyle.Render(statusContent)
}

func RenderHelp(text string) string {
	return styles.HelpStyle().Render(text)
}
