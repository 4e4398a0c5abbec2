package components

import (
	"strings"

	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/ui/styles"
)

// MenuItem is one entry of the home screen
type MenuItem struct {
	Label  string
	Screen models.Screen
}

var HomeMenu = []MenuItem{
	{Label: "AI Assistant", Screen: models.ScreenChat},
	{Label: "Menstrual Cup Alert", Screen: models.ScreenAlert},
}

func RenderHome(cursor int, chatReady bool) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle().Render("Nyssa") + "\n")

	for i, item := range HomeMenu {
		label := item.Label
		if item.Screen == models.ScreenChat && !chatReady {
			label += " (no API key)"
		}
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		b.WriteString(styles.MenuItemStyle(i == cursor).Render(prefix+label) + "\n")
	}
	return b.String()
}
