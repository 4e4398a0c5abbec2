package components

import (
	"fmt"
	"math"
	"time"

	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/ui/styles"
)

// RenderAlert draws the cup alert screen. remaining is only used while armed.
func RenderAlert(state models.AlertState, remaining time.Duration, errText string) string {
	var body string
	switch state {
	case models.AlertArmed:
		secs := int(math.Ceil(max(remaining, 0).Seconds()))
		body = fmt.Sprintf("Cup alert armed. Sounding in %ds.", secs)
	case models.AlertSounding:
		body = "Menstrual cup is filled. Take it out."
	default:
		body = "Cup alert idle."
	}

	out := styles.TitleStyle().Render("Menstrual Cup Alert") + "\n" +
		styles.AlertStyle(state == models.AlertSounding).Render(body) + "\n"
	if errText != "" {
		out += styles.ErrorStyle().Render(errText) + "\n"
	}
	return out
}
