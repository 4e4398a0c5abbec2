package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/Rorical/Nyssa/internal/logger"
)

var (
	rendererMu    sync.Mutex
	renderer      *glamour.TermRenderer
	rendererWidth int
)

// RenderMarkdown renders assistant replies. On renderer failure the text is
// returned unchanged.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	rendererMu.Lock()
	defer rendererMu.Unlock()

	if renderer == nil || rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logger.Warn("failed to create markdown renderer", "error", err)
			return text
		}
		renderer = r
		rendererWidth = width
	}

	out, err := renderer.Render(text)
	if err != nil {
		logger.Warn("failed to render markdown", "error", err)
		return text
	}
	return strings.Trim(out, "\n")
}
