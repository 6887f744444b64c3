package tui

import (
	"tada-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// renderHelpMarkdown renders the embedded TUI help topic for the overlay.
func renderHelpMarkdown(width int) string {
	body, ok := docs.Get("tui")
	if !ok {
		return ""
	}
	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	// The overlay sits inside the altscreen, so background detection has to
	// happen against the real terminal, not the renderer.
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return out
}
