package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything uses lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	// Toast bar colors.
	colorToastSuccessBg lipgloss.TerminalColor = ac("28", "22")  // green
	colorToastErrorBg   lipgloss.TerminalColor = ac("196", "88") // red
	colorToastFg        lipgloss.TerminalColor = ac("255", "255")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	focusStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(colorMuted).Padding(1, 1)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(colorToastFg).
				Background(colorToastSuccessBg).
				Padding(0, 1).
				Bold(true)
	toastErrorStyle = lipgloss.NewStyle().
			Foreground(colorToastFg).
			Background(colorToastErrorBg).
			Padding(0, 1).
			Bold(true)

	editBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)
