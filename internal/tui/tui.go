package tui

import (
	"tada-cli/internal/mutate"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(co *mutate.Coordinator) error {
	m := newAppModel(co)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
