package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// todoDelegate renders one todo as a two-line row: bold title, muted
// description underneath.
type todoDelegate struct {
	title         lipgloss.Style
	desc          lipgloss.Style
	selectedTitle lipgloss.Style
	selectedDesc  lipgloss.Style
}

func newTodoDelegate() todoDelegate {
	return todoDelegate{
		title:         lipgloss.NewStyle().Bold(true),
		desc:          lipgloss.NewStyle().Foreground(colorMuted),
		selectedTitle: lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg),
		selectedDesc:  lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg),
	}
}

func (d todoDelegate) Height() int                             { return 2 }
func (d todoDelegate) Spacing() int                            { return 1 }
func (d todoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	titleStyle, descStyle := d.title, d.desc
	if index == m.Index() {
		titleStyle, descStyle = d.selectedTitle, d.selectedDesc
	}

	fmt.Fprint(w, titleStyle.Render(padOrCut(it.todo.Title, contentW)))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(padOrCut(it.todo.Description, contentW)))
}

func padOrCut(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	sw := xansi.StringWidth(s)
	if sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	if sw > w {
		return xansi.Cut(s, 0, w)
	}
	return s
}
