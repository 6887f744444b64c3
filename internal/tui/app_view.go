package tui

import (
	"strings"

	"tada-cli/internal/mutate"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.headerLine()))
	b.WriteString("\n")
	if m.toastText != "" {
		st := toastSuccessStyle
		if m.toastKind == mutate.KindError {
			st = toastErrorStyle
		}
		b.WriteString(st.Render(m.toastText))
	}
	b.WriteString("\n\n")

	switch m.view {
	case viewHome:
		b.WriteString(m.viewHome())
	case viewLogin:
		b.WriteString(m.viewLogin())
	case viewRegister:
		b.WriteString(m.viewRegister())
	case viewTodos:
		if m.showHelp {
			b.WriteString(m.renderHelp())
		} else {
			b.WriteString(m.viewTodos())
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footerLine()))
	return b.String()
}

func (m appModel) headerLine() string {
	switch m.view {
	case viewLogin:
		return "🔑 Login"
	case viewRegister:
		return "📝 Register"
	case viewTodos:
		if m.loggedIn {
			return "📝 Your Todos"
		}
		return "📝 Your Todos  (not logged in)"
	}
	return "Welcome to the Todo App"
}

func (m appModel) footerLine() string {
	switch m.view {
	case viewLogin, viewRegister:
		return "tab: next field  enter: submit  esc: back"
	case viewTodos:
		if m.showHelp {
			return "?: close help"
		}
		base := "tab: focus  ctrl+s: add  e: edit  d: delete  ?: help  q: quit"
		if m.loggedIn {
			base += "  ctrl+l: logout"
		}
		return base
	}
	return "l: login  r: register  t: todos  q: quit"
}

func (m appModel) viewHome() string {
	var b strings.Builder
	b.WriteString("  Please log in to manage your todos.\n")
	b.WriteString("  If you are new, register first and then log in.\n\n")
	b.WriteString("  " + focusStyle.Render("[l]") + " Login\n")
	b.WriteString("  " + focusStyle.Render("[r]") + " Register\n")
	b.WriteString("  " + focusStyle.Render("[t]") + " Todos\n")
	return b.String()
}

func (m appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(formRow("Email", m.loginEmail.View(), m.loginFocus == formFocusFirst))
	b.WriteString(formRow("Password", m.loginPassword.View(), m.loginFocus == formFocusSecond))
	b.WriteString("\n" + labelStyle.Render("  New here? Press esc, then r to register."))
	return b.String()
}

func (m appModel) viewRegister() string {
	var b strings.Builder
	b.WriteString(formRow("Full name", m.regName.View(), m.regFocus == formFocusFirst))
	b.WriteString(formRow("Email", m.regEmail.View(), m.regFocus == formFocusSecond))
	b.WriteString(formRow("Password", m.regPassword.View(), m.regFocus == formFocusThird))
	b.WriteString("\n" + labelStyle.Render("  Have an account already? Press esc, then l to log in."))
	return b.String()
}

func formRow(label, field string, focused bool) string {
	l := labelStyle
	if focused {
		l = focusStyle
	}
	return "  " + l.Render(padLabel(label)) + " " + field + "\n"
}

func padLabel(s string) string {
	const w = 10
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func (m appModel) viewTodos() string {
	var b strings.Builder

	// Composer (doubles as the edit box when an edit target is set).
	composer := m.titleInput.View() + "\n" + m.descInput.View()
	if m.editTarget != "" {
		composer = focusStyle.Render("Editing: ") + m.titleInput.View() + "\n" +
			labelStyle.Render("enter: save  (switching todos discards this edit)")
	}
	b.WriteString(editBoxStyle.Render(composer))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + m.spin.View() + " Loading todos…")
	case len(m.todosList.Items()) == 0:
		b.WriteString(emptyStyle.Render("No todos found"))
	default:
		b.WriteString(m.todosList.View())
	}
	return b.String()
}

func (m appModel) renderHelp() string {
	if m.helpCache != "" {
		return m.helpCache
	}
	return lipgloss.NewStyle().Padding(0, 2).Render("Help unavailable.")
}
