package tui

import (
	"context"
	"time"

	"tada-cli/internal/model"
	"tada-cli/internal/mutate"

	tea "github.com/charmbracelet/bubbletea"
)

// How long a toast stays visible when nothing replaces it.
const toastAutoClose = 3 * time.Second

// The two page-activation fetches run as independent commands so neither
// blocks the other. No cancellation: a response landing after the user left
// the screen is dropped by its seq.

func (m appModel) checkSessionCmd() tea.Cmd {
	co, seq := m.co, m.sessionSeq
	return func() tea.Msg {
		return sessionCheckedMsg{seq: seq, authed: co.RefreshSession(context.Background())}
	}
}

func (m appModel) loadTodosCmd() tea.Cmd {
	co, seq := m.co, m.loadSeq
	return func() tea.Msg {
		co.LoadTodos(context.Background())
		return todosLoadedMsg{seq: seq}
	}
}

func (m appModel) addTodoCmd(title, description string) tea.Cmd {
	co := m.co
	return func() tea.Msg {
		return outcomeMsg{action: actionAdd, out: co.AddTodo(context.Background(), title, description)}
	}
}

func (m appModel) saveTitleCmd(id, title string) tea.Cmd {
	co := m.co
	return func() tea.Msg {
		return outcomeMsg{action: actionSave, out: co.SaveTitle(context.Background(), id, title)}
	}
}

func (m appModel) deleteTodoCmd(id string) tea.Cmd {
	co := m.co
	return func() tea.Msg {
		return outcomeMsg{action: actionDelete, out: co.DeleteTodo(context.Background(), id)}
	}
}

func (m appModel) loginCmd(form model.LoginForm) tea.Cmd {
	co := m.co
	return func() tea.Msg {
		return outcomeMsg{action: actionLogin, out: co.Login(context.Background(), form)}
	}
}

func (m appModel) registerCmd(form model.RegisterForm) tea.Cmd {
	co := m.co
	return func() tea.Msg {
		return outcomeMsg{action: actionRegister, out: co.Register(context.Background(), form)}
	}
}

func (m appModel) logoutCmd() tea.Cmd {
	co := m.co
	return func() tea.Msg {
		return outcomeMsg{action: actionLogout, out: co.Logout(context.Background())}
	}
}

func toastTimeoutCmd(seq int) tea.Cmd {
	return tea.Tick(toastAutoClose, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}

func navigateAfterCmd(seq int, dest mutate.Destination, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg { return navigateMsg{seq: seq, dest: dest} })
}
