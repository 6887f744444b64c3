package tui

import (
	"tada-cli/internal/mutate"
)

type view int

const (
	viewHome view = iota
	viewLogin
	viewRegister
	viewTodos
)

func viewForDestination(d mutate.Destination) (view, bool) {
	switch d {
	case mutate.NavLogin:
		return viewLogin, true
	case mutate.NavTodos:
		return viewTodos, true
	}
	return viewHome, false
}

// sessionCheckedMsg is the result of the page-activation auth check.
type sessionCheckedMsg struct {
	seq    int
	authed bool
}

// todosLoadedMsg signals the initial list fetch finished (the store is
// already populated by the coordinator). Stale seqs are discarded.
type todosLoadedMsg struct {
	seq int
}

// outcomeMsg carries the terminal result of one user action.
type outcomeMsg struct {
	action string
	out    mutate.Outcome
}

// toastDoneMsg hides the toast unless a newer one replaced it.
type toastDoneMsg struct {
	seq int
}

// navigateMsg performs a scheduled navigation unless superseded.
type navigateMsg struct {
	seq  int
	dest mutate.Destination
}

// Action names for outcomeMsg routing.
const (
	actionAdd      = "add"
	actionSave     = "save"
	actionDelete   = "delete"
	actionLogin    = "login"
	actionRegister = "register"
	actionLogout   = "logout"
)

// Focus cycling on the todos screen.
type todosFocus int

const (
	focusTitle todosFocus = iota
	focusDescription
	focusList
)

// Focus cycling on the auth forms.
type formFocus int

const (
	formFocusFirst formFocus = iota
	formFocusSecond
	formFocusThird
)
