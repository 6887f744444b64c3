package tui

import (
	"strings"

	"tada-cli/internal/model"
	"tada-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.loading && m.view == viewTodos {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionCheckedMsg:
		if msg.seq == m.sessionSeq {
			m.loggedIn = msg.authed
		}
		return m, nil

	case todosLoadedMsg:
		// A load finishing after the user left the screen is dropped.
		if msg.seq == m.loadSeq && m.view == viewTodos {
			m.loading = false
			m.refreshTodos()
		}
		return m, nil

	case outcomeMsg:
		return m.applyOutcome(msg.action, msg.out)

	case toastDoneMsg:
		if msg.seq == m.toastSeq {
			m.toastText = ""
		}
		return m, nil

	case navigateMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		if v, ok := viewForDestination(msg.dest); ok {
			return m.activate(v)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewHome:
			return m.updateHome(msg)
		case viewLogin:
			return m.updateLogin(msg)
		case viewRegister:
			return m.updateRegister(msg)
		case viewTodos:
			return m.updateTodos(msg)
		}
	}
	return m, nil
}

// applyOutcome is the feedback/navigation sequencer: show the toast now,
// patch screen state for the action that finished, and schedule the
// navigation (if any) after the outcome's delay.
func (m appModel) applyOutcome(action string, out mutate.Outcome) (tea.Model, tea.Cmd) {
	m.toastKind = out.Kind
	m.toastText = out.Message
	m.toastSeq++
	cmds := []tea.Cmd{toastTimeoutCmd(m.toastSeq)}

	switch action {
	case actionAdd:
		if out.Kind == mutate.KindSuccess {
			// Composition buffer clears only on success; a failed add
			// keeps the draft for retry.
			m.titleInput.SetValue("")
			m.descInput.SetValue("")
			m.refreshTodos()
		}
	case actionSave:
		if out.Kind == mutate.KindSuccess {
			m.editTarget = ""
			m.titleInput.SetValue("")
			m.titleInput.Blur()
			m.todosFocus = focusList
			m.refreshTodos()
		}
	case actionDelete:
		// The store already reflects the result; mirror it either way.
		m.refreshTodos()
	case actionLogout:
		if out.Kind == mutate.KindSuccess {
			m.loggedIn = false
		}
	}

	if out.Navigate != mutate.NavNone {
		m.navSeq++
		if out.Delay <= 0 {
			if v, ok := viewForDestination(out.Navigate); ok {
				mm, cmd := m.activate(v)
				return mm, tea.Batch(append(cmds, cmd)...)
			}
		} else {
			cmds = append(cmds, navigateAfterCmd(m.navSeq, out.Navigate, out.Delay))
		}
	}
	return m, tea.Batch(cmds...)
}

// activate switches screens. Entering the todos screen is a page
// activation: the session check and the list load run concurrently.
func (m appModel) activate(v view) (appModel, tea.Cmd) {
	m.view = v
	m.showHelp = false

	switch v {
	case viewLogin:
		m.loginEmail.SetValue("")
		m.loginPassword.SetValue("")
		m.loginFocus = formFocusFirst
		m.loginEmail.Focus()
		m.loginPassword.Blur()
		return m, textinput.Blink

	case viewRegister:
		m.regName.SetValue("")
		m.regEmail.SetValue("")
		m.regPassword.SetValue("")
		m.regFocus = formFocusFirst
		m.regName.Focus()
		m.regEmail.Blur()
		m.regPassword.Blur()
		return m, textinput.Blink

	case viewTodos:
		m.editTarget = ""
		m.titleInput.SetValue("")
		m.titleInput.Blur()
		m.descInput.SetValue("")
		m.descInput.Blur()
		m.todosFocus = focusList
		m.loading = true
		m.loadSeq++
		m.sessionSeq++
		return m, tea.Batch(m.checkSessionCmd(), m.loadTodosCmd(), m.spin.Tick)
	}
	return m, nil
}

func (m appModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		return m.activate(viewLogin)
	case "r":
		return m.activate(viewRegister)
	case "t", "enter":
		return m.activate(viewTodos)
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewHome
		return m, nil
	case "tab", "down":
		m.loginFocus = nextFormFocus(m.loginFocus, 2)
		return m.syncLoginFocus()
	case "shift+tab", "up":
		m.loginFocus = prevFormFocus(m.loginFocus, 2)
		return m.syncLoginFocus()
	case "enter":
		form := model.LoginForm{
			Email:    strings.TrimSpace(m.loginEmail.Value()),
			Password: m.loginPassword.Value(),
		}
		return m, m.loginCmd(form)
	}

	var cmd tea.Cmd
	switch m.loginFocus {
	case formFocusFirst:
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	case formFocusSecond:
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	}
	return m, cmd
}

func (m appModel) syncLoginFocus() (tea.Model, tea.Cmd) {
	m.loginEmail.Blur()
	m.loginPassword.Blur()
	switch m.loginFocus {
	case formFocusFirst:
		m.loginEmail.Focus()
	case formFocusSecond:
		m.loginPassword.Focus()
	}
	return m, textinput.Blink
}

func (m appModel) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewHome
		return m, nil
	case "tab", "down":
		m.regFocus = nextFormFocus(m.regFocus, 3)
		return m.syncRegisterFocus()
	case "shift+tab", "up":
		m.regFocus = prevFormFocus(m.regFocus, 3)
		return m.syncRegisterFocus()
	case "enter":
		form := model.RegisterForm{
			FullName: strings.TrimSpace(m.regName.Value()),
			Email:    strings.TrimSpace(m.regEmail.Value()),
			Password: m.regPassword.Value(),
		}
		return m, m.registerCmd(form)
	}

	var cmd tea.Cmd
	switch m.regFocus {
	case formFocusFirst:
		m.regName, cmd = m.regName.Update(msg)
	case formFocusSecond:
		m.regEmail, cmd = m.regEmail.Update(msg)
	case formFocusThird:
		m.regPassword, cmd = m.regPassword.Update(msg)
	}
	return m, cmd
}

func (m appModel) syncRegisterFocus() (tea.Model, tea.Cmd) {
	m.regName.Blur()
	m.regEmail.Blur()
	m.regPassword.Blur()
	switch m.regFocus {
	case formFocusFirst:
		m.regName.Focus()
	case formFocusSecond:
		m.regEmail.Focus()
	case formFocusThird:
		m.regPassword.Focus()
	}
	return m, textinput.Blink
}

func nextFormFocus(f formFocus, n int) formFocus {
	return formFocus((int(f) + 1) % n)
}

func prevFormFocus(f formFocus, n int) formFocus {
	return formFocus((int(f) + n - 1) % n)
}

func (m appModel) updateTodos(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "?":
		m.showHelp = true
		if m.helpCache == "" {
			m.helpCache = renderHelpMarkdown(m.width)
		}
		return m, nil

	case "esc":
		// Leaving the page tears its state down; note there is no
		// in-place cancel for an active edit.
		return m.activate(viewHome)

	case "ctrl+l":
		if !m.loggedIn {
			return m, nil
		}
		return m, m.logoutCmd()

	case "tab":
		m.todosFocus = nextTodosFocus(m.todosFocus)
		return m.syncTodosFocus()

	case "shift+tab":
		m.todosFocus = prevTodosFocus(m.todosFocus)
		return m.syncTodosFocus()

	case "enter":
		if m.editTarget != "" && m.todosFocus == focusTitle {
			return m, m.saveTitleCmd(m.editTarget, strings.TrimSpace(m.titleInput.Value()))
		}
		if m.todosFocus == focusTitle {
			// Move on to the description; ctrl+s submits.
			m.todosFocus = focusDescription
			return m.syncTodosFocus()
		}

	case "ctrl+s":
		if m.editTarget != "" {
			return m, m.saveTitleCmd(m.editTarget, strings.TrimSpace(m.titleInput.Value()))
		}
		return m, m.addTodoCmd(m.titleInput.Value(), m.descInput.Value())
	}

	if m.todosFocus == focusList {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "e":
			return m.beginEdit(m.selectedTodoID())
		case "d", "delete", "backspace":
			if id := m.selectedTodoID(); id != "" {
				return m, m.deleteTodoCmd(id)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.todosList, cmd = m.todosList.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.todosFocus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

// beginEdit enters edit mode on the given todo. The gate runs first; edit
// mode is exclusive, so targeting another todo silently discards an
// unsaved edit.
func (m appModel) beginEdit(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	if out, ok := m.co.Guard("edit Todo"); !ok {
		return m.applyOutcome("gate", out)
	}
	td, ok := m.co.List().Get(id)
	if !ok {
		return m, nil
	}
	m.editTarget = id
	m.titleInput.SetValue(td.Title)
	m.titleInput.CursorEnd()
	m.todosFocus = focusTitle
	return m.syncTodosFocus()
}

func (m appModel) syncTodosFocus() (tea.Model, tea.Cmd) {
	m.titleInput.Blur()
	m.descInput.Blur()
	switch m.todosFocus {
	case focusTitle:
		m.titleInput.Focus()
		return m, textinput.Blink
	case focusDescription:
		m.descInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func nextTodosFocus(f todosFocus) todosFocus {
	switch f {
	case focusTitle:
		return focusDescription
	case focusDescription:
		return focusList
	default:
		return focusTitle
	}
}

func prevTodosFocus(f todosFocus) todosFocus {
	switch f {
	case focusTitle:
		return focusList
	case focusDescription:
		return focusTitle
	default:
		return focusDescription
	}
}
