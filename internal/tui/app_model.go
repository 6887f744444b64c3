package tui

import (
	"tada-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	co *mutate.Coordinator

	width  int
	height int

	view view

	// Login form.
	loginEmail    textinput.Model
	loginPassword textinput.Model
	loginFocus    formFocus

	// Register form.
	regName     textinput.Model
	regEmail    textinput.Model
	regPassword textinput.Model
	regFocus    formFocus

	// Todos screen. The title input is shared between the composer and the
	// in-place edit flow, as the edit target below is what says which mode
	// is active.
	titleInput textinput.Model
	descInput  textarea.Model
	todosList  list.Model
	todosFocus todosFocus
	spin       spinner.Model
	loading    bool
	loggedIn   bool
	editTarget string
	loadSeq    int
	sessionSeq int

	// Toast + scheduled navigation, both guarded by seqs so stale timers
	// are discarded.
	toastText string
	toastKind mutate.Kind
	toastSeq  int
	navSeq    int

	showHelp  bool
	helpCache string
}

func newAppModel(co *mutate.Coordinator) appModel {
	m := appModel{
		co:   co,
		view: viewHome,
	}

	m.loginEmail = textinput.New()
	m.loginEmail.Placeholder = "Email"
	m.loginEmail.CharLimit = 200
	m.loginEmail.Width = 40
	m.loginPassword = textinput.New()
	m.loginPassword.Placeholder = "Password"
	m.loginPassword.EchoMode = textinput.EchoPassword
	m.loginPassword.CharLimit = 200
	m.loginPassword.Width = 40

	m.regName = textinput.New()
	m.regName.Placeholder = "Full name"
	m.regName.CharLimit = 200
	m.regName.Width = 40
	m.regEmail = textinput.New()
	m.regEmail.Placeholder = "Email"
	m.regEmail.CharLimit = 200
	m.regEmail.Width = 40
	m.regPassword = textinput.New()
	m.regPassword.Placeholder = "Password"
	m.regPassword.EchoMode = textinput.EchoPassword
	m.regPassword.CharLimit = 200
	m.regPassword.Width = 40

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Enter title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 40

	m.descInput = textarea.New()
	m.descInput.Placeholder = "Enter description"
	m.descInput.CharLimit = 0
	m.descInput.SetWidth(60)
	m.descInput.SetHeight(3)
	m.descInput.ShowLineNumbers = false

	m.todosList = newTodosList()
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))

	return m
}

func newTodosList() list.Model {
	l := list.New([]list.Item{}, newTodoDelegate(), 0, 0)
	// We render our own chrome (header, toast bar, footer).
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("todo", "todos")
	// Bubble list defaults to quitting on ESC; here ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	return l
}

// refreshTodos mirrors the store into the visible list, keeping the
// selection on the same id when it survives.
func (m *appModel) refreshTodos() {
	curID := ""
	if it, ok := m.todosList.SelectedItem().(todoItem); ok {
		curID = it.todo.ID
	}
	var items []list.Item
	for _, td := range m.co.List().Todos() {
		items = append(items, todoItem{todo: td})
	}
	m.todosList.SetItems(items)
	if curID != "" {
		for i, it := range m.todosList.Items() {
			if ti, ok := it.(todoItem); ok && ti.todo.ID == curID {
				m.todosList.Select(i)
				break
			}
		}
	}
}

func (m *appModel) selectedTodoID() string {
	if it, ok := m.todosList.SelectedItem().(todoItem); ok {
		return it.todo.ID
	}
	return ""
}

func (m *appModel) resize() {
	h := m.height - 16
	if h < 5 {
		h = 5
	}
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	m.todosList.SetSize(w, h)
}
