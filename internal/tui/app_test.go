package tui

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"tada-cli/internal/api"
	"tada-cli/internal/model"
	"tada-cli/internal/mutate"
	"tada-cli/internal/session"
	"tada-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeAPI struct {
	authed    bool
	listTodos []model.Todo

	createRes api.CreateResult
	updateRes api.Result
	deleteRes api.Result
	loginRes  api.Result
	regRes    api.Result
	logoutRes api.Result

	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeAPI) CheckAuth(ctx context.Context) bool { return f.authed }

func (f *fakeAPI) Register(ctx context.Context, form model.RegisterForm) (api.Result, error) {
	return f.regRes, nil
}

func (f *fakeAPI) Login(ctx context.Context, form model.LoginForm) (api.Result, error) {
	return f.loginRes, nil
}

func (f *fakeAPI) Logout(ctx context.Context) (api.Result, error) {
	return f.logoutRes, nil
}

func (f *fakeAPI) ListTodos(ctx context.Context) ([]model.Todo, error) {
	return f.listTodos, nil
}

func (f *fakeAPI) CreateTodo(ctx context.Context, title, description string) (api.CreateResult, error) {
	f.createCalls++
	return f.createRes, nil
}

func (f *fakeAPI) UpdateTodo(ctx context.Context, id, title string) (api.Result, error) {
	f.updateCalls++
	return f.updateRes, nil
}

func (f *fakeAPI) DeleteTodo(ctx context.Context, id string) (api.Result, error) {
	f.deleteCalls++
	return f.deleteRes, nil
}

func newTestModel(f *fakeAPI) appModel {
	tr := session.NewTracker(f)
	tr.Refresh(context.Background())
	co := mutate.NewCoordinator(f, tr, store.NewList(), slog.New(slog.DiscardHandler))
	m := newAppModel(co)
	m.width = 100
	m.height = 40
	m.resize()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step feeds one message and, when a command comes back, keeps running the
// produced messages until the model settles. Timer-based messages
// (tea.Tick) are not executed; tests deliver those explicitly.
func step(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	return mm.(appModel)
}

// run executes the command an action produced and feeds its message back
// into the model. Follow-up commands from the message handling are timers
// (toast expiry, delayed navigation); tests deliver those explicitly
// instead of sleeping through tea.Tick.
func run(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = run(t, m, c)
		}
		return m
	}
	mm, _ := m.Update(msg)
	return mm.(appModel)
}

func activateTodos(t *testing.T, m appModel) appModel {
	t.Helper()
	mm, cmd := m.activate(viewTodos)
	if !mm.loading {
		t.Fatal("expected loading state on todos activation")
	}
	return run(t, mm, cmd)
}

func TestTodosActivationLoadsListAndSession(t *testing.T) {
	f := &fakeAPI{authed: true, listTodos: []model.Todo{
		{ID: "1", Title: "A", Description: "a"},
		{ID: "2", Title: "B", Description: "b"},
	}}
	m := activateTodos(t, newTestModel(f))

	if m.loading {
		t.Fatal("expected loading cleared after list fetch")
	}
	if !m.loggedIn {
		t.Fatal("expected session check result applied")
	}
	if len(m.todosList.Items()) != 2 {
		t.Fatalf("expected 2 list items, got %d", len(m.todosList.Items()))
	}
}

func TestStaleListLoadDiscarded(t *testing.T) {
	f := &fakeAPI{authed: true}
	m := newTestModel(f)
	mm, _ := m.activate(viewTodos)
	m = mm

	// A load finishing for an older activation must not clear loading.
	m = step(t, m, todosLoadedMsg{seq: m.loadSeq - 1})
	if !m.loading {
		t.Fatal("expected stale load to be discarded")
	}
}

func TestAddTodoSuccessClearsComposer(t *testing.T) {
	f := &fakeAPI{
		authed: true,
		createRes: api.CreateResult{
			Result: api.Result{OK: true, Message: "Todo created"},
			Todo:   model.Todo{ID: "1", Title: "A", Description: "B"},
		},
	}
	m := activateTodos(t, newTestModel(f))
	m.titleInput.SetValue("A")
	m.descInput.SetValue("B")

	mm, cmd := m.updateTodos(keyMsg("ctrl+s"))
	m = run(t, mm.(appModel), cmd)

	if m.toastText != "Todo created" || m.toastKind != mutate.KindSuccess {
		t.Fatalf("toast = %q (%v)", m.toastText, m.toastKind)
	}
	if m.titleInput.Value() != "" || m.descInput.Value() != "" {
		t.Fatal("expected composition buffer cleared on success")
	}
	if len(m.todosList.Items()) != 1 {
		t.Fatalf("expected the new todo in the list, got %d items", len(m.todosList.Items()))
	}
}

func TestAddTodoFailureKeepsComposer(t *testing.T) {
	f := &fakeAPI{
		authed:    true,
		createRes: api.CreateResult{Result: api.Result{OK: false, Message: "Title taken"}},
	}
	m := activateTodos(t, newTestModel(f))
	m.titleInput.SetValue("A")
	m.descInput.SetValue("B")

	mm, cmd := m.updateTodos(keyMsg("ctrl+s"))
	m = run(t, mm.(appModel), cmd)

	if m.toastText != "Title taken" || m.toastKind != mutate.KindError {
		t.Fatalf("toast = %q (%v)", m.toastText, m.toastKind)
	}
	if m.titleInput.Value() != "A" || m.descInput.Value() != "B" {
		t.Fatal("expected draft kept for retry")
	}
}

func TestGateBlocksAddAndSchedulesLoginRedirect(t *testing.T) {
	f := &fakeAPI{authed: false}
	m := activateTodos(t, newTestModel(f))
	m.titleInput.SetValue("Buy milk")
	m.descInput.SetValue("2%")

	mm, cmd := m.updateTodos(keyMsg("ctrl+s"))
	m = run(t, mm.(appModel), cmd)

	if m.toastText != "Please login to add Todo." {
		t.Fatalf("toast = %q", m.toastText)
	}
	if f.createCalls != 0 {
		t.Fatal("blocked action must not reach the network")
	}
	if m.view != viewTodos {
		t.Fatal("redirect must be delayed, not immediate")
	}
	// The scheduled navigation fires later.
	m = step(t, m, navigateMsg{seq: m.navSeq, dest: mutate.NavLogin})
	if m.view != viewLogin {
		t.Fatalf("expected login screen after delayed redirect, got %v", m.view)
	}
}

func TestBeginEditGateBlocked(t *testing.T) {
	f := &fakeAPI{authed: false, listTodos: []model.Todo{{ID: "1", Title: "A"}}}
	m := activateTodos(t, newTestModel(f))

	mm, cmd := m.updateTodos(keyMsg("e"))
	m = run(t, mm.(appModel), cmd)

	if m.toastText != "Please login to edit Todo." {
		t.Fatalf("toast = %q", m.toastText)
	}
	if m.editTarget != "" {
		t.Fatal("blocked edit must not set an edit target")
	}
}

func TestEditSwitchDiscardsUnsavedEdit(t *testing.T) {
	f := &fakeAPI{authed: true, listTodos: []model.Todo{
		{ID: "1", Title: "A", Description: "a"},
		{ID: "2", Title: "B", Description: "b"},
	}}
	m := activateTodos(t, newTestModel(f))

	mm, _ := m.updateTodos(keyMsg("e"))
	m = mm.(appModel)
	if m.editTarget != "1" {
		t.Fatalf("editTarget = %q", m.editTarget)
	}
	m.titleInput.SetValue("half-finished edit")

	// Move the selection and start editing the other todo: the unsaved
	// edit is discarded without confirmation.
	m.todosFocus = focusList
	m.todosList.Select(1)
	mm, _ = m.updateTodos(keyMsg("e"))
	m = mm.(appModel)

	if m.editTarget != "2" {
		t.Fatalf("editTarget = %q", m.editTarget)
	}
	if m.titleInput.Value() != "B" {
		t.Fatalf("expected buffer reloaded from new target, got %q", m.titleInput.Value())
	}
	if td, _ := m.co.List().Get("1"); td.Title != "A" {
		t.Fatalf("record 1 must be unchanged, got %+v", td)
	}
	if f.updateCalls != 0 {
		t.Fatal("switching targets must not send a request")
	}
}

func TestSaveTitleSuccess(t *testing.T) {
	f := &fakeAPI{
		authed:    true,
		listTodos: []model.Todo{{ID: "1", Title: "A", Description: "a"}},
		updateRes: api.Result{OK: true, Message: "Updated"},
	}
	m := activateTodos(t, newTestModel(f))

	mm, _ := m.updateTodos(keyMsg("e"))
	m = mm.(appModel)
	m.titleInput.SetValue("C")

	mm, cmd := m.updateTodos(keyMsg("enter"))
	m = run(t, mm.(appModel), cmd)

	if m.toastText != "Updated" {
		t.Fatalf("toast = %q", m.toastText)
	}
	if m.editTarget != "" {
		t.Fatal("expected edit mode cleared after save")
	}
	if td, _ := m.co.List().Get("1"); td.Title != "C" || td.Description != "a" {
		t.Fatalf("expected title patched, description kept; got %+v", td)
	}
}

func TestDeleteRejectionKeepsListButShowsMessage(t *testing.T) {
	f := &fakeAPI{
		authed:    true,
		listTodos: []model.Todo{{ID: "1", Title: "A"}},
		deleteRes: api.Result{OK: false, Message: "Not yours"},
	}
	m := activateTodos(t, newTestModel(f))

	mm, cmd := m.updateTodos(keyMsg("d"))
	m = run(t, mm.(appModel), cmd)

	if m.toastText != "Not yours" {
		t.Fatalf("toast = %q", m.toastText)
	}
	if len(m.todosList.Items()) != 1 {
		t.Fatal("list must be unchanged on rejected delete")
	}
}

func TestLogoutNavigatesImmediately(t *testing.T) {
	f := &fakeAPI{authed: true, logoutRes: api.Result{OK: true, Message: "Bye"}}
	m := activateTodos(t, newTestModel(f))

	mm, cmd := m.updateTodos(keyMsg("ctrl+l"))
	m = run(t, mm.(appModel), cmd)

	if m.view != viewLogin {
		t.Fatalf("expected immediate navigation to login, got %v", m.view)
	}
	if m.loggedIn {
		t.Fatal("expected loggedIn cleared")
	}
}

func TestLoginSuccessSchedulesTodosRedirect(t *testing.T) {
	f := &fakeAPI{loginRes: api.Result{OK: true, Message: "Welcome back"}}
	m := newTestModel(f)
	mm, _ := m.activate(viewLogin)
	m = mm
	m.loginEmail.SetValue("a@b.c")
	m.loginPassword.SetValue("pw")

	mm2, cmd := m.updateLogin(keyMsg("enter"))
	m = run(t, mm2.(appModel), cmd)

	if m.toastText != "✅ Welcome back" {
		t.Fatalf("toast = %q", m.toastText)
	}
	if m.view != viewLogin {
		t.Fatal("redirect must wait for the toast")
	}
	f.authed = true
	m = step(t, m, navigateMsg{seq: m.navSeq, dest: mutate.NavTodos})
	if m.view != viewTodos {
		t.Fatalf("expected todos screen, got %v", m.view)
	}
}

func TestStaleNavigateIgnored(t *testing.T) {
	f := &fakeAPI{}
	m := newTestModel(f)
	m.navSeq = 3

	m = step(t, m, navigateMsg{seq: 2, dest: mutate.NavLogin})
	if m.view != viewHome {
		t.Fatal("stale navigation must be discarded")
	}
}

func TestToastAutoClose(t *testing.T) {
	f := &fakeAPI{}
	m := newTestModel(f)
	m.toastText = "hello"
	m.toastSeq = 5

	// Older timer: ignored.
	m = step(t, m, toastDoneMsg{seq: 4})
	if m.toastText != "hello" {
		t.Fatal("stale toast timer must be ignored")
	}
	m = step(t, m, toastDoneMsg{seq: 5})
	if m.toastText != "" {
		t.Fatal("expected toast cleared")
	}
}

func TestEmptyListShowsNoTodosFound(t *testing.T) {
	f := &fakeAPI{authed: true}
	m := activateTodos(t, newTestModel(f))
	out := m.View()
	if !strings.Contains(out, "No todos found") {
		t.Fatal("expected empty state in view")
	}
}
