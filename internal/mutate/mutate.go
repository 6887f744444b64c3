// Package mutate orchestrates every server mutation: gate on session state,
// validate, call the API, patch the in-memory list only on confirmed
// success, and hand back a single Outcome describing what to show the user
// and where to go next. No operation here returns an error to its caller;
// failures resolve into Outcomes.
package mutate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tada-cli/internal/api"
	"tada-cli/internal/model"
	"tada-cli/internal/session"
	"tada-cli/internal/store"
)

// Kind says how the notification should be presented.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// Destination names a screen to navigate to after the notification.
type Destination string

const (
	NavNone  Destination = ""
	NavLogin Destination = "login"
	NavTodos Destination = "todos"
)

// Redirect delays: long enough to read the welcome toast after login or
// register; a bit shorter for the "please login" reminder.
const (
	AuthRedirectDelay = 2000 * time.Millisecond
	GateRedirectDelay = 1600 * time.Millisecond
)

// Outcome is the terminal result of one user action.
type Outcome struct {
	Kind     Kind
	Message  string
	Navigate Destination
	Delay    time.Duration

	// Blocked is set when the session gate short-circuited the action
	// before validation or any network call.
	Blocked bool

	// Todo carries the server-assigned record for a successful create.
	Todo model.Todo
}

// API is the slice of the HTTP client the coordinator needs.
type API interface {
	Register(ctx context.Context, form model.RegisterForm) (api.Result, error)
	Login(ctx context.Context, form model.LoginForm) (api.Result, error)
	Logout(ctx context.Context) (api.Result, error)
	ListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, title, description string) (api.CreateResult, error)
	UpdateTodo(ctx context.Context, id, title string) (api.Result, error)
	DeleteTodo(ctx context.Context, id string) (api.Result, error)
}

// Coordinator wires the API client, session tracker and list store together.
type Coordinator struct {
	api      API
	session  *session.Tracker
	list     *store.List
	log      *slog.Logger
	activity *store.ActivityLog // optional
}

func NewCoordinator(a API, tr *session.Tracker, l *store.List, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{api: a, session: tr, list: l, log: log}
}

// SetActivityLog enables best-effort recording of mutation outcomes.
func (c *Coordinator) SetActivityLog(al *store.ActivityLog) { c.activity = al }

func (c *Coordinator) Session() *session.Tracker { return c.session }
func (c *Coordinator) List() *store.List         { return c.list }

// Guard is the action gate. The session check comes strictly before any
// field validation; a false belief blocks the action with a reminder toast
// and a delayed redirect to the login screen.
func (c *Coordinator) Guard(action string) (Outcome, bool) {
	if c.session.Authenticated() {
		return Outcome{}, true
	}
	return Outcome{
		Kind:     KindError,
		Message:  "Please login to " + action + ".",
		Navigate: NavLogin,
		Delay:    GateRedirectDelay,
		Blocked:  true,
	}, false
}

// RefreshSession re-derives the session belief from the server.
func (c *Coordinator) RefreshSession(ctx context.Context) bool {
	return c.session.Refresh(ctx)
}

// LoadTodos populates the list from a full fetch. It never surfaces an error
// to the user: a malformed body leaves the store empty and logs a
// diagnostic; a transport failure leaves the store in its prior state.
func (c *Coordinator) LoadTodos(ctx context.Context) {
	todos, err := c.api.ListTodos(ctx)
	if err != nil {
		var de *api.DecodeError
		if errors.As(err, &de) {
			c.log.Error("invalid todos response", "err", err)
			c.list.Load(nil)
			return
		}
		c.log.Error("todos fetch failed", "err", err)
		return
	}
	c.list.Load(todos)
}

// AddTodo creates a record. On success the caller should clear the
// composition buffer; on failure the buffer is kept so the user can retry.
func (c *Coordinator) AddTodo(ctx context.Context, title, description string) Outcome {
	if out, ok := c.Guard("add Todo"); !ok {
		return out
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return Outcome{Kind: KindError, Message: "All fields are required."}
	}

	res, err := c.api.CreateTodo(ctx, title, description)
	if err != nil {
		c.log.Error("add todo failed", "err", err)
		return Outcome{Kind: KindError, Message: "Add todo failed. Please try again."}
	}
	c.recordActivity(ctx, "create", res.Todo.ID, res.OK, res.Message)
	if !res.OK {
		return Outcome{Kind: KindError, Message: res.Message}
	}
	c.list.Append(res.Todo)
	return Outcome{Kind: KindSuccess, Message: res.Message, Todo: res.Todo}
}

// SaveTitle applies an edit-mode title change to the given record.
func (c *Coordinator) SaveTitle(ctx context.Context, id, title string) Outcome {
	if out, ok := c.Guard("edit Todo"); !ok {
		return out
	}
	if !c.list.Contains(id) {
		return Outcome{Kind: KindError, Message: "Todo not found."}
	}

	res, err := c.api.UpdateTodo(ctx, id, title)
	if err != nil {
		c.log.Error("edit todo failed", "id", id, "err", err)
		return Outcome{Kind: KindError, Message: "Edit todo failed. Please try again."}
	}
	c.recordActivity(ctx, "update", id, res.OK, res.Message)
	if !res.OK {
		return Outcome{Kind: KindError, Message: res.Message}
	}
	c.list.PatchTitle(id, title)
	return Outcome{Kind: KindSuccess, Message: res.Message}
}

// DeleteTodo removes a record. The server's message is shown regardless of
// outcome; the list shrinks only on a confirmed success.
func (c *Coordinator) DeleteTodo(ctx context.Context, id string) Outcome {
	if out, ok := c.Guard("delete Todo"); !ok {
		return out
	}

	res, err := c.api.DeleteTodo(ctx, id)
	if err != nil {
		c.log.Error("delete todo failed", "id", id, "err", err)
		return Outcome{Kind: KindError, Message: "Delete todo failed. Please try again."}
	}
	c.recordActivity(ctx, "delete", id, res.OK, res.Message)
	if !res.OK {
		return Outcome{Kind: KindError, Message: res.Message}
	}
	c.list.Remove(id)
	return Outcome{Kind: KindSuccess, Message: res.Message}
}

// Login authenticates and, on success, redirects to the todos screen after
// the welcome toast has had time to be read.
func (c *Coordinator) Login(ctx context.Context, form model.LoginForm) Outcome {
	res, err := c.api.Login(ctx, form)
	if err != nil {
		c.log.Error("login failed", "err", err)
		return Outcome{Kind: KindError, Message: "❌ Login failed. Please try again."}
	}
	if !res.OK {
		return Outcome{Kind: KindError, Message: "⚠️ " + res.Message}
	}
	return Outcome{
		Kind:     KindSuccess,
		Message:  "✅ " + res.Message,
		Navigate: NavTodos,
		Delay:    AuthRedirectDelay,
	}
}

// Register creates an account and, on success, redirects to the login screen.
func (c *Coordinator) Register(ctx context.Context, form model.RegisterForm) Outcome {
	res, err := c.api.Register(ctx, form)
	if err != nil {
		c.log.Error("register failed", "err", err)
		return Outcome{Kind: KindError, Message: "❌ Registration failed. Please try again."}
	}
	if !res.OK {
		return Outcome{Kind: KindError, Message: "⚠️ " + res.Message}
	}
	return Outcome{
		Kind:     KindSuccess,
		Message:  "✅ " + res.Message,
		Navigate: NavLogin,
		Delay:    AuthRedirectDelay,
	}
}

// Logout ends the session. Navigation is immediate: nothing further can be
// done on the todos screen either way.
func (c *Coordinator) Logout(ctx context.Context) Outcome {
	res, err := c.api.Logout(ctx)
	if err != nil {
		c.log.Error("logout failed", "err", err)
		return Outcome{Kind: KindError, Message: "❌ Logout failed. Please try again."}
	}
	if !res.OK {
		return Outcome{Kind: KindError, Message: "⚠️ " + res.Message}
	}
	c.session.Invalidate()
	return Outcome{
		Kind:     KindSuccess,
		Message:  "✅ " + res.Message,
		Navigate: NavLogin,
	}
}

func (c *Coordinator) recordActivity(ctx context.Context, action, id string, ok bool, msg string) {
	if c.activity == nil {
		return
	}
	if err := c.activity.Record(ctx, store.ActivityEntry{
		Action:  action,
		TodoID:  id,
		OK:      ok,
		Message: msg,
	}); err != nil {
		c.log.Debug("activity record failed", "err", err)
	}
}
