// Package session tracks the client's belief about whether the current user
// is authenticated. The belief is re-derived from the server on every page
// activation and never cached across runs.
package session

import "context"

// AuthChecker is the slice of the API client the tracker needs.
type AuthChecker interface {
	CheckAuth(ctx context.Context) bool
}

// Tracker holds the current session belief. Fail-closed: the zero value
// reports not authenticated until a Refresh says otherwise.
type Tracker struct {
	checker       AuthChecker
	authenticated bool
}

func NewTracker(checker AuthChecker) *Tracker {
	return &Tracker{checker: checker}
}

// Refresh asks the server once and records the answer. Transport failures
// count as not authenticated; Refresh never returns an error.
func (t *Tracker) Refresh(ctx context.Context) bool {
	t.authenticated = t.checker.CheckAuth(ctx)
	return t.authenticated
}

// Authenticated reports the belief recorded by the last Refresh.
func (t *Tracker) Authenticated() bool { return t.authenticated }

// Invalidate drops the belief without asking the server (used after logout).
func (t *Tracker) Invalidate() { t.authenticated = false }
