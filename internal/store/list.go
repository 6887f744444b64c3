package store

import (
	"tada-cli/internal/model"
)

// List is the in-memory ordered collection of todos mirroring server state.
// It is only ever mutated from confirmed server responses; the mutation layer
// guarantees appended ids are new, so List itself does no duplicate checks.
//
// Not safe for concurrent use; the TUI's message loop and the CLI are both
// single-threaded callers.
type List struct {
	todos  []model.Todo
	loaded bool
}

func NewList() *List { return &List{} }

// Load replaces the whole collection with a fresh server snapshot.
func (l *List) Load(todos []model.Todo) {
	l.todos = append(l.todos[:0:0], todos...)
	l.loaded = true
}

// Loaded reports whether an initial Load happened (even an empty one).
func (l *List) Loaded() bool { return l.loaded }

// Append adds one record assumed new.
func (l *List) Append(todo model.Todo) {
	l.todos = append(l.todos, todo)
}

// PatchTitle replaces the title of the record with the given id. No-op when
// the id is absent.
func (l *List) PatchTitle(id, title string) {
	for i := range l.todos {
		if l.todos[i].ID == id {
			l.todos[i].Title = title
			return
		}
	}
}

// Remove deletes the record with the given id. No-op when absent.
func (l *List) Remove(id string) {
	for i := range l.todos {
		if l.todos[i].ID == id {
			l.todos = append(l.todos[:i], l.todos[i+1:]...)
			return
		}
	}
}

// Todos returns a copy of the collection in display order.
func (l *List) Todos() []model.Todo {
	return append([]model.Todo(nil), l.todos...)
}

// Get returns the record with the given id.
func (l *List) Get(id string) (model.Todo, bool) {
	for _, td := range l.todos {
		if td.ID == id {
			return td, true
		}
	}
	return model.Todo{}, false
}

// Contains reports whether the id is present.
func (l *List) Contains(id string) bool {
	_, ok := l.Get(id)
	return ok
}

func (l *List) Len() int { return len(l.todos) }
