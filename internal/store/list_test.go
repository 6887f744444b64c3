package store

import (
	"testing"

	"tada-cli/internal/model"
)

func sample() []model.Todo {
	return []model.Todo{
		{ID: "1", Title: "A", Description: "a"},
		{ID: "2", Title: "B", Description: "b"},
	}
}

func TestLoadReplacesWholesale(t *testing.T) {
	l := NewList()
	l.Load(sample())
	if l.Len() != 2 {
		t.Fatalf("expected 2 todos, got %d", l.Len())
	}

	// Loading the same server state again must not duplicate.
	l.Load(sample())
	if l.Len() != 2 {
		t.Fatalf("expected load to be idempotent, got %d", l.Len())
	}

	l.Load(nil)
	if l.Len() != 0 {
		t.Fatalf("expected empty after loading empty snapshot, got %d", l.Len())
	}
	if !l.Loaded() {
		t.Fatal("expected Loaded() true even for an empty snapshot")
	}
}

func TestAppend(t *testing.T) {
	l := NewList()
	l.Load(sample())
	l.Append(model.Todo{ID: "3", Title: "C", Description: "c"})
	if l.Len() != 3 {
		t.Fatalf("expected 3 todos, got %d", l.Len())
	}
	got := l.Todos()
	if got[2].ID != "3" {
		t.Fatalf("expected append at the end, got %+v", got)
	}
}

func TestPatchTitle(t *testing.T) {
	l := NewList()
	l.Load(sample())

	l.PatchTitle("1", "C")
	td, ok := l.Get("1")
	if !ok || td.Title != "C" {
		t.Fatalf("expected title patched, got %+v", td)
	}
	if td.Description != "a" {
		t.Fatalf("patch must not touch description, got %q", td.Description)
	}

	// Absent id is a no-op.
	l.PatchTitle("missing", "X")
	if l.Len() != 2 {
		t.Fatalf("expected no-op for absent id, got %d todos", l.Len())
	}
}

func TestRemove(t *testing.T) {
	l := NewList()
	l.Load(sample())

	l.Remove("1")
	if l.Contains("1") {
		t.Fatal("expected id 1 removed")
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 todo left, got %d", l.Len())
	}

	l.Remove("missing")
	if l.Len() != 1 {
		t.Fatalf("expected no-op for absent id, got %d", l.Len())
	}
}

func TestTodosReturnsCopy(t *testing.T) {
	l := NewList()
	l.Load(sample())
	got := l.Todos()
	got[0].Title = "mutated"
	if td, _ := l.Get("1"); td.Title != "A" {
		t.Fatal("Todos() must return a copy, not the backing slice")
	}
}
