package tui

import (
	"tada-cli/internal/model"
)

type todoItem struct {
	todo model.Todo
}

func (t todoItem) Title() string       { return t.todo.Title }
func (t todoItem) Description() string { return t.todo.Description }
func (t todoItem) FilterValue() string { return t.todo.Title }
