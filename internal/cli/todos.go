package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Todo list operations",
	}

	cmd.AddCommand(newTodosListCmd(app))
	cmd.AddCommand(newTodosAddCmd(app))
	cmd.AddCommand(newTodosEditCmd(app))
	cmd.AddCommand(newTodosDeleteCmd(app))

	return cmd
}

func newTodosListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Fetch and print the todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			co.LoadTodos(cmd.Context())
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"todos": co.List().Todos()}})
		},
	}
}

func newTodosAddCmd(app *App) *cobra.Command {
	var title string
	var description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			co.RefreshSession(cmd.Context())
			out := co.AddTodo(cmd.Context(), title, description)
			return writeOutcome(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Todo title")
	cmd.Flags().StringVar(&description, "description", "", "Todo description")

	return cmd
}

func newTodosEditCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "edit <todo-id>",
		Short: "Rename a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errors.New("missing --title"))
			}
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			co.RefreshSession(cmd.Context())
			// The server only knows records in the synced snapshot; fetch
			// first so the edit can be validated against it.
			co.LoadTodos(cmd.Context())
			out := co.SaveTitle(cmd.Context(), args[0], strings.TrimSpace(title))
			return writeOutcome(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")

	return cmd
}

func newTodosDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <todo-id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			co.RefreshSession(cmd.Context())
			return writeOutcome(cmd, app, co.DeleteTodo(cmd.Context(), args[0]))
		},
	}
}
