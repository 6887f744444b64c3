package cli

import (
	"errors"
	"strings"

	"tada-cli/internal/model"
	"tada-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return writeErr(cmd, errors.New("missing --email or --password"))
			}
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := co.Login(cmd.Context(), model.LoginForm{Email: strings.TrimSpace(email), Password: password})
			return writeOutcome(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
				return writeErr(cmd, errors.New("missing --name, --email or --password"))
			}
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			form := model.RegisterForm{
				FullName: strings.TrimSpace(name),
				Email:    strings.TrimSpace(email),
				Password: password,
			}
			return writeOutcome(cmd, app, co.Register(cmd.Context(), form))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the server session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOutcome(cmd, app, co.Logout(cmd.Context()))
		},
	}
}

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Session inspection",
	}
	cmd.AddCommand(newAuthStatusCmd(app))
	return cmd
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the saved session cookie is still valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			co, err := newCoordinator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			authed := co.RefreshSession(cmd.Context())
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"authenticated": authed}})
		},
	}
}

// writeOutcome renders a mutation outcome in the JSON envelope. A failed
// outcome still prints the server's message, then exits non-zero.
func writeOutcome(cmd *cobra.Command, app *App, out mutate.Outcome) error {
	data := map[string]any{
		"ok":      out.Kind == mutate.KindSuccess,
		"message": out.Message,
	}
	if out.Todo.ID != "" {
		data["todo"] = out.Todo
	}
	if err := writeOut(cmd, app, map[string]any{"data": data}); err != nil {
		return err
	}
	if out.Kind != mutate.KindSuccess {
		return errors.New(out.Message)
	}
	return nil
}
