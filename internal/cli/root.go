package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"tada-cli/internal/api"
	"tada-cli/internal/format"
	"tada-cli/internal/logging"
	"tada-cli/internal/mutate"
	"tada-cli/internal/session"
	"tada-cli/internal/store"
	"tada-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Origin     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tada",
		Short:        "tada - todo client CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tada

  # Scriptable commands
  tada login --email you@example.com --password secret
  tada todos list

  # Session check
  tada auth status
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Origin, "origin", envOr("TADA_ORIGIN", ""), "API server origin (overrides origin in config.json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TADA_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newTodosCmd(app))
	cmd.AddCommand(newActivityCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	co, err := newCoordinator(app)
	if err != nil {
		return err
	}
	return tui.Run(co)
}

// resolveOrigin applies the precedence --origin > TADA_ORIGIN > config.json.
func resolveOrigin(app *App) (string, error) {
	if o := strings.TrimSpace(app.Origin); o != "" {
		return o, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return "", err
	}
	if o := strings.TrimSpace(cfg.Origin); o != "" {
		return o, nil
	}
	return "", fmt.Errorf("no server origin configured; pass --origin, set TADA_ORIGIN, or run `tada config set-origin <url>`")
}

// newClient builds the API client with the cookie jar persisted under the
// config dir, so sessions survive across CLI invocations.
func newClient(app *App, log *slog.Logger) (*api.Client, error) {
	origin, err := resolveOrigin(app)
	if err != nil {
		return nil, err
	}
	c, err := api.New(origin, log)
	if err != nil {
		return nil, err
	}
	if jar, err := store.CookiePath(); err == nil {
		if err := c.PersistCookies(jar); err != nil {
			log.Warn("cookie jar unavailable, session will not persist", "path", jar, "error", err)
		}
	}
	return c, nil
}

func newCoordinator(app *App) (*mutate.Coordinator, error) {
	log := newLogger()
	c, err := newClient(app, log)
	if err != nil {
		return nil, err
	}
	co := mutate.NewCoordinator(c, session.NewTracker(c), store.NewList(), log)
	if al, err := store.OpenActivityLog(context.Background()); err == nil {
		co.SetActivityLog(al)
	}
	return co, nil
}

func newLogger() *slog.Logger {
	path, err := store.LogPath()
	if err != nil {
		path = ""
	}
	return logging.New(path)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
