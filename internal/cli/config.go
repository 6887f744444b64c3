package cli

import (
	"errors"
	"net/url"
	"strings"

	"tada-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Client configuration (~/.tada/config.json)",
	}

	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetOriginCmd(app))

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, _ := store.ConfigPath()
			effective := cfg.Origin
			if o := strings.TrimSpace(app.Origin); o != "" {
				effective = o
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":            path,
				"origin":          cfg.Origin,
				"effectiveOrigin": effective,
			}})
		},
	}
}

func newConfigSetOriginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-origin <url>",
		Short: "Set the API server origin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin := strings.TrimRight(strings.TrimSpace(args[0]), "/")
			u, err := url.Parse(origin)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return writeErr(cmd, errors.New("origin must be an absolute URL, e.g. https://todos.example.com"))
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.Origin = origin
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"origin": origin}})
		},
	}
}
