package cli

import (
	"tada-cli/internal/store"

	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent mutation outcomes recorded locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			al, err := store.OpenActivityLog(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer al.Close()

			entries, err := al.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"entries": entries}})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries to show (newest first)")

	return cmd
}
