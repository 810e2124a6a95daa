package cmd

import (
	"github.com/abhisek/shardhunt/internal/app"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(cmd.Context(), app.Options{
		Service: e.svc,
		KV:      e.kv,
		Logger:  e.log.Named("tui"),
	})
}
