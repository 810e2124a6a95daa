package cmd

import (
	"context"

	"github.com/abhisek/shardhunt/internal/config"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shardhunt",
	Short: "Hunt Elemental Shards around the Sacred Arena",
	Long: `Shardhunt is a terminal scavenger hunt. Check in at the arena, watch the
chronicle and decode the sigil to earn rewards, then collect them as
Earth, Water and Fire shards.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the root command. Subcommands see ctx through
// cmd.Context() and stop when it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SHARDHUNT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides SHARDHUNT_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(avatarCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SHARDHUNT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the --config file, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}
