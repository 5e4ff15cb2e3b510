package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/courtside/internal/config"
	"github.com/abhisek/courtside/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "courtside",
	Short: "Basketball injury triage client",
	Long:  "Courtside: answer an adaptive injury interview in the terminal or the browser and get a triage assessment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event log (overrides COURTSIDE_DB env var)")
	rootCmd.PersistentFlags().String("server", "", "Triage server base URL (overrides COURTSIDE_SERVER_URL env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings from defaults, .env, the environment and
// finally the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		cfg.ServerURL = s
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path, or the default XDG
// path, making sure its directory exists.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
