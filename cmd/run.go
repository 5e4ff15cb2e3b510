package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/courtside/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the terminal interview (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	d, cleanup, err := buildDeps(cmd.Context(), cfg, "tui", nil)
	if err != nil {
		return err
	}
	defer cleanup()

	skip, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Client:     d.client,
		Engine:     d.engine,
		Permission: d.permission,
		SDKKey:     cfg.SDKKey,
		Defects:    d.defects,
		Logger:     d.logger,
		ServerURL:  cfg.ServerURL,
		SkipSplash: skip,
	})
}
