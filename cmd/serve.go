package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/courtside/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interview",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.WebAddr = addr
		}

		d, cleanup, err := buildDeps(cmd.Context(), cfg, "web", os.Stderr)
		if err != nil {
			return err
		}
		defer cleanup()

		srv, err := web.New(d.client,
			web.WithLogger(d.logger),
			web.WithDefectReporter(d.defects),
			web.WithEngine(d.engine, d.permission, cfg.SDKKey),
		)
		if err != nil {
			return fmt.Errorf("create web server: %w", err)
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.WebAddr) }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		d.logger.Info("shutting down web server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides COURTSIDE_WEB_ADDR env var)")
}
