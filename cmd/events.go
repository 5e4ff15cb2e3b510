package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/courtside/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent request and defect events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().Recent(cmd.Context(), store.QueryOpts{Limit: limit, Kind: kind})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-7s  %-20s  %-36s  %s\n",
			"Seq", "Timestamp", "Kind", "Subject", "Session", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			subject := e.Subject
			if len(subject) > 20 {
				subject = subject[:20]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-7s  %-20s  %-36s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Kind,
				subject,
				e.SessionID,
				ok,
			)
			if e.Detail != "" {
				fmt.Fprintf(out, "       %s\n", e.Detail)
			}
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	eventsCmd.Flags().String("kind", "", "Only show events of this kind (request or defect)")
}
