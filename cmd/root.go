package cmd

import (
	"context"
	"log"
	"time"

	"shortscope/internal/config"
	"shortscope/internal/dashboard"
	"shortscope/internal/storage"
	"shortscope/internal/yt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shortscope",
	Short: "Find recently uploaded short videos with high view counts",
	Long: `Shortscope queries the YouTube Data API for recently uploaded
short videos, filters them by duration and view count, and ranks them by
views.

Running without a subcommand opens the interactive dashboard: a results
table, view/duration/upload-hour charts, and CSV export.

Examples:
  shortscope                   # interactive dashboard
  shortscope report            # one-shot text report
  shortscope report --hours 24 --min-views 10000 --region US
  shortscope watch             # scheduled rescans with health endpoint`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		client, err := yt.NewClient(context.Background(), cfg.YouTube.APIKey)
		if err != nil {
			log.Fatalf("Failed to create YouTube client: %v", err)
		}

		// The dashboard works without the seen store; it just loses
		// the NEW markers.
		seen, err := storage.NewSeenStore(cfg.Watch.DataDir, time.Duration(cfg.Watch.SeenMaxAgeDays)*24*time.Hour)
		if err != nil {
			log.Printf("Warning: seen-video store unavailable: %v", err)
			seen = nil
		}

		model := dashboard.NewModel(client, cfg.Criteria(), cfg.Location(), seen)
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("Error running dashboard: %v", err)
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}
