package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"shortscope/internal/ai"
	"shortscope/internal/config"
	"shortscope/internal/report"
	"shortscope/internal/search"
	"shortscope/internal/yt"

	"github.com/spf13/cobra"
)

var (
	reportHours       int
	reportMaxDuration int
	reportMinViews    int64
	reportRegion      string
	reportQuery       string
	reportCap         int
	reportPageSize    int64
	reportRanking     string
	reportCategory    string
	reportTimezone    string
	reportCSVPath     string
	reportSummarize   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run one scan and print a text report",
	Long: `Run a single bounded scan and print the ranked list, aggregate
statistics, and the hour-of-day upload distribution. Flags override the
corresponding config file settings.

Examples:
  shortscope report
  shortscope report --hours 24 --min-views 10000 --region US
  shortscope report --ranking popularity --csv shorts.csv
  shortscope report --summarize`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		applyReportFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid search settings: %v", err)
		}

		ctx := context.Background()
		client, err := yt.NewClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			log.Fatalf("Failed to create YouTube client: %v", err)
		}

		retriever := search.New(client, search.WithProgress(func(page, accumulated int) {
			fmt.Fprintf(os.Stderr, "page %d done, %d matches so far\n", page, accumulated)
		}))

		videos, err := retriever.Retrieve(ctx, cfg.Criteria())
		if err != nil {
			var provErr *search.ProviderError
			if errors.As(err, &provErr) {
				fmt.Fprintf(os.Stderr, "Warning: %v; showing %d partial results\n", provErr, len(videos))
			} else {
				log.Fatalf("Scan failed: %v", err)
			}
		}

		loc := cfg.Location()
		report.Render(os.Stdout, videos, loc)

		if reportSummarize && len(videos) > 0 {
			summarizer, err := ai.NewSummarizer(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
			if err != nil {
				log.Fatalf("Failed to create summarizer: %v", err)
			}
			summary, err := summarizer.Summarize(ctx, videos, loc)
			if err != nil {
				log.Printf("Warning: trend summary failed: %v", err)
			} else {
				fmt.Println("\n=== Trend Summary ===")
				fmt.Println(summary)
			}
		}

		if reportCSVPath != "" {
			f, err := os.Create(reportCSVPath)
			if err != nil {
				log.Fatalf("Failed to create CSV file: %v", err)
			}
			defer f.Close()
			if err := report.WriteCSV(f, videos, loc); err != nil {
				log.Fatalf("Failed to write CSV: %v", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", reportCSVPath)
		}
	},
}

// applyReportFlags copies only the flags the user actually set onto the
// loaded config, so the config file keeps supplying the rest.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("hours") {
		cfg.Search.TimeWindowHours = reportHours
	}
	if cmd.Flags().Changed("max-duration") {
		cfg.Search.MaxDurationSeconds = reportMaxDuration
	}
	if cmd.Flags().Changed("min-views") {
		cfg.Search.MinViewCount = reportMinViews
	}
	if cmd.Flags().Changed("region") {
		cfg.Search.Region = reportRegion
	}
	if cmd.Flags().Changed("query") {
		cfg.Search.Query = reportQuery
	}
	if cmd.Flags().Changed("cap") {
		cfg.Search.ResultCap = reportCap
	}
	if cmd.Flags().Changed("page-size") {
		cfg.Search.PageSize = reportPageSize
	}
	if cmd.Flags().Changed("ranking") {
		cfg.Search.Ranking = reportRanking
	}
	if cmd.Flags().Changed("category") {
		cfg.Search.Category = reportCategory
	}
	if cmd.Flags().Changed("timezone") {
		cfg.Display.Timezone = reportTimezone
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&reportHours, "hours", 168, "Upload window in hours (1-720)")
	reportCmd.Flags().IntVar(&reportMaxDuration, "max-duration", 60, "Maximum video length in seconds (10-180)")
	reportCmd.Flags().Int64Var(&reportMinViews, "min-views", 1000, "Minimum view count (0-1000000)")
	reportCmd.Flags().StringVar(&reportRegion, "region", "KR", "Region code (KR, US, JP, ...)")
	reportCmd.Flags().StringVarP(&reportQuery, "query", "q", "", "Search term; empty matches everything")
	reportCmd.Flags().IntVar(&reportCap, "cap", 200, "Soft cap on total results")
	reportCmd.Flags().Int64Var(&reportPageSize, "page-size", 50, "Results per page (10-200, provider caps at 50)")
	reportCmd.Flags().StringVar(&reportRanking, "ranking", "recency", "Ranking mode: recency or popularity")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "Category name (music, gaming, ...)")
	reportCmd.Flags().StringVar(&reportTimezone, "timezone", "Asia/Seoul", "Display timezone (IANA name)")
	reportCmd.Flags().StringVar(&reportCSVPath, "csv", "", "Also write results to this CSV file")
	reportCmd.Flags().BoolVar(&reportSummarize, "summarize", false, "Append an AI trend summary (needs GEMINI_API_KEY)")
}
