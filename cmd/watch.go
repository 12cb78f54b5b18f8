package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortscope/internal/ai"
	"shortscope/internal/config"
	"shortscope/internal/email"
	"shortscope/internal/models"
	"shortscope/internal/monitoring"
	"shortscope/internal/scheduler"
	"shortscope/internal/search"
	"shortscope/internal/storage"
	"shortscope/internal/yt"

	"github.com/spf13/cobra"
)

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan on a schedule and deliver digests of new videos",
	Long: `Run scans on the configured cron schedule (6 fields, seconds
first). Each scan logs a report of newly surfaced videos and, when the
email section is configured and watch.email is true, mails a digest.
A health endpoint is served on watch.health_port.

Examples:
  shortscope watch
  shortscope watch --once`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		monitor := monitoring.NewMonitor()
		job := &scanJob{cfg: cfg, monitor: monitor}
		s := scheduler.New(cfg.Watch.Schedule, cfg.Watch.HealthPort, monitor, job)

		if watchOnce {
			fmt.Println("Running once...")
			if err := s.RunOnce(ctx); err != nil {
				log.Fatalf("Failed to run: %v", err)
			}
			return
		}

		fmt.Println("Starting scheduler...")
		if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Scheduler failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Run a single scan and exit")
}

// scanJob is the scheduled unit of work: scan, mark new videos seen,
// and deliver a digest for them.
type scanJob struct {
	cfg        *config.Config
	monitor    *monitoring.Monitor
	retriever  *search.Retriever
	seen       *storage.SeenStore
	sender     *email.Sender
	summarizer *ai.Summarizer
}

func (j *scanJob) Name() string { return "short-video scan" }

func (j *scanJob) Initialize() error {
	log.Printf("Initializing %s...", j.Name())

	if j.retriever == nil {
		client, err := yt.NewClient(context.Background(), j.cfg.YouTube.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		j.retriever = search.New(client)
		log.Println("YouTube client initialized")
	}

	if j.seen == nil {
		maxAge := time.Duration(j.cfg.Watch.SeenMaxAgeDays) * 24 * time.Hour
		seen, err := storage.NewSeenStore(j.cfg.Watch.DataDir, maxAge)
		if err != nil {
			return fmt.Errorf("failed to create seen-video store: %w", err)
		}
		j.seen = seen
		log.Printf("Seen-video store initialized (%d videos tracked)", seen.Count())
	}

	if j.cfg.Watch.Email && j.cfg.EmailConfigured() && j.sender == nil {
		j.sender = email.NewSender(&j.cfg.Email)
		log.Println("Email sender initialized")
	}

	if j.cfg.Watch.Email && j.cfg.AI.GeminiAPIKey != "" && j.summarizer == nil {
		summarizer, err := ai.NewSummarizer(context.Background(), j.cfg.AI.GeminiAPIKey, j.cfg.AI.Model)
		if err != nil {
			return fmt.Errorf("failed to create summarizer: %w", err)
		}
		j.summarizer = summarizer
		log.Println("Trend summarizer initialized")
	}

	return nil
}

func (j *scanJob) Run(ctx context.Context) error {
	startTime := time.Now()

	videos, err := j.retriever.Retrieve(ctx, j.cfg.Criteria())
	partial := false
	if err != nil {
		var provErr *search.ProviderError
		if errors.As(err, &provErr) && len(videos) > 0 {
			j.monitor.RecordPartialFailure(provErr, len(videos), time.Since(startTime))
			partial = true
		} else {
			j.monitor.RecordCriticalFailure(err, time.Since(startTime))
			return fmt.Errorf("scan failed: %w", err)
		}
	}

	var fresh []*models.Video
	var freshIDs []string
	for _, v := range videos {
		if !j.seen.IsSeen(v.ID) {
			fresh = append(fresh, v)
			freshIDs = append(freshIDs, v.ID)
		}
	}

	log.Printf("Scan found %d videos (%d new)", len(videos), len(fresh))

	if len(freshIDs) > 0 {
		if err := j.seen.MarkSeen(freshIDs); err != nil {
			log.Printf("Warning: failed to persist seen videos: %v", err)
		}
	}

	if j.sender != nil && len(fresh) > 0 {
		digest := &email.Digest{
			Date:   time.Now(),
			Videos: fresh,
			Zone:   j.cfg.Location(),
		}
		if j.summarizer != nil {
			summary, err := j.summarizer.Summarize(ctx, fresh, j.cfg.Location())
			if err != nil {
				log.Printf("Warning: trend summary failed: %v", err)
			} else {
				digest.Summary = summary
			}
		}
		if err := j.sender.SendDigest(digest); err != nil {
			return fmt.Errorf("failed to send digest: %w", err)
		}
		log.Printf("Digest sent with %d videos", len(fresh))
	}

	if !partial {
		j.monitor.RecordSuccess(len(videos), len(fresh), time.Since(startTime))
	}
	return nil
}
