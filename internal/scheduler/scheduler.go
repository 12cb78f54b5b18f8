package scheduler

import (
	"context"
	"fmt"
	"log"

	"shortscope/internal/monitoring"

	"github.com/robfig/cron/v3"
)

// Job is the unit of scheduled work: one scan-and-deliver cycle.
type Job interface {
	Name() string
	Initialize() error
	Run(ctx context.Context) error
}

// Scheduler runs a job on a cron schedule with a health endpoint.
// Overlapping runs are skipped rather than queued.
type Scheduler struct {
	schedule   string
	healthPort int
	monitor    *monitoring.Monitor
	job        Job
	cron       *cron.Cron
}

func New(schedule string, healthPort int, monitor *monitoring.Monitor, job Job) *Scheduler {
	return &Scheduler{
		schedule:   schedule,
		healthPort: healthPort,
		monitor:    monitor,
		job:        job,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start initializes the job, starts the health server, and blocks until
// the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.job.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", s.job.Name(), err)
	}

	healthServer := monitoring.NewHealthServer(s.monitor, s.healthPort)
	healthServer.Start()

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.job.Run(ctx); err != nil {
			log.Printf("Error running scheduled %s: %v", s.job.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.job.Name(), s.schedule)
	s.cron.Start()

	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.job.Name())
	s.cron.Stop()
	return ctx.Err()
}

// RunOnce initializes the job and runs a single cycle immediately.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if err := s.job.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", s.job.Name(), err)
	}
	return s.job.Run(ctx)
}
