package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/internal/usecase/commands"
)

// Job is one periodic background task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs}
}

// NewQueueScheduler wires the sweeper, allocator, dispatcher and auditor ticks.
func NewQueueScheduler(
	cfg config.SchedulerConfig,
	sweeper commands.ExpirySweeper,
	allocator commands.Allocator,
	dispatcher commands.NotificationDispatcher,
	auditor commands.InventoryAuditor,
) *Scheduler {
	return New(
		Job{Name: "expiry_sweep", Interval: cfg.SweepInterval, Run: func(ctx context.Context) error {
			_, err := sweeper.Sweep(ctx)
			return err
		}},
		Job{Name: "allocate", Interval: cfg.AllocateInterval, Run: func(ctx context.Context) error {
			_, err := allocator.AllocateAll(ctx)
			return err
		}},
		Job{Name: "dispatch_notifications", Interval: cfg.DispatchInterval, Run: func(ctx context.Context) error {
			_, err := dispatcher.Dispatch(ctx)
			return err
		}},
		Job{Name: "inventory_audit", Interval: cfg.AuditInterval, Run: func(ctx context.Context) error {
			_, err := auditor.Audit(ctx)
			return err
		}},
	)
}

// Start launches one goroutine per job. Jobs with a non-positive interval are skipped.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			slog.Warn("scheduler job disabled", "job", job.Name)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, job)
		}()
	}
}

// Stop cancels every job and waits for in-flight ticks to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	slog.Info("scheduler job started", "job", job.Name, "interval", job.Interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler job stopped", "job", job.Name)
			return
		case <-ticker.C:
			tick(ctx, job)
		}
	}
}

func tick(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("scheduler job failed", "job", job.Name, "error", err.Error())
		return
	}
	slog.Debug("scheduler job finished", "job", job.Name, "took", time.Since(start))
}
