package bootstrap

import (
	"context"
	"log/slog"

	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/internal/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(startScheduler),
)

func NewScheduler(cfg config.Config, deps schedulerDeps) *scheduler.Scheduler {
	return scheduler.NewQueueScheduler(cfg.Scheduler, deps.Sweeper, deps.Allocator, deps.Dispatcher, deps.Auditor)
}

func startScheduler(lc fx.Lifecycle, cfg config.Config, s *scheduler.Scheduler) {
	if !cfg.Scheduler.Enabled {
		slog.Info("Background scheduler disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
