package components

import (
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra/abuse"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/internal/usecase"
	"ticket-allocator/internal/usecase/commands"
	"ticket-allocator/internal/usecase/queries"
	"ticket-allocator/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewDefaultPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	NewPolicy,
	NewPriorityScorer,
	NewAbuseDetector,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewAllocator,
		NewExpirySweeper,
		NewNotificationDispatcher,
		commands.NewQueueUseCase,
		commands.NewHoldUseCase,
		commands.NewCatalogUseCase,
		commands.NewPurchaseFinalizer,
		commands.NewInventoryAuditor,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewQueueQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPolicy(cfg config.Config) commands.Policy {
	return commands.PolicyFromConfig(cfg.Queue)
}

func NewPriorityScorer(cfg config.Config) queue.PriorityScorer {
	if cfg.Queue.Scoring == config.ScoringFIFO {
		return queue.FIFOScorer{}
	}
	return queue.NewWeightedScorer(cfg.Queue.EarlyJoinBonus, cfg.Queue.EarlyJoinWindow, cfg.Queue.FlaggedPenalty)
}

// NewAbuseDetector shares counters through Redis when available.
func NewAbuseDetector(cfg config.Config, rdb *redis.Client, clk clock.Clock) (commands.AbuseDetector, error) {
	hasher, err := abuse.NewIPHasher(cfg.Queue.IPHashKey)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		return abuse.NewMemoryDetector(hasher, clk, cfg.Queue.SuspiciousIPThreshold, cfg.Queue.SuspiciousIPWindow), nil
	}
	return abuse.NewRedisDetector(rdb, hasher, clk, cfg.Queue.SuspiciousIPThreshold, cfg.Queue.SuspiciousIPWindow), nil
}

func NewAllocator(uow shared.UnitOfWork, factory *reservation.Factory, clk clock.Clock, policy commands.Policy, cfg config.Config) commands.Allocator {
	return commands.NewAllocator(uow, factory, clk, policy, cfg.Scheduler.Parallelism)
}

func NewExpirySweeper(uow shared.UnitOfWork, allocator commands.Allocator, clk clock.Clock, cfg config.Config) commands.ExpirySweeper {
	return commands.NewExpirySweeper(uow, allocator, clk, cfg.Scheduler.SweepBatchSize, cfg.Scheduler.Parallelism)
}

func NewNotificationDispatcher(outbox shared.Outbox, publisher commands.NotificationPublisher, clk clock.Clock, cfg config.Config) commands.NotificationDispatcher {
	return commands.NewNotificationDispatcher(outbox, publisher, clk, cfg.Scheduler.DispatchBatchSize)
}
