package bootstrap

import (
	"ticket-allocator/cmd/bootstrap/components"
	"ticket-allocator/internal/usecase/commands"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	BrokerModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	SchedulerModule,
)

type schedulerDeps struct {
	fx.In

	Sweeper    commands.ExpirySweeper
	Allocator  commands.Allocator
	Dispatcher commands.NotificationDispatcher
	Auditor    commands.InventoryAuditor
}
