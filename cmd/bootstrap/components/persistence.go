package components

import (
	"log/slog"

	"ticket-allocator/internal/infra/memstore"
	"ticket-allocator/internal/infra/uow"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStore,
	),
)

type StoreResult struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	Reads      shared.Reads
	Catalog    shared.CategoryCatalog
	Outbox     shared.Outbox
}

// NewStore selects the Postgres or in-process implementation of every storage port.
func NewStore(cfg config.Config, pool *pgxpool.Pool, clk clock.Clock) StoreResult {
	if cfg.Store.Driver == config.StoreDriverMemory {
		slog.Warn("Using in-process store, state is lost on restart")
		s := memstore.New(clk)
		return StoreResult{UnitOfWork: s, Reads: s.Reads(), Catalog: s.Catalog(), Outbox: s.Outbox()}
	}

	u := uow.NewPostgresUoW(pool, clk)
	return StoreResult{UnitOfWork: u, Reads: u.Reads(), Catalog: u.Catalog(), Outbox: u.Outbox()}
}
