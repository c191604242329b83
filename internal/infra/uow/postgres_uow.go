package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/readstore"
	"ticket-allocator/internal/infra/repository"
	"ticket-allocator/internal/infra/repository/converter"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/pkg/pgconv"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	clock clock.Clock
	reads *readstore.ReadStore
}

func NewPostgresUoW(pool *pgxpool.Pool, clk clock.Clock) *PostgresUoW {
	return &PostgresUoW{
		pool:  pool,
		clock: clk,
		reads: readstore.NewReadStore(pool),
	}
}

// WithinCategory locks the category row with SELECT ... FOR UPDATE, which
// serializes every writer of that category while leaving others untouched.
// ReadCommitted is enough because all reads that matter happen after the lock.
func (u *PostgresUoW) WithinCategory(ctx context.Context, categoryID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, pgxTx pgx.Tx) error {
		q := `SELECT ` + converter.CategoryColumns + ` FROM ticket_categories WHERE id = $1 FOR UPDATE`
		cat, err := converter.ScanCategory(pgxTx.QueryRow(ctx, q, categoryID))
		if err != nil {
			if pgconv.IsNoRows(err) {
				return errs.Mark(infra.WrapRepoErr("category not found", err, infra.KindNotFound), errs.ErrCategoryNotFound)
			}
			return infra.WrapRepoErr("failed to lock category", err)
		}
		return fn(ctx, &pgTx{dbtx: pgxTx, cat: cat, clock: u.clock})
	})
}

func (u *PostgresUoW) Reads() shared.Reads {
	return u.reads
}

func (u *PostgresUoW) Catalog() shared.CategoryCatalog {
	return repository.NewCategoryRepository(u.pool)
}

func (u *PostgresUoW) Outbox() shared.Outbox {
	return repository.NewOutboxRepository(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	const maxRetries = 3
	base := 50 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, pgxTx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx  pgx.Tx
	cat   *category.Category
	clock clock.Clock

	// Lazy-initialized repositories
	ledger           shared.InventoryLedger
	queueRepo        shared.QueueStore
	reservationRepo  shared.ReservationStore
	notificationRepo shared.NotificationRepository
}

func (t *pgTx) Category() *category.Category {
	return t.cat
}

func (t *pgTx) Ledger() shared.InventoryLedger {
	if t.ledger == nil {
		t.ledger = repository.NewLedgerRepository(t.dbtx, t.cat, t.clock)
	}
	return t.ledger
}

func (t *pgTx) Queue() shared.QueueStore {
	if t.queueRepo == nil {
		t.queueRepo = repository.NewQueueEntryRepository(t.dbtx)
	}
	return t.queueRepo
}

func (t *pgTx) Reservations() shared.ReservationStore {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}
