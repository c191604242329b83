package shared

import (
	"context"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// WithinCategory runs fn in one write transaction that is serialized
	// against every other writer of the same category. Retryable storage
	// conflicts re-run fn from the start.
	WithinCategory(ctx context.Context, categoryID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// Reads: non-locking reads for queries and for discovering work
	Reads() Reads
}

type Tx interface {
	// Category returns the category row locked for this transaction.
	Category() *category.Category
	Ledger() InventoryLedger
	Queue() QueueStore
	Reservations() ReservationStore
	Notifications() NotificationRepository
}

// InventoryLedger mutates the counters of the locked category.
type InventoryLedger interface {
	TryReserve(ctx context.Context, categoryID uuid.UUID, qty int) error
	Release(ctx context.Context, categoryID uuid.UUID, qty int) error
	ConvertToSale(ctx context.Context, categoryID uuid.UUID, qty int) error
	Deactivate(ctx context.Context, categoryID uuid.UUID) error
}

type QueueStore interface {
	// Enqueue assigns position = max(position) + 1 within the category and stores the entry.
	Enqueue(ctx context.Context, entry *queue.Entry) error
	Update(ctx context.Context, entry *queue.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*queue.Entry, error)
	// FindActive returns nil when the user has no waiting/offered/purchasing entry.
	FindActive(ctx context.Context, userID, categoryID uuid.UUID) (*queue.Entry, error)
	CountWaiting(ctx context.Context, categoryID uuid.UUID) (int, error)
	NextEligible(ctx context.Context, categoryID uuid.UUID, capacity, maxPerOrder int) ([]*queue.Entry, error)
}

type ReservationStore interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// Save persists a reservation that was active when loaded. It fails with
	// reservation.ErrNotActive when the stored row already left active.
	Save(ctx context.Context, res *reservation.Reservation) error
	// ExpireSweep lists active reservations of the locked category whose expiry is <= now.
	ExpireSweep(ctx context.Context, categoryID uuid.UUID, now time.Time) ([]*reservation.Reservation, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// CategoryCatalog registers categories. Counters of an existing category are
// only changed through the ledger.
type CategoryCatalog interface {
	Create(ctx context.Context, cat *category.Category) error
}

type Reads interface {
	CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	ListCategories(ctx context.Context) ([]*category.Category, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	EntryByID(ctx context.Context, id uuid.UUID) (*queue.Entry, error)
	// LatestEntry prefers the active entry and falls back to the most recent one.
	LatestEntry(ctx context.Context, categoryID, userID uuid.UUID) (*queue.Entry, error)
	CountAhead(ctx context.Context, entry *queue.Entry) (int, error)
	// ExpiredReservationCategories lists categories with at least one active reservation past expiry.
	ExpiredReservationCategories(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	CategoriesWithWaiting(ctx context.Context) ([]uuid.UUID, error)
	ActiveReservedTotals(ctx context.Context) (map[uuid.UUID]int, error)
}

// Outbox is the dispatcher side of the notification jobs table.
type Outbox interface {
	ClaimPending(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, retryAt time.Time, lastErr string) error
}
