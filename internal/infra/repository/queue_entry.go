package repository

import (
	"context"

	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/db"
	"ticket-allocator/internal/infra/repository/converter"
	"ticket-allocator/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type QueueEntryRepository struct {
	db db.DBTX
}

func NewQueueEntryRepository(dbtx db.DBTX) *QueueEntryRepository {
	return &QueueEntryRepository{db: dbtx}
}

// Enqueue must run under the category lock so max(position)+1 is race free.
func (r *QueueEntryRepository) Enqueue(ctx context.Context, entry *queue.Entry) error {
	var next int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM queue_entries WHERE category_id = $1`,
		entry.CategoryID(),
	).Scan(&next)
	if err != nil {
		return infra.WrapRepoErr("failed to compute queue position", err)
	}
	entry.AssignPosition(next)

	q := `INSERT INTO queue_entries (` + converter.EntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	if _, err := r.db.Exec(ctx, q, converter.EntryArgs(entry)...); err != nil {
		return infra.WrapRepoErr("failed to enqueue entry", err)
	}
	return nil
}

func (r *QueueEntryRepository) Update(ctx context.Context, entry *queue.Entry) error {
	const q = `
		UPDATE queue_entries
		SET status = $2, priority_score = $3, offer_expires_at = $4, offered_quantity = $5,
			offered_price_cents = $6, reservation_id = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, q,
		entry.ID(), entry.Status().String(), entry.PriorityScore(),
		pgconv.TimePtrToPgtype(entry.OfferExpiresAt()), entry.OfferedQuantity(),
		entry.OfferedPriceCents(), pgconv.UUIDPtrToPgtype(entry.ReservationID()), entry.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update queue entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("queue entry not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *QueueEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*queue.Entry, error) {
	q := `SELECT ` + converter.EntryColumns + ` FROM queue_entries WHERE id = $1`
	e, err := converter.ScanEntry(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("queue entry not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get queue entry", err)
	}
	return e, nil
}

func (r *QueueEntryRepository) FindActive(ctx context.Context, userID, categoryID uuid.UUID) (*queue.Entry, error) {
	q := `SELECT ` + converter.EntryColumns + ` FROM queue_entries
		WHERE user_id = $1 AND category_id = $2 AND status IN ('waiting', 'offered', 'purchasing')`
	e, err := converter.ScanEntry(r.db.QueryRow(ctx, q, userID, categoryID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active queue entry", err)
	}
	return e, nil
}

func (r *QueueEntryRepository) CountWaiting(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM queue_entries WHERE category_id = $1 AND status = 'waiting'`,
		categoryID,
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count waiting entries", err)
	}
	return n, nil
}

// NextEligible loads the waiting entries whose capped request fits in
// capacity on its own, in allocation order. An entry too large for the
// remainder is skipped, so the head of the queue cannot bound the scan.
func (r *QueueEntryRepository) NextEligible(ctx context.Context, categoryID uuid.UUID, capacity, maxPerOrder int) ([]*queue.Entry, error) {
	if capacity <= 0 {
		return nil, nil
	}
	perOrder := maxPerOrder
	if perOrder <= 0 {
		perOrder = capacity
	}
	q := `SELECT ` + converter.EntryColumns + ` FROM queue_entries
		WHERE category_id = $1 AND status = 'waiting'
			AND LEAST(requested_quantity, $3) <= $2
		ORDER BY priority_score DESC, position ASC`
	rows, err := r.db.Query(ctx, q, categoryID, capacity, perOrder)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load waiting entries", err)
	}
	entries, err := converter.CollectEntries(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan waiting entries", err)
	}
	return queue.SelectEligible(entries, capacity, maxPerOrder), nil
}
