package readstore

import (
	"context"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/db"
	"ticket-allocator/internal/infra/repository/converter"
	"ticket-allocator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReadStore serves non-locking reads. Callers that act on the result must
// re-read inside a category transaction.
type ReadStore struct {
	db db.DBTX
}

func NewReadStore(dbtx db.DBTX) *ReadStore {
	return &ReadStore{db: dbtx}
}

func (s *ReadStore) CategoryByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	q := `SELECT ` + converter.CategoryColumns + ` FROM ticket_categories WHERE id = $1`
	c, err := converter.ScanCategory(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find category", err)
	}
	return c, nil
}

func (s *ReadStore) ListCategories(ctx context.Context) ([]*category.Category, error) {
	q := `SELECT ` + converter.CategoryColumns + ` FROM ticket_categories ORDER BY created_at, id`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		c, err := converter.ScanCategory(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	return out, nil
}

func (s *ReadStore) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	q := `SELECT ` + converter.ReservationColumns + ` FROM reservations WHERE id = $1`
	r, err := converter.ScanReservation(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return r, nil
}

func (s *ReadStore) EntryByID(ctx context.Context, id uuid.UUID) (*queue.Entry, error) {
	q := `SELECT ` + converter.EntryColumns + ` FROM queue_entries WHERE id = $1`
	e, err := converter.ScanEntry(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("queue entry not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find queue entry", err)
	}
	return e, nil
}

func (s *ReadStore) LatestEntry(ctx context.Context, categoryID, userID uuid.UUID) (*queue.Entry, error) {
	q := `SELECT ` + converter.EntryColumns + ` FROM queue_entries
		WHERE category_id = $1 AND user_id = $2
		ORDER BY (status IN ('waiting', 'offered', 'purchasing')) DESC, position DESC
		LIMIT 1`
	e, err := converter.ScanEntry(s.db.QueryRow(ctx, q, categoryID, userID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("queue entry not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find queue entry", err)
	}
	return e, nil
}

// CountAhead mirrors queue.Less: higher score first, then lower position.
func (s *ReadStore) CountAhead(ctx context.Context, entry *queue.Entry) (int, error) {
	if entry.Status() != queue.StatusWaiting {
		return 0, nil
	}
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM queue_entries
		WHERE category_id = $1 AND status = 'waiting' AND id <> $2
			AND (priority_score > $3 OR (priority_score = $3 AND position < $4))`,
		entry.CategoryID(), entry.ID(), entry.PriorityScore(), entry.Position(),
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count entries ahead", err)
	}
	return n, nil
}

func (s *ReadStore) ExpiredReservationCategories(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category_id FROM reservations
		WHERE status = 'active' AND expires_at <= $1
		GROUP BY category_id
		ORDER BY MIN(expires_at)
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories with expired reservations", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan category ids", err)
	}
	return ids, nil
}

func (s *ReadStore) CategoriesWithWaiting(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT q.category_id
		FROM queue_entries q
		JOIN ticket_categories c ON c.id = q.category_id
		WHERE q.status = 'waiting' AND c.is_active`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories with waiting entries", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan category ids", err)
	}
	return ids, nil
}

func (s *ReadStore) ActiveReservedTotals(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category_id, COALESCE(SUM(quantity), 0)::int
		FROM reservations WHERE status = 'active'
		GROUP BY category_id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum active reservations", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id  uuid.UUID
			sum int
		)
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation totals", err)
		}
		out[id] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to sum active reservations", err)
	}
	return out, nil
}
