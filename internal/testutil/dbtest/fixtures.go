//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Counters is a raw read of a category row.
type Counters struct {
	Total    int
	Sold     int
	Reserved int
}

func (c Counters) Available() int {
	return c.Total - c.Sold - c.Reserved
}

// CreateTestCategory inserts an on-sale category with an open sale window.
func CreateTestCategory(t *testing.T, db DBLike, name string, total, maxPerOrder int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO ticket_categories (id, event_id, name, price_cents, total_quantity, min_per_order, max_per_order)
		VALUES ($1, $2, $3, 5000, $4, 1, $5)`,
		id, uuid.New(), name, total, maxPerOrder)
	require.NoError(t, err)
	return id
}

func GetCounters(t *testing.T, db DBLike, categoryID uuid.UUID) Counters {
	t.Helper()

	var c Counters
	err := db.QueryRow(context.Background(),
		"SELECT total_quantity, sold_quantity, reserved_quantity FROM ticket_categories WHERE id = $1",
		categoryID).Scan(&c.Total, &c.Sold, &c.Reserved)
	require.NoError(t, err)
	return c
}

// ActiveHoldsSum reads the quantity held by active reservations of the category.
func ActiveHoldsSum(t *testing.T, db DBLike, categoryID uuid.UUID) int {
	t.Helper()

	var sum int
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE(SUM(quantity), 0) FROM reservations WHERE category_id = $1 AND status = 'active'",
		categoryID).Scan(&sum)
	require.NoError(t, err)
	return sum
}

func CountJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// ForceExpire moves the deadline of a reservation into the past.
func ForceExpire(t *testing.T, db DBLike, reservationID uuid.UUID) {
	t.Helper()

	past := time.Now().Add(-time.Minute)
	_, err := db.Exec(context.Background(), `
		UPDATE reservations SET reserved_at = $2 - interval '1 minute', expires_at = $2 WHERE id = $1`,
		reservationID, past)
	require.NoError(t, err)
	_, err = db.Exec(context.Background(),
		"UPDATE queue_entries SET offer_expires_at = $2 WHERE reservation_id = $1", reservationID, past)
	require.NoError(t, err)
}

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE notification_jobs, reservations, queue_entries, ticket_categories CASCADE")
	return err
}
