//go:build unit

package repository_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/repository"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// =============================================================================
// Reservation Save Tests
// =============================================================================

func TestReservationRepository_Save(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		tag           string
		execErr       error
		expectedError error
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: active row updated",
			tag:  "UPDATE 1",
		},
		{
			name:          "error: row already left active",
			tag:           "UPDATE 0",
			expectedError: reservation.ErrNotActive,
		},
		{
			name:       "error: database error occurs",
			execErr:    errors.New("database connection error"),
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "error: serialization failure",
			execErr:    &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			expectKind: infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &stubDBTX{execTag: pgconn.NewCommandTag(tc.tag), execErr: tc.execErr}
			repo := repository.NewReservationRepository(db)
			res := builder.NewReservationBuilder().Build()

			err := repo.Save(ctx, res)

			require.Equal(t, 1, db.execCalls)
			assert.Contains(t, db.lastSQL, "status = 'active'")
			assert.Equal(t, res.ID(), db.lastArgs[0])
			switch {
			case tc.expectedError != nil:
				assert.ErrorIs(t, err, tc.expectedError)
			case tc.expectKind != "":
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// Queue NextEligible Tests
// =============================================================================

func TestQueueEntryRepository_NextEligible(t *testing.T) {
	ctx := context.Background()
	catID := uuid.New()

	t.Run("success: an entry too large for the remainder does not hide smaller ones", func(t *testing.T) {
		head, small := uuid.New(), uuid.New()
		db := &stubDBTX{rows: &stubRows{data: [][]any{
			entryRow(head, catID, 1, 2),
			entryRow(small, catID, 2, 1),
		}}}
		repo := repository.NewQueueEntryRepository(db)

		got, err := repo.NextEligible(ctx, catID, 1, 2)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, small, got[0].ID())
		assert.Equal(t, []any{catID, 1, 2}, db.lastArgs)
		assert.NotContains(t, strings.ToUpper(db.lastSQL), "LIMIT")
		assert.True(t, db.rows.closed)
	})

	t.Run("success: without a per-order cap the filter uses capacity", func(t *testing.T) {
		db := &stubDBTX{rows: &stubRows{}}
		repo := repository.NewQueueEntryRepository(db)

		got, err := repo.NextEligible(ctx, catID, 3, 0)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, []any{catID, 3, 3}, db.lastArgs)
	})

	t.Run("success: no capacity skips the query", func(t *testing.T) {
		db := &stubDBTX{}
		repo := repository.NewQueueEntryRepository(db)

		got, err := repo.NextEligible(ctx, catID, 0, 2)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 0, db.queryCalls)
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		db := &stubDBTX{queryErr: errors.New("database connection error")}
		repo := repository.NewQueueEntryRepository(db)

		_, err := repo.NextEligible(ctx, catID, 2, 2)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// =============================================================================
// Queue Update Tests
// =============================================================================

func TestQueueEntryRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		tag        string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: entry updated", tag: "UPDATE 1"},
		{name: "error: entry not found", tag: "UPDATE 0", expectKind: infra.KindNotFound},
		{name: "error: database error occurs", execErr: errors.New("database connection error"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &stubDBTX{execTag: pgconn.NewCommandTag(tc.tag), execErr: tc.execErr}
			repo := repository.NewQueueEntryRepository(db)
			entry := builder.NewEntryBuilder().Build()

			err := repo.Update(ctx, entry)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, queue.StatusWaiting.String(), db.lastArgs[1])
		})
	}
}

// =============================================================================
// Ledger Tests
// =============================================================================

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(now)

	t.Run("success: reserve persists the new counters", func(t *testing.T) {
		cat := builder.NewCategoryBuilder().WithInventory(10, 2, 3).Build()
		db := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewLedgerRepository(db, cat, clk)

		require.NoError(t, repo.TryReserve(ctx, cat.ID(), 4))

		assert.Equal(t, []any{cat.ID(), 2, 7, true, now}, db.lastArgs)
		assert.Equal(t, 7, cat.Inventory().Reserved)
	})

	t.Run("error: insufficient stock never reaches the database", func(t *testing.T) {
		cat := builder.NewCategoryBuilder().WithInventory(10, 8, 1).Build()
		db := &stubDBTX{}
		repo := repository.NewLedgerRepository(db, cat, clk)

		err := repo.TryReserve(ctx, cat.ID(), 2)

		require.Error(t, err)
		assert.Equal(t, 0, db.execCalls)
		assert.Equal(t, 1, cat.Inventory().Reserved)
	})

	t.Run("error: failed write leaves the locked view unchanged", func(t *testing.T) {
		cat := builder.NewCategoryBuilder().WithInventory(10, 0, 4).Build()
		db := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewLedgerRepository(db, cat, clk)

		err := repo.Release(ctx, cat.ID(), 2)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, 4, cat.Inventory().Reserved)
	})

	t.Run("error: another category is refused", func(t *testing.T) {
		cat := builder.NewCategoryBuilder().Build()
		db := &stubDBTX{}
		repo := repository.NewLedgerRepository(db, cat, clk)

		require.Error(t, repo.ConvertToSale(ctx, uuid.New(), 1))
		assert.Equal(t, 0, db.execCalls)
	})
}

func entryRow(id, categoryID uuid.UUID, position int64, requested int32) []any {
	ts := pgtype.Timestamptz{Time: now, Valid: true}
	return []any{
		id, categoryID, uuid.New(), position, requested, int32(0), "waiting",
		pgtype.Timestamptz{}, int32(0), int64(0), pgtype.UUID{},
		pgtype.Text{}, pgtype.Text{}, pgtype.Text{},
		false, ts, ts,
	}
}

// stubDBTX records the last statement and answers with canned results.
type stubDBTX struct {
	execTag  pgconn.CommandTag
	execErr  error
	rows     *stubRows
	queryErr error

	execCalls  int
	queryCalls int
	lastSQL    string
	lastArgs   []any
}

func (m *stubDBTX) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execCalls++
	m.lastSQL, m.lastArgs = sql, args
	return m.execTag, m.execErr
}

func (m *stubDBTX) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.queryCalls++
	m.lastSQL, m.lastArgs = sql, args
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.rows, nil
}

func (m *stubDBTX) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("stubDBTX.QueryRow was called unexpectedly")
}

type stubRows struct {
	data   [][]any
	idx    int
	closed bool
}

func (r *stubRows) Close()                                       { r.closed = true }
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Values() ([]any, error) {
	return r.data[r.idx-1], nil
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, v := range row {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}
