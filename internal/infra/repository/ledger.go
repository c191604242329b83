package repository

import (
	"context"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/db"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"

	"github.com/google/uuid"
)

var errLedgerCategoryMismatch = errs.New("ledger is bound to a different category")

// LedgerRepository applies counter transitions to the category row locked by
// the surrounding transaction and persists them before returning.
type LedgerRepository struct {
	db    db.DBTX
	cat   *category.Category
	clock clock.Clock
}

func NewLedgerRepository(dbtx db.DBTX, locked *category.Category, clk clock.Clock) *LedgerRepository {
	return &LedgerRepository{
		db:    dbtx,
		cat:   locked,
		clock: clk,
	}
}

func (r *LedgerRepository) TryReserve(ctx context.Context, categoryID uuid.UUID, qty int) error {
	if err := r.bound(categoryID); err != nil {
		return err
	}
	next := r.cat.Clone()
	if err := next.Reserve(qty, r.clock.Now()); err != nil {
		return err
	}
	return r.persist(ctx, next)
}

func (r *LedgerRepository) Release(ctx context.Context, categoryID uuid.UUID, qty int) error {
	if err := r.bound(categoryID); err != nil {
		return err
	}
	next := r.cat.Clone()
	next.Release(qty, r.clock.Now())
	return r.persist(ctx, next)
}

func (r *LedgerRepository) ConvertToSale(ctx context.Context, categoryID uuid.UUID, qty int) error {
	if err := r.bound(categoryID); err != nil {
		return err
	}
	next := r.cat.Clone()
	if err := next.ConvertToSale(qty, r.clock.Now()); err != nil {
		return err
	}
	return r.persist(ctx, next)
}

func (r *LedgerRepository) Deactivate(ctx context.Context, categoryID uuid.UUID) error {
	if err := r.bound(categoryID); err != nil {
		return err
	}
	next := r.cat.Clone()
	next.Deactivate(r.clock.Now())
	return r.persist(ctx, next)
}

func (r *LedgerRepository) bound(categoryID uuid.UUID) error {
	if r.cat.ID() != categoryID {
		return errs.Wrapf(errLedgerCategoryMismatch, "locked %s, requested %s", r.cat.ID(), categoryID)
	}
	return nil
}

// persist writes the counters; the table's CHECK constraint backs the
// invariant should the in-memory view ever diverge from the row.
func (r *LedgerRepository) persist(ctx context.Context, next *category.Category) error {
	inv := next.Inventory()
	const q = `
		UPDATE ticket_categories
		SET sold_quantity = $2, reserved_quantity = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, next.ID(), inv.Sold, inv.Reserved, next.IsActive(), next.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update category counters", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("category not found", nil, infra.KindNotFound)
	}
	*r.cat = *next
	return nil
}
