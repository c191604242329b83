package commands

import (
	"context"
	"log/slog"

	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

type AuditViolation struct {
	CategoryID     uuid.UUID
	Total          int
	Sold           int
	Reserved       int
	ActiveHoldsSum int
	Reason         string
}

// InventoryAuditor reports counter inconsistencies. It never corrects them.
type InventoryAuditor interface {
	Audit(ctx context.Context) ([]AuditViolation, error)
}

type inventoryAuditorImpl struct {
	reads shared.Reads
}

func NewInventoryAuditor(reads shared.Reads) InventoryAuditor {
	return &inventoryAuditorImpl{reads: reads}
}

func (a *inventoryAuditorImpl) Audit(ctx context.Context) ([]AuditViolation, error) {
	cats, err := a.reads.ListCategories(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list categories for audit")
	}
	held, err := a.reads.ActiveReservedTotals(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sum active holds for audit")
	}

	var violations []AuditViolation
	for _, cat := range cats {
		inv := cat.Inventory()
		v := AuditViolation{
			CategoryID:     cat.ID(),
			Total:          inv.Total,
			Sold:           inv.Sold,
			Reserved:       inv.Reserved,
			ActiveHoldsSum: held[cat.ID()],
		}
		switch {
		case inv.Validate() != nil:
			v.Reason = "sold + reserved exceeds total"
		case inv.Reserved != v.ActiveHoldsSum:
			v.Reason = "reserved differs from the sum of active holds"
		default:
			continue
		}

		slog.Error("inventory audit violation",
			"severity", "critical",
			"category_id", v.CategoryID,
			"reason", v.Reason,
			"total", v.Total,
			"sold", v.Sold,
			"reserved", v.Reserved,
			"active_holds", v.ActiveHoldsSum)
		violations = append(violations, v)
	}
	return violations, nil
}
