package converter

import (
	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const CategoryColumns = `id, event_id, name, price_cents, total_quantity, sold_quantity, reserved_quantity,
	min_per_order, max_per_order, sale_start, sale_end, is_active, created_at, updated_at`

func ScanCategory(row pgx.Row) (*category.Category, error) {
	var (
		id, eventID              uuid.UUID
		name                     string
		priceCents               int64
		total, sold, reserved    int32
		minPerOrder, maxPerOrder int32
		saleStart, saleEnd       pgtype.Timestamptz
		isActive                 bool
		createdAt, updatedAt     pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &eventID, &name, &priceCents, &total, &sold, &reserved,
		&minPerOrder, &maxPerOrder, &saleStart, &saleEnd, &isActive, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	return category.ReconstructCategory(
		id, eventID, name, priceCents,
		category.Inventory{Total: int(total), Sold: int(sold), Reserved: int(reserved)},
		int(minPerOrder), int(maxPerOrder),
		category.SaleWindow{Start: pgconv.TimePtrFromPgtype(saleStart), End: pgconv.TimePtrFromPgtype(saleEnd)},
		isActive, createdAt.Time.UTC(), updatedAt.Time.UTC(),
	), nil
}

// CategoryArgs returns the insert arguments in CategoryColumns order.
func CategoryArgs(c *category.Category) []any {
	inv := c.Inventory()
	w := c.SaleWindow()
	return []any{
		c.ID(), c.EventID(), c.Name(), c.PriceCents(), inv.Total, inv.Sold, inv.Reserved,
		c.MinPerOrder(), c.MaxPerOrder(), pgconv.TimePtrToPgtype(w.Start), pgconv.TimePtrToPgtype(w.End),
		c.IsActive(), c.CreatedAt(), c.UpdatedAt(),
	}
}
