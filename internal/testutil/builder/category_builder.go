//go:build unit || e2e

package builder

import (
	"time"

	"ticket-allocator/internal/domain/category"

	"github.com/google/uuid"
)

type CategoryBuilder struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	Name        string
	PriceCents  int64
	Total       int
	Sold        int
	Reserved    int
	MinPerOrder int
	MaxPerOrder int
	SaleStart   *time.Time
	SaleEnd     *time.Time
	IsActive    bool
	CreatedAt   time.Time
}

func NewCategoryBuilder() *CategoryBuilder {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &CategoryBuilder{
		ID:          uuid.New(),
		EventID:     uuid.New(),
		Name:        "General Admission",
		PriceCents:  5000,
		Total:       10,
		MinPerOrder: 1,
		MaxPerOrder: 4,
		IsActive:    true,
		CreatedAt:   now,
	}
}

func (b *CategoryBuilder) With(mutate func(*CategoryBuilder)) *CategoryBuilder {
	mutate(b)
	return b
}

// BuildNew goes through the validating constructor and ignores ID and counters.
func (b *CategoryBuilder) BuildNew() (*category.Category, error) {
	return category.NewCategory(
		b.EventID, b.Name, b.PriceCents, b.Total, b.MinPerOrder, b.MaxPerOrder,
		category.SaleWindow{Start: b.SaleStart, End: b.SaleEnd}, b.CreatedAt,
	)
}

func (b *CategoryBuilder) Build() *category.Category {
	return category.ReconstructCategory(
		b.ID, b.EventID, b.Name, b.PriceCents,
		category.Inventory{Total: b.Total, Sold: b.Sold, Reserved: b.Reserved},
		b.MinPerOrder, b.MaxPerOrder,
		category.SaleWindow{Start: b.SaleStart, End: b.SaleEnd},
		b.IsActive, b.CreatedAt, b.CreatedAt,
	)
}

func (b *CategoryBuilder) WithID(id uuid.UUID) *CategoryBuilder {
	b.ID = id
	return b
}

func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.Name = name
	return b
}

func (b *CategoryBuilder) WithPriceCents(cents int64) *CategoryBuilder {
	b.PriceCents = cents
	return b
}

func (b *CategoryBuilder) WithInventory(total, sold, reserved int) *CategoryBuilder {
	b.Total = total
	b.Sold = sold
	b.Reserved = reserved
	return b
}

func (b *CategoryBuilder) WithOrderLimits(minPerOrder, maxPerOrder int) *CategoryBuilder {
	b.MinPerOrder = minPerOrder
	b.MaxPerOrder = maxPerOrder
	return b
}

func (b *CategoryBuilder) WithSaleWindow(start, end *time.Time) *CategoryBuilder {
	b.SaleStart = start
	b.SaleEnd = end
	return b
}

func (b *CategoryBuilder) Inactive() *CategoryBuilder {
	b.IsActive = false
	return b
}

func (b *CategoryBuilder) SoldOut() *CategoryBuilder {
	b.Sold = b.Total
	b.Reserved = 0
	return b
}
