package category

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCategoryName  = errors.New("category name cannot be empty")
	ErrInvalidOrderLimits = errors.New("order limits must satisfy 1 <= min <= max")
	ErrInvalidTotal       = errors.New("total quantity cannot be negative")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidSaleWindow  = errors.New("sale window start must be before its end")
	ErrQuantityOutOfRange = errors.New("quantity outside the per-order limits")
)

type SaleWindow struct {
	Start *time.Time
	End   *time.Time
}

func (w SaleWindow) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && !t.Before(*w.End) {
		return false
	}
	return true
}

// Category is a sellable tier of tickets for an event. Counters are only
// changed through the inventory ledger.
type Category struct {
	id          uuid.UUID
	eventID     uuid.UUID
	name        string
	priceCents  int64
	inventory   Inventory
	minPerOrder int
	maxPerOrder int
	saleWindow  SaleWindow
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCategory(
	eventID uuid.UUID,
	name string,
	priceCents int64,
	total, minPerOrder, maxPerOrder int,
	window SaleWindow,
	now time.Time,
) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if total < 0 {
		return nil, ErrInvalidTotal
	}
	if minPerOrder < 1 || maxPerOrder < minPerOrder {
		return nil, ErrInvalidOrderLimits
	}
	if window.Start != nil && window.End != nil && !window.Start.Before(*window.End) {
		return nil, ErrInvalidSaleWindow
	}

	return &Category{
		id:          uuid.New(),
		eventID:     eventID,
		name:        name,
		priceCents:  priceCents,
		inventory:   Inventory{Total: total},
		minPerOrder: minPerOrder,
		maxPerOrder: maxPerOrder,
		saleWindow:  window,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructCategory(
	id, eventID uuid.UUID,
	name string,
	priceCents int64,
	inventory Inventory,
	minPerOrder, maxPerOrder int,
	window SaleWindow,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Category {
	return &Category{
		id:          id,
		eventID:     eventID,
		name:        name,
		priceCents:  priceCents,
		inventory:   inventory,
		minPerOrder: minPerOrder,
		maxPerOrder: maxPerOrder,
		saleWindow:  window,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Category) IsOnSale(now time.Time) bool {
	return c.isActive && c.saleWindow.Contains(now)
}

func (c *Category) ValidateOrderQuantity(qty int) error {
	if qty < c.minPerOrder || qty > c.maxPerOrder {
		return ErrQuantityOutOfRange
	}
	return nil
}

// OfferQuantity caps a requested quantity by what is left and by the per-order maximum.
func (c *Category) OfferQuantity(requested, remaining int) int {
	return min(requested, remaining, c.maxPerOrder)
}

func (c *Category) Deactivate(now time.Time) {
	c.isActive = false
	c.updatedAt = now
}

func (c *Category) ID() uuid.UUID          { return c.id }
func (c *Category) EventID() uuid.UUID     { return c.eventID }
func (c *Category) Name() string           { return c.name }
func (c *Category) PriceCents() int64      { return c.priceCents }
func (c *Category) Inventory() Inventory   { return c.inventory }
func (c *Category) Available() int         { return c.inventory.Available() }
func (c *Category) MinPerOrder() int       { return c.minPerOrder }
func (c *Category) MaxPerOrder() int       { return c.maxPerOrder }
func (c *Category) SaleWindow() SaleWindow { return c.saleWindow }
func (c *Category) IsActive() bool         { return c.isActive }
func (c *Category) CreatedAt() time.Time   { return c.createdAt }
func (c *Category) UpdatedAt() time.Time   { return c.updatedAt }

// Reserve, Release and ConvertToSale apply ledger transitions to the locked
// category. The caller persists the resulting counters in the same transaction.
func (c *Category) Reserve(qty int, now time.Time) error {
	next, err := c.inventory.Reserve(qty)
	if err != nil {
		return err
	}
	c.inventory = next
	c.updatedAt = now
	return nil
}

func (c *Category) Release(qty int, now time.Time) {
	c.inventory = c.inventory.Release(qty)
	c.updatedAt = now
}

func (c *Category) ConvertToSale(qty int, now time.Time) error {
	next, err := c.inventory.ConvertToSale(qty)
	if err != nil {
		return err
	}
	c.inventory = next
	c.updatedAt = now
	return nil
}

func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}
