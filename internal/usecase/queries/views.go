package queries

import (
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
)

func newCategoryView(c *category.Category, now time.Time) *CategoryView {
	inv := c.Inventory()
	return &CategoryView{
		ID:          c.ID(),
		EventID:     c.EventID(),
		Name:        c.Name(),
		PriceCents:  c.PriceCents(),
		Total:       inv.Total,
		Sold:        inv.Sold,
		Reserved:    inv.Reserved,
		Available:   inv.Available(),
		MinPerOrder: c.MinPerOrder(),
		MaxPerOrder: c.MaxPerOrder(),
		SaleStart:   c.SaleWindow().Start,
		SaleEnd:     c.SaleWindow().End,
		IsActive:    c.IsActive(),
		OnSale:      c.IsOnSale(now),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func NewQueueEntryView(e *queue.Entry, ahead int) *QueueEntryView {
	return &QueueEntryView{
		ID:                e.ID(),
		CategoryID:        e.CategoryID(),
		UserID:            e.UserID(),
		Position:          e.Position(),
		Ahead:             ahead,
		RequestedQuantity: e.RequestedQuantity(),
		PriorityScore:     e.PriorityScore(),
		Status:            e.Status().String(),
		OfferExpiresAt:    e.OfferExpiresAt(),
		OfferedQuantity:   e.OfferedQuantity(),
		OfferedPriceCents: e.OfferedPriceCents(),
		ReservationID:     e.ReservationID(),
		CreatedAt:         e.CreatedAt(),
		UpdatedAt:         e.UpdatedAt(),
	}
}

func NewReservationView(r *reservation.Reservation) *ReservationView {
	return &ReservationView{
		ID:               r.ID(),
		CategoryID:       r.CategoryID(),
		UserID:           r.UserID(),
		Quantity:         r.Quantity(),
		Source:           r.Source().String(),
		WaitingListID:    r.WaitingListID(),
		Status:           r.Status().String(),
		PriceLockedCents: r.PriceLocked().Cents(),
		ReservedAt:       r.ReservedAt(),
		ExpiresAt:        r.ExpiresAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}
