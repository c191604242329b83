package reservation

import (
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory creates holds with timestamps from the clock and prices from the calculator.
type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

func (f *Factory) lockPrice(cat *category.Category, qty int) (Money, error) {
	cents := f.PriceCalculator.CalculatePriceCents(PriceContext{
		CategoryID:     cat.ID(),
		UnitPriceCents: cat.PriceCents(),
		Quantity:       qty,
	})
	return NewMoney(cents)
}

func (f *Factory) CreateQueueOffer(cat *category.Category, entry *queue.Entry, qty int, ttl time.Duration) (*Reservation, error) {
	price, err := f.lockPrice(cat, qty)
	if err != nil {
		return nil, err
	}
	now := f.Clock.Now()
	userID := entry.UserID()
	entryID := entry.ID()
	return NewReservation(cat.ID(), &userID, SessionID{}, qty, SourceQueueOffer, &entryID, price, now, now.Add(ttl))
}

func (f *Factory) CreateHold(cat *category.Category, userID *uuid.UUID, session SessionID, qty int, source Source, ttl time.Duration) (*Reservation, error) {
	price, err := f.lockPrice(cat, qty)
	if err != nil {
		return nil, err
	}
	now := f.Clock.Now()
	return NewReservation(cat.ID(), userID, session, qty, source, nil, price, now, now.Add(ttl))
}
