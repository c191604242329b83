//go:build unit || e2e

package builder

import (
	"time"

	"ticket-allocator/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	CategoryID    uuid.UUID
	UserID        *uuid.UUID
	SessionID     string
	Quantity      int
	Source        reservation.Source
	WaitingListID *uuid.UUID
	Status        reservation.Status
	ReservedAt    time.Time
	ExpiresAt     time.Time
	PriceCents    int64
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()
	return &ReservationBuilder{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		UserID:     &userID,
		Quantity:   2,
		Source:     reservation.SourceDirectPurchase,
		Status:     reservation.StatusActive,
		ReservedAt: now,
		ExpiresAt:  now.Add(15 * time.Minute),
		PriceCents: 10000,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildNew() (*reservation.Reservation, error) {
	price, err := reservation.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(
		b.CategoryID, b.UserID, reservation.NewSessionID(b.SessionID), b.Quantity,
		b.Source, b.WaitingListID, price, b.ReservedAt, b.ExpiresAt,
	)
}

func (b *ReservationBuilder) Build() *reservation.Reservation {
	price, _ := reservation.NewMoney(b.PriceCents)
	return reservation.ReconstructReservation(
		b.ID, b.CategoryID, b.UserID, reservation.NewSessionID(b.SessionID), b.Quantity,
		b.Source, b.WaitingListID, b.Status, b.ReservedAt, b.ExpiresAt, price, b.ReservedAt,
	)
}

func (b *ReservationBuilder) WithCategoryID(id uuid.UUID) *ReservationBuilder {
	b.CategoryID = id
	return b
}

func (b *ReservationBuilder) WithUserID(id *uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithQuantity(qty int) *ReservationBuilder {
	b.Quantity = qty
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithExpiresAt(t time.Time) *ReservationBuilder {
	b.ExpiresAt = t
	return b
}

func (b *ReservationBuilder) ForQueueEntry(entryID uuid.UUID) *ReservationBuilder {
	b.Source = reservation.SourceQueueOffer
	b.WaitingListID = &entryID
	return b
}
