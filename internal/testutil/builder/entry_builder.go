//go:build unit || e2e

package builder

import (
	"time"

	"ticket-allocator/internal/domain/queue"

	"github.com/google/uuid"
)

type EntryBuilder struct {
	ID                uuid.UUID
	CategoryID        uuid.UUID
	UserID            uuid.UUID
	Position          int64
	RequestedQuantity int
	PriorityScore     int
	Status            queue.Status
	OfferExpiresAt    *time.Time
	OfferedQuantity   int
	OfferedPriceCents int64
	ReservationID     *uuid.UUID
	Contact           queue.Contact
	ClientIPKey       string
	Flagged           bool
	CreatedAt         time.Time
}

func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{
		ID:                uuid.New(),
		CategoryID:        uuid.New(),
		UserID:            uuid.New(),
		Position:          1,
		RequestedQuantity: 2,
		Status:            queue.StatusWaiting,
		Contact:           queue.Contact{Email: "buyer@example.com"},
		CreatedAt:         time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *EntryBuilder) With(mutate func(*EntryBuilder)) *EntryBuilder {
	mutate(b)
	return b
}

func (b *EntryBuilder) Build() *queue.Entry {
	return queue.ReconstructEntry(
		b.ID, b.CategoryID, b.UserID, b.Position, b.RequestedQuantity, b.PriorityScore,
		b.Status, b.OfferExpiresAt, b.OfferedQuantity, b.OfferedPriceCents, b.ReservationID,
		b.Contact, b.ClientIPKey, b.Flagged, b.CreatedAt, b.CreatedAt,
	)
}

func (b *EntryBuilder) WithCategoryID(id uuid.UUID) *EntryBuilder {
	b.CategoryID = id
	return b
}

func (b *EntryBuilder) WithUserID(id uuid.UUID) *EntryBuilder {
	b.UserID = id
	return b
}

func (b *EntryBuilder) WithPosition(position int64) *EntryBuilder {
	b.Position = position
	return b
}

func (b *EntryBuilder) WithRequested(qty int) *EntryBuilder {
	b.RequestedQuantity = qty
	return b
}

func (b *EntryBuilder) WithPriority(score int) *EntryBuilder {
	b.PriorityScore = score
	return b
}

func (b *EntryBuilder) WithStatus(status queue.Status) *EntryBuilder {
	b.Status = status
	return b
}

// Offered puts the entry in the offered state backed by reservationID.
func (b *EntryBuilder) Offered(qty int, reservationID uuid.UUID, expiresAt time.Time) *EntryBuilder {
	b.Status = queue.StatusOffered
	b.OfferedQuantity = qty
	b.ReservationID = &reservationID
	b.OfferExpiresAt = &expiresAt
	return b
}
