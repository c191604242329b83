package queries

import (
	"time"

	"github.com/google/uuid"
)

// CategoryView represents read-optimized category data
type CategoryView struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	Name        string     `json:"name"`
	PriceCents  int64      `json:"price_cents"`
	Total       int        `json:"total_quantity"`
	Sold        int        `json:"sold_quantity"`
	Reserved    int        `json:"reserved_quantity"`
	Available   int        `json:"available_quantity"`
	MinPerOrder int        `json:"min_per_order"`
	MaxPerOrder int        `json:"max_per_order"`
	SaleStart   *time.Time `json:"sale_start,omitempty"`
	SaleEnd     *time.Time `json:"sale_end,omitempty"`
	IsActive    bool       `json:"is_active"`
	OnSale      bool       `json:"on_sale"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// QueueEntryView represents a queue entry together with its place in line
type QueueEntryView struct {
	ID                uuid.UUID  `json:"id"`
	CategoryID        uuid.UUID  `json:"category_id"`
	UserID            uuid.UUID  `json:"user_id"`
	Position          int64      `json:"position"`
	Ahead             int        `json:"ahead"`
	RequestedQuantity int        `json:"requested_quantity"`
	PriorityScore     int        `json:"priority_score"`
	Status            string     `json:"status"`
	OfferExpiresAt    *time.Time `json:"offer_expires_at,omitempty"`
	OfferedQuantity   int        `json:"offered_quantity,omitempty"`
	OfferedPriceCents int64      `json:"offered_price_cents,omitempty"`
	ReservationID     *uuid.UUID `json:"reservation_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	CategoryID       uuid.UUID  `json:"category_id"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	Quantity         int        `json:"quantity"`
	Source           string     `json:"source"`
	WaitingListID    *uuid.UUID `json:"waiting_list_id,omitempty"`
	Status           string     `json:"status"`
	PriceLockedCents int64      `json:"price_locked_cents"`
	ReservedAt       time.Time  `json:"reserved_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
