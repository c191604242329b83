package response

import (
	"time"

	"ticket-allocator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type QueueEntryResponse struct {
	ID                uuid.UUID  `json:"id"`
	CategoryID        uuid.UUID  `json:"categoryId"`
	Position          int64      `json:"position"`
	Ahead             int        `json:"ahead"`
	RequestedQuantity int        `json:"requestedQuantity"`
	Status            string     `json:"status"`
	OfferExpiresAt    *time.Time `json:"offerExpiresAt,omitempty"`
	OfferedQuantity   int        `json:"offeredQuantity,omitempty"`
	OfferedPriceCents int64      `json:"offeredPriceCents,omitempty"`
	ReservationID     *uuid.UUID `json:"reservationId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"eventId"`
	Name        string     `json:"name"`
	PriceCents  int64      `json:"priceCents"`
	Total       int        `json:"totalQuantity"`
	Sold        int        `json:"soldQuantity"`
	Reserved    int        `json:"reservedQuantity"`
	Available   int        `json:"availableQuantity"`
	MinPerOrder int        `json:"minPerOrder"`
	MaxPerOrder int        `json:"maxPerOrder"`
	SaleStart   *time.Time `json:"saleStart,omitempty"`
	SaleEnd     *time.Time `json:"saleEnd,omitempty"`
	IsActive    bool       `json:"isActive"`
	OnSale      bool       `json:"onSale"`
}

type ReservationResponse struct {
	ID               uuid.UUID  `json:"id"`
	CategoryID       uuid.UUID  `json:"categoryId"`
	Quantity         int        `json:"quantity"`
	Source           string     `json:"source"`
	WaitingListID    *uuid.UUID `json:"waitingListId,omitempty"`
	Status           string     `json:"status"`
	PriceLockedCents int64      `json:"priceLockedCents"`
	ReservedAt       time.Time  `json:"reservedAt"`
	ExpiresAt        time.Time  `json:"expiresAt"`
}

type PaymentWebhookResponse struct {
	Status        string    `json:"status"`
	ReservationID uuid.UUID `json:"reservation_id"`
}

type AllocationResponse struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Available  int       `json:"available"`
	Offered    int       `json:"offered"`
	Skipped    int       `json:"skipped"`
}

// DuplicateEntryDetail is returned with ALREADY_IN_QUEUE.
type DuplicateEntryDetail struct {
	EntryID  uuid.UUID `json:"entryId"`
	Position int64     `json:"position"`
	Status   string    `json:"status"`
}

func FromQueueEntryView(v *queries.QueueEntryView) *QueueEntryResponse {
	out := &QueueEntryResponse{}
	_ = copier.Copy(out, v)
	return out
}

func FromCategoryView(v *queries.CategoryView) *CategoryResponse {
	out := &CategoryResponse{}
	_ = copier.Copy(out, v)
	return out
}

func FromCategoryViews(vs []*queries.CategoryView) []*CategoryResponse {
	res := make([]*CategoryResponse, len(vs))
	for i, v := range vs {
		res[i] = FromCategoryView(v)
	}
	return res
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	out := &ReservationResponse{}
	_ = copier.Copy(out, v)
	return out
}
