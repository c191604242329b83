package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type JoinQueueRequest struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
}

type HoldTicketsRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	SessionID string `json:"sessionId"`
}

type AdminHoldRequest struct {
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	TTLMinutes int        `json:"ttlMinutes" binding:"omitempty,min=1"`
}

func (r AdminHoldRequest) TTL() time.Duration {
	return time.Duration(r.TTLMinutes) * time.Minute
}

type CreateCategoryRequest struct {
	EventID       uuid.UUID  `json:"eventId" binding:"required"`
	Name          string     `json:"name" binding:"required"`
	PriceCents    int64      `json:"priceCents" binding:"min=0"`
	TotalQuantity int        `json:"totalQuantity" binding:"min=0"`
	MinPerOrder   int        `json:"minPerOrder" binding:"required,min=1"`
	MaxPerOrder   int        `json:"maxPerOrder" binding:"required,min=1"`
	SaleStart     *time.Time `json:"saleStart,omitempty"`
	SaleEnd       *time.Time `json:"saleEnd,omitempty"`
}

func (r CreateCategoryRequest) TrimmedName() string {
	return strings.TrimSpace(r.Name)
}

type PaymentWebhookRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	Outcome       string    `json:"outcome" binding:"required,oneof=success failure"`
}
