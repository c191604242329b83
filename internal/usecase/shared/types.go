package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationKindEvent = "event"

	TopicOfferAvailable = "offer_available"
	TopicOfferExpired   = "offer_expired"
)

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
}

// OfferNotification is the payload handed to the notification channel.
type OfferNotification struct {
	UserID     uuid.UUID  `json:"user_id"`
	Type       string     `json:"type"`
	CategoryID uuid.UUID  `json:"category_id"`
	EntryID    *uuid.UUID `json:"entry_id,omitempty"`
	Quantity   int        `json:"quantity,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
}
