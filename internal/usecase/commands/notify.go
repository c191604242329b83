package commands

import (
	"context"
	"encoding/json"
	"time"

	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"
)

// enqueueNotification writes an outbox job in the caller's transaction so the
// event is published only if the state change commits.
func enqueueNotification(ctx context.Context, tx shared.Tx, topic string, entry *queue.Entry, qty int, expiresAt *time.Time, now time.Time) error {
	entryID := entry.ID()
	payload, err := json.Marshal(shared.OfferNotification{
		UserID:     entry.UserID(),
		Type:       topic,
		CategoryID: entry.CategoryID(),
		EntryID:    &entryID,
		Quantity:   qty,
		ExpiresAt:  expiresAt,
		Email:      entry.Contact().Email,
		Phone:      entry.Contact().Phone,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification")
	}
	return tx.Notifications().CreateJob(ctx, shared.NotificationKindEvent, topic, payload, now)
}
