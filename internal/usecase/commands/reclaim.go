package commands

import (
	"context"
	"log/slog"
	"time"

	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"
)

type reclaimReason int

const (
	// reclaimExpired: the hold timed out.
	reclaimExpired reclaimReason = iota
	// reclaimDeclined: the buyer gave the offer back.
	reclaimDeclined
	// reclaimPaymentFailed: the payment provider reported a failure.
	reclaimPaymentFailed
)

func (r reclaimReason) String() string {
	switch r {
	case reclaimExpired:
		return "expired"
	case reclaimDeclined:
		return "declined"
	case reclaimPaymentFailed:
		return "payment_failed"
	default:
		return "unknown"
	}
}

// reclaim ends an active reservation and returns its quantity to the ledger
// inside the caller's category transaction. The conditional save makes the
// whole step a no-op error (reservation.ErrNotActive) for a second caller, so
// the ledger release happens exactly once.
func reclaim(ctx context.Context, tx shared.Tx, res *reservation.Reservation, reason reclaimReason, now time.Time) error {
	var err error
	switch reason {
	case reclaimExpired:
		err = res.Expire(now)
	case reclaimDeclined, reclaimPaymentFailed:
		err = res.Release(now)
	}
	if err != nil {
		return err
	}
	if err := tx.Reservations().Save(ctx, res); err != nil {
		return err
	}
	if err := tx.Ledger().Release(ctx, res.CategoryID(), res.Quantity()); err != nil {
		return err
	}

	if res.WaitingListID() == nil {
		return nil
	}
	entry, err := tx.Queue().GetByID(ctx, *res.WaitingListID())
	if err != nil {
		return errs.Wrap(err, "failed to load entry of reclaimed reservation")
	}
	if !entry.Status().HoldsInventory() || entry.ReservationID() == nil || *entry.ReservationID() != res.ID() {
		slog.Warn("reclaimed reservation is not the entry's current offer",
			"reservation_id", res.ID(),
			"entry_id", entry.ID(),
			"entry_status", entry.Status())
		return nil
	}

	switch reason {
	case reclaimExpired, reclaimPaymentFailed:
		err = entry.Expire(now)
	case reclaimDeclined:
		err = entry.Decline(now)
	}
	if err != nil {
		return err
	}
	if err := tx.Queue().Update(ctx, entry); err != nil {
		return err
	}

	if reason == reclaimDeclined {
		return nil
	}
	return enqueueNotification(ctx, tx, shared.TopicOfferExpired, entry, res.Quantity(), nil, now)
}
