package commands

//go:generate mockgen -source=$GOFILE -destination=../../mock/commandsmock/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"

	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentOutcome string

const (
	PaymentSucceeded PaymentOutcome = "success"
	PaymentFailed    PaymentOutcome = "failure"
)

func (o PaymentOutcome) IsValid() bool {
	return o == PaymentSucceeded || o == PaymentFailed
}

type FinalizeResult struct {
	ReservationID uuid.UUID
	CategoryID    uuid.UUID
	Status        reservation.Status
	Quantity      int
	EntryID       *uuid.UUID
}

type PurchaseFinalizer interface {
	// HandlePaymentOutcome converts the reservation on success and reclaims it
	// on failure. A reservation that already left active yields
	// errs.ErrReservationNoLongerValid, so repeated deliveries sell once.
	HandlePaymentOutcome(ctx context.Context, reservationID uuid.UUID, outcome PaymentOutcome) (*FinalizeResult, error)
}

type purchaseFinalizerImpl struct {
	uow       shared.UnitOfWork
	allocator Allocator
	clock     clock.Clock
}

func NewPurchaseFinalizer(uow shared.UnitOfWork, allocator Allocator, clock clock.Clock) PurchaseFinalizer {
	return &purchaseFinalizerImpl{
		uow:       uow,
		allocator: allocator,
		clock:     clock,
	}
}

func (f *purchaseFinalizerImpl) HandlePaymentOutcome(ctx context.Context, reservationID uuid.UUID, outcome PaymentOutcome) (*FinalizeResult, error) {
	if !outcome.IsValid() {
		return nil, errs.Mark(errs.Newf("unknown payment outcome %q", outcome), errs.ErrInvalidRequest)
	}

	snapshot, err := f.uow.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, classify(notFoundAs(err, errs.ErrReservationNotFound))
	}

	var result *FinalizeResult
	err = f.uow.WithinCategory(ctx, snapshot.CategoryID(), func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().GetByID(ctx, reservationID)
		if err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		if !res.IsActive() {
			return errs.Mark(errs.Newf("reservation %s is %s", res.ID(), res.Status()), errs.ErrReservationNoLongerValid)
		}

		now := f.clock.Now()
		if outcome == PaymentFailed {
			if err := reclaim(ctx, tx, res, reclaimPaymentFailed, now); err != nil {
				return err
			}
		} else {
			if res.HasExpired(now) {
				slog.Warn("accepting payment for reservation past its expiry",
					"reservation_id", res.ID(),
					"expires_at", res.ExpiresAt(),
					"now", now)
			}
			if err := f.convert(ctx, tx, res); err != nil {
				return err
			}
		}

		result = &FinalizeResult{
			ReservationID: res.ID(),
			CategoryID:    res.CategoryID(),
			Status:        res.Status(),
			Quantity:      res.Quantity(),
			EntryID:       res.WaitingListID(),
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		if errs.Is(err, errs.ErrReservationNoLongerValid) {
			slog.Warn("payment outcome for reservation that is no longer active",
				"reservation_id", reservationID,
				"outcome", outcome)
		}
		return nil, err
	}

	slog.Info("payment outcome applied",
		"reservation_id", result.ReservationID,
		"category_id", result.CategoryID,
		"outcome", outcome,
		"status", result.Status)

	if outcome == PaymentFailed {
		allocateAfterCommit(ctx, f.allocator, result.CategoryID)
	}
	return result, nil
}

func (f *purchaseFinalizerImpl) convert(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
	now := f.clock.Now()
	if err := res.Convert(now); err != nil {
		return err
	}
	if err := tx.Reservations().Save(ctx, res); err != nil {
		return err
	}
	if err := tx.Ledger().ConvertToSale(ctx, res.CategoryID(), res.Quantity()); err != nil {
		return err
	}

	if res.WaitingListID() == nil {
		return nil
	}
	entry, err := tx.Queue().GetByID(ctx, *res.WaitingListID())
	if err != nil {
		return err
	}
	if entry.Status() != queue.StatusOffered && entry.Status() != queue.StatusPurchasing {
		slog.Warn("converted reservation whose entry is not holding an offer",
			"reservation_id", res.ID(),
			"entry_id", entry.ID(),
			"entry_status", entry.Status())
		return nil
	}
	if err := entry.Convert(now); err != nil {
		return err
	}
	return tx.Queue().Update(ctx, entry)
}
