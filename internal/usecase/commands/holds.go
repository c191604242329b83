package commands

//go:generate mockgen -source=$GOFILE -destination=../../mock/commandsmock/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

type HoldTicketsInput struct {
	CategoryID uuid.UUID
	UserID     *uuid.UUID
	SessionID  string
	Quantity   int
	Source     reservation.Source
	// TTL overrides the default hold duration for admin holds.
	TTL time.Duration
}

type HoldCommands interface {
	// HoldTickets reserves inventory outside the queue. Direct purchases are
	// refused while anyone is waiting so they cannot overtake the queue.
	HoldTickets(ctx context.Context, in HoldTicketsInput) (*reservation.Reservation, error)
}

type holdUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	clock   clock.Clock
	policy  Policy
}

func NewHoldUseCase(uow shared.UnitOfWork, factory *reservation.Factory, clock clock.Clock, policy Policy) HoldCommands {
	return &holdUseCaseImpl{
		uow:     uow,
		factory: factory,
		clock:   clock,
		policy:  policy,
	}
}

func (h *holdUseCaseImpl) HoldTickets(ctx context.Context, in HoldTicketsInput) (*reservation.Reservation, error) {
	if in.Quantity <= 0 {
		return nil, errs.Mark(errs.Newf("hold quantity %d", in.Quantity), errs.ErrInvalidQuantity)
	}
	if in.Source != reservation.SourceDirectPurchase && in.Source != reservation.SourceAdminHold {
		return nil, errs.Mark(errs.Newf("unsupported hold source %q", in.Source), errs.ErrInvalidRequest)
	}

	ttl := h.policy.PurchaseTimeout
	if in.Source == reservation.SourceAdminHold {
		ttl = h.policy.OfferTimeout
		if in.TTL > 0 {
			ttl = in.TTL
		}
	}

	var res *reservation.Reservation
	err := h.uow.WithinCategory(ctx, in.CategoryID, func(ctx context.Context, tx shared.Tx) error {
		cat := tx.Category()
		now := h.clock.Now()

		if in.Source == reservation.SourceAdminHold {
			if !cat.IsActive() {
				return errs.Mark(errs.Newf("category %s is inactive", cat.ID()), errs.ErrCategoryNotOnSale)
			}
		} else {
			if !cat.IsOnSale(now) {
				return errs.Mark(errs.Newf("category %s is not on sale", cat.ID()), errs.ErrCategoryNotOnSale)
			}
			if err := cat.ValidateOrderQuantity(in.Quantity); err != nil {
				return err
			}
			waiting, err := tx.Queue().CountWaiting(ctx, cat.ID())
			if err != nil {
				return err
			}
			if waiting > 0 {
				return errs.Mark(errs.Newf("%d buyers are waiting for category %s", waiting, cat.ID()), errs.ErrInsufficientInventory)
			}
		}

		if err := tx.Ledger().TryReserve(ctx, cat.ID(), in.Quantity); err != nil {
			return err
		}

		var err error
		res, err = h.factory.CreateHold(cat, in.UserID, reservation.NewSessionID(in.SessionID), in.Quantity, in.Source, ttl)
		if err != nil {
			return err
		}
		return tx.Reservations().Create(ctx, res)
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("tickets held",
		"category_id", in.CategoryID,
		"reservation_id", res.ID(),
		"source", res.Source(),
		"quantity", res.Quantity(),
		"expires_at", res.ExpiresAt())
	return res, nil
}
