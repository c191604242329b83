package commands

//go:generate mockgen -source=$GOFILE -destination=../../mock/commandsmock/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"

	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

type JoinQueueInput struct {
	CategoryID        uuid.UUID
	UserID            uuid.UUID
	RequestedQuantity int
	Contact           queue.Contact
	ClientIP          string
}

type JoinQueueResult struct {
	Entry *queue.Entry
	// OfferedImmediately is set when the join found free capacity and the
	// allocator offered to this entry right away.
	OfferedImmediately bool
}

type QueueCommands interface {
	JoinQueue(ctx context.Context, in JoinQueueInput) (*JoinQueueResult, error)
	// LeaveQueue cancels a waiting entry or declines a held offer.
	LeaveQueue(ctx context.Context, categoryID, userID uuid.UUID) (*queue.Entry, error)
	ReleaseOffer(ctx context.Context, reservationID, userID uuid.UUID) error
	BeginPurchase(ctx context.Context, reservationID, userID uuid.UUID) (*reservation.Reservation, error)
	RemoveEntry(ctx context.Context, entryID uuid.UUID) (*queue.Entry, error)
}

type queueUseCaseImpl struct {
	uow       shared.UnitOfWork
	allocator Allocator
	scorer    queue.PriorityScorer
	abuse     AbuseDetector
	clock     clock.Clock
	policy    Policy
}

func NewQueueUseCase(
	uow shared.UnitOfWork,
	allocator Allocator,
	scorer queue.PriorityScorer,
	abuse AbuseDetector,
	clock clock.Clock,
	policy Policy,
) QueueCommands {
	return &queueUseCaseImpl{
		uow:       uow,
		allocator: allocator,
		scorer:    scorer,
		abuse:     abuse,
		clock:     clock,
		policy:    policy,
	}
}

func (q *queueUseCaseImpl) JoinQueue(ctx context.Context, in JoinQueueInput) (*JoinQueueResult, error) {
	if in.RequestedQuantity <= 0 {
		return nil, errs.Mark(errs.Newf("requested quantity %d", in.RequestedQuantity), errs.ErrInvalidQuantity)
	}

	var (
		entry      *queue.Entry
		wakeupPass bool
	)
	err := q.uow.WithinCategory(ctx, in.CategoryID, func(ctx context.Context, tx shared.Tx) error {
		cat := tx.Category()
		now := q.clock.Now()

		if !cat.IsOnSale(now) {
			return errs.Mark(errs.Newf("category %s is not on sale", cat.ID()), errs.ErrCategoryNotOnSale)
		}
		if err := cat.ValidateOrderQuantity(in.RequestedQuantity); err != nil {
			return err
		}

		existing, err := tx.Queue().FindActive(ctx, in.UserID, cat.ID())
		if err != nil {
			return err
		}
		if existing != nil {
			return newDuplicateEntryError(existing)
		}

		waiting, err := tx.Queue().CountWaiting(ctx, cat.ID())
		if err != nil {
			return err
		}
		if q.policy.MaxQueueSize > 0 && waiting >= q.policy.MaxQueueSize {
			return errs.Mark(errs.Newf("queue holds %d entries", waiting), errs.ErrQueueFull)
		}

		// Only joins that passed validation count toward the client ip window.
		verdict := q.observe(ctx, in)

		entry, err = queue.NewEntry(cat.ID(), in.UserID, in.RequestedQuantity, in.Contact, verdict.IPKey, verdict.Flagged, now)
		if err != nil {
			return err
		}
		entry.SetPriorityScore(q.scorer.Score(queue.ScoreInput{
			CategoryID: cat.ID(),
			UserID:     in.UserID,
			JoinedAt:   now,
			SaleStart:  cat.SaleWindow().Start,
			Flagged:    verdict.Flagged,
		}))
		if err := tx.Queue().Enqueue(ctx, entry); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateQueueEntry)
			}
			return err
		}

		wakeupPass = cat.Available() > 0
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("joined queue",
		"category_id", in.CategoryID,
		"user_id", in.UserID,
		"entry_id", entry.ID(),
		"position", entry.Position(),
		"priority_score", entry.PriorityScore(),
		"flagged", entry.Flagged())

	result := &JoinQueueResult{Entry: entry}
	if !wakeupPass {
		return result, nil
	}

	allocateAfterCommit(ctx, q.allocator, in.CategoryID)
	if latest, err := q.uow.Reads().EntryByID(ctx, entry.ID()); err == nil {
		result.Entry = latest
		result.OfferedImmediately = latest.Status() == queue.StatusOffered
	}
	return result, nil
}

func (q *queueUseCaseImpl) observe(ctx context.Context, in JoinQueueInput) AbuseVerdict {
	verdict, err := q.abuse.Observe(ctx, in.CategoryID, in.ClientIP)
	if err != nil {
		slog.Warn("abuse detector unavailable, admitting join unflagged",
			"category_id", in.CategoryID,
			"error", err.Error())
		return AbuseVerdict{IPKey: verdict.IPKey}
	}
	if verdict.Flagged {
		slog.Warn("join from suspicious client ip",
			"category_id", in.CategoryID,
			"user_id", in.UserID,
			"ip_key", verdict.IPKey,
			"count", verdict.Count)
	}
	return verdict
}

func (q *queueUseCaseImpl) LeaveQueue(ctx context.Context, categoryID, userID uuid.UUID) (*queue.Entry, error) {
	var (
		entry   *queue.Entry
		release bool
	)
	err := q.uow.WithinCategory(ctx, categoryID, func(ctx context.Context, tx shared.Tx) error {
		now := q.clock.Now()
		var err error
		entry, err = tx.Queue().FindActive(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return errs.Mark(errs.Newf("no active entry for user %s", userID), errs.ErrQueueEntryNotFound)
		}

		if entry.Status() == queue.StatusWaiting {
			if err := entry.Cancel(now); err != nil {
				return err
			}
			return tx.Queue().Update(ctx, entry)
		}

		if entry.ReservationID() == nil {
			return errs.Mark(errs.Newf("entry %s holds no reservation", entry.ID()), errs.ErrInvalidEntryState)
		}
		res, err := tx.Reservations().GetByID(ctx, *entry.ReservationID())
		if err != nil {
			return err
		}
		if err := reclaim(ctx, tx, res, reclaimDeclined, now); err != nil {
			return err
		}
		release = true
		entry, err = tx.Queue().GetByID(ctx, entry.ID())
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("left queue", "category_id", categoryID, "user_id", userID, "entry_id", entry.ID(), "status", entry.Status())
	if release {
		allocateAfterCommit(ctx, q.allocator, categoryID)
	}
	return entry, nil
}

func (q *queueUseCaseImpl) ReleaseOffer(ctx context.Context, reservationID, userID uuid.UUID) error {
	snapshot, err := q.uow.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return classify(notFoundAs(err, errs.ErrReservationNotFound))
	}

	err = q.uow.WithinCategory(ctx, snapshot.CategoryID(), func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().GetByID(ctx, reservationID)
		if err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		if !res.IsOwnedBy(userID) {
			return errs.Mark(errs.Newf("reservation %s not owned by %s", reservationID, userID), errs.ErrReservationNotOwned)
		}
		return reclaim(ctx, tx, res, reclaimDeclined, q.clock.Now())
	})
	if err != nil {
		return classify(err)
	}

	slog.Info("offer released", "reservation_id", reservationID, "user_id", userID)
	allocateAfterCommit(ctx, q.allocator, snapshot.CategoryID())
	return nil
}

func (q *queueUseCaseImpl) BeginPurchase(ctx context.Context, reservationID, userID uuid.UUID) (*reservation.Reservation, error) {
	snapshot, err := q.uow.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, classify(notFoundAs(err, errs.ErrReservationNotFound))
	}

	var res *reservation.Reservation
	err = q.uow.WithinCategory(ctx, snapshot.CategoryID(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = tx.Reservations().GetByID(ctx, reservationID)
		if err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		if !res.IsOwnedBy(userID) {
			return errs.Mark(errs.Newf("reservation %s not owned by %s", reservationID, userID), errs.ErrReservationNotOwned)
		}
		now := q.clock.Now()
		if !res.IsActive() || res.HasExpired(now) {
			return errs.Mark(errs.Newf("reservation %s is %s", res.ID(), res.Status()), errs.ErrReservationNoLongerValid)
		}

		var entry *queue.Entry
		if res.WaitingListID() != nil {
			entry, err = tx.Queue().GetByID(ctx, *res.WaitingListID())
			if err != nil {
				return err
			}
			if entry.Status() == queue.StatusPurchasing {
				// Repeated checkout start keeps the original purchase deadline.
				return nil
			}
		}

		deadline := now.Add(q.policy.PurchaseTimeout)
		if deadline.After(res.ExpiresAt()) {
			if err := res.Extend(deadline, now); err != nil {
				return err
			}
			if err := tx.Reservations().Save(ctx, res); err != nil {
				return err
			}
		}

		if entry == nil {
			return nil
		}
		if err := entry.StartPurchase(res.ExpiresAt(), now); err != nil {
			return err
		}
		return tx.Queue().Update(ctx, entry)
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("purchase started", "reservation_id", res.ID(), "user_id", userID, "expires_at", res.ExpiresAt())
	return res, nil
}

func (q *queueUseCaseImpl) RemoveEntry(ctx context.Context, entryID uuid.UUID) (*queue.Entry, error) {
	snapshot, err := q.uow.Reads().EntryByID(ctx, entryID)
	if err != nil {
		return nil, classify(notFoundAs(err, errs.ErrQueueEntryNotFound))
	}

	var entry *queue.Entry
	err = q.uow.WithinCategory(ctx, snapshot.CategoryID(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		entry, err = tx.Queue().GetByID(ctx, entryID)
		if err != nil {
			return notFoundAs(err, errs.ErrQueueEntryNotFound)
		}
		if err := entry.Remove(q.clock.Now()); err != nil {
			return err
		}
		return tx.Queue().Update(ctx, entry)
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("queue entry removed", "entry_id", entryID, "category_id", entry.CategoryID())
	return entry, nil
}
