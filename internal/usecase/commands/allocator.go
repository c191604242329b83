package commands

//go:generate mockgen -source=$GOFILE -destination=../../mock/commandsmock/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AllocationResult struct {
	CategoryID uuid.UUID
	Available  int
	Offered    []*queue.Entry
	Skipped    int
}

type Allocator interface {
	// AllocateCategory runs one allocation pass under the category lock.
	AllocateCategory(ctx context.Context, categoryID uuid.UUID) (*AllocationResult, error)
	// AllocateAll runs a pass for every active category with waiting entries.
	AllocateAll(ctx context.Context) (int, error)
}

type allocatorImpl struct {
	uow         shared.UnitOfWork
	factory     *reservation.Factory
	clock       clock.Clock
	policy      Policy
	parallelism int
}

func NewAllocator(uow shared.UnitOfWork, factory *reservation.Factory, clock clock.Clock, policy Policy, parallelism int) Allocator {
	return &allocatorImpl{
		uow:         uow,
		factory:     factory,
		clock:       clock,
		policy:      policy,
		parallelism: max(parallelism, 1),
	}
}

func (a *allocatorImpl) AllocateCategory(ctx context.Context, categoryID uuid.UUID) (*AllocationResult, error) {
	var result *AllocationResult
	err := a.uow.WithinCategory(ctx, categoryID, func(ctx context.Context, tx shared.Tx) error {
		r, err := a.allocateLocked(ctx, tx)
		result = r
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	if len(result.Offered) > 0 {
		slog.Info("allocated offers",
			"category_id", categoryID,
			"available", result.Available,
			"offered", len(result.Offered),
			"skipped", result.Skipped)
	}
	return result, nil
}

// allocateLocked must run inside WithinCategory.
func (a *allocatorImpl) allocateLocked(ctx context.Context, tx shared.Tx) (*AllocationResult, error) {
	cat := tx.Category()
	now := a.clock.Now()
	result := &AllocationResult{CategoryID: cat.ID(), Available: cat.Available()}

	if !cat.IsOnSale(now) || result.Available <= 0 {
		return result, nil
	}

	candidates, err := tx.Queue().NextEligible(ctx, cat.ID(), result.Available, cat.MaxPerOrder())
	if err != nil {
		return nil, err
	}

	remaining := result.Available
	for _, entry := range candidates {
		qty := cat.OfferQuantity(entry.RequestedQuantity(), remaining)
		if qty <= 0 {
			break
		}

		if err := tx.Ledger().TryReserve(ctx, cat.ID(), qty); err != nil {
			if errs.Is(err, errs.ErrInsufficientInventory) || isInsufficient(err) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		res, err := a.factory.CreateQueueOffer(cat, entry, qty, a.policy.OfferTimeout)
		if err != nil {
			return nil, err
		}
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return nil, err
		}
		if err := entry.Offer(qty, cat.PriceCents(), res.ID(), res.ExpiresAt(), now); err != nil {
			return nil, err
		}
		if err := tx.Queue().Update(ctx, entry); err != nil {
			return nil, err
		}
		expiresAt := res.ExpiresAt()
		if err := enqueueNotification(ctx, tx, shared.TopicOfferAvailable, entry, qty, &expiresAt, now); err != nil {
			return nil, err
		}

		remaining -= qty
		result.Offered = append(result.Offered, entry)
	}
	return result, nil
}

func (a *allocatorImpl) AllocateAll(ctx context.Context) (int, error) {
	ids, err := a.uow.Reads().CategoriesWithWaiting(ctx)
	if err != nil {
		return 0, classify(err)
	}
	return a.fanOut(ctx, ids)
}

func (a *allocatorImpl) fanOut(ctx context.Context, ids []uuid.UUID) (int, error) {
	offered := make([]int, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i, id := range ids {
		g.Go(func() error {
			r, err := a.AllocateCategory(gctx, id)
			if err != nil {
				slog.Error("allocation pass failed", "category_id", id, "error", err.Error())
				return nil
			}
			offered[i] = len(r.Offered)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range offered {
		total += n
	}
	return total, nil
}

// allocateAfterCommit wakes the allocator once capacity has been returned.
// Failures are logged; the periodic tick picks the category up again.
func allocateAfterCommit(ctx context.Context, a Allocator, categoryID uuid.UUID) {
	b := backoff.WithContext(backoff.WithMaxRetries(newRetryBackOff(), 3), ctx)
	err := backoff.Retry(func() error {
		_, err := a.AllocateCategory(ctx, categoryID)
		if errs.Is(err, errs.ErrCategoryNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
	if err != nil {
		slog.Warn("post-commit allocation failed", "category_id", categoryID, "error", err.Error())
	}
}

func newRetryBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 5 * time.Second
	return b
}
