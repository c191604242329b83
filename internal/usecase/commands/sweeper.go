package commands

import (
	"context"
	"log/slog"
	"sync/atomic"

	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type SweepResult struct {
	Categories int
	Reclaimed  int
	Failed     int
}

type ExpirySweeper interface {
	// Sweep reclaims every active reservation past its expiry and then
	// runs the allocator for each category that got capacity back.
	Sweep(ctx context.Context) (*SweepResult, error)
	SweepCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type expirySweeperImpl struct {
	uow         shared.UnitOfWork
	allocator   Allocator
	clock       clock.Clock
	batchSize   int
	parallelism int
}

func NewExpirySweeper(uow shared.UnitOfWork, allocator Allocator, clock clock.Clock, batchSize, parallelism int) ExpirySweeper {
	return &expirySweeperImpl{
		uow:         uow,
		allocator:   allocator,
		clock:       clock,
		batchSize:   max(batchSize, 1),
		parallelism: max(parallelism, 1),
	}
}

func (s *expirySweeperImpl) Sweep(ctx context.Context) (*SweepResult, error) {
	ids, err := s.uow.Reads().ExpiredReservationCategories(ctx, s.clock.Now(), s.batchSize)
	if err != nil {
		return nil, classify(err)
	}

	var reclaimed, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for _, id := range ids {
		g.Go(func() error {
			n, err := s.SweepCategory(gctx, id)
			if err != nil {
				// Left active; the next tick retries the same reservations.
				failed.Add(1)
				slog.Error("expiry sweep failed", "category_id", id, "error", err.Error())
				return nil
			}
			reclaimed.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SweepResult{
		Categories: len(ids),
		Reclaimed:  int(reclaimed.Load()),
		Failed:     int(failed.Load()),
	}, nil
}

func (s *expirySweeperImpl) SweepCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	reclaimed := 0
	err := s.uow.WithinCategory(ctx, categoryID, func(ctx context.Context, tx shared.Tx) error {
		reclaimed = 0
		now := s.clock.Now()
		expired, err := tx.Reservations().ExpireSweep(ctx, categoryID, now)
		if err != nil {
			return err
		}
		for _, res := range expired {
			if err := reclaim(ctx, tx, res, reclaimExpired, now); err != nil {
				if errs.Is(err, reservation.ErrNotActive) {
					continue
				}
				return errs.Wrapf(err, "reclaim reservation %s", res.ID())
			}
			reclaimed++
			slog.Info("reservation expired",
				"category_id", categoryID,
				"reservation_id", res.ID(),
				"quantity", res.Quantity(),
				"source", res.Source())
		}
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	if reclaimed > 0 {
		allocateAfterCommit(ctx, s.allocator, categoryID)
	}
	return reclaimed, nil
}
