package queries

//go:generate mockgen -source=$GOFILE -destination=../../mock/queriesmock/$GOFILE -package=queriesmock

import (
	"context"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

type QueueQueries interface {
	// GetQueuePosition returns the caller's active entry, or the latest one
	// when none is active, with the number of waiting entries served first.
	GetQueuePosition(ctx context.Context, categoryID, userID uuid.UUID) (*QueueEntryView, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryView, error)
	ListCategories(ctx context.Context) ([]*CategoryView, error)
	GetReservation(ctx context.Context, actor auth.Principal, reservationID uuid.UUID) (*ReservationView, error)
}

type queueQueriesImpl struct {
	reads shared.Reads
	clock clock.Clock
}

func NewQueueQueries(reads shared.Reads, clock clock.Clock) QueueQueries {
	return &queueQueriesImpl{reads: reads, clock: clock}
}

func (q *queueQueriesImpl) GetQueuePosition(ctx context.Context, categoryID, userID uuid.UUID) (*QueueEntryView, error) {
	entry, err := q.reads.LatestEntry(ctx, categoryID, userID)
	if err != nil {
		return nil, mapNotFound(err, errs.ErrQueueEntryNotFound)
	}
	ahead, err := q.reads.CountAhead(ctx, entry)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return NewQueueEntryView(entry, ahead), nil
}

func (q *queueQueriesImpl) GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryView, error) {
	cat, err := q.reads.CategoryByID(ctx, categoryID)
	if err != nil {
		return nil, mapNotFound(err, errs.ErrCategoryNotFound)
	}
	return newCategoryView(cat, q.clock.Now()), nil
}

func (q *queueQueriesImpl) ListCategories(ctx context.Context) ([]*CategoryView, error) {
	cats, err := q.reads.ListCategories(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	now := q.clock.Now()
	views := make([]*CategoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, newCategoryView(c, now))
	}
	return views, nil
}

// GetReservation hides reservations of other buyers behind not found.
func (q *queueQueriesImpl) GetReservation(ctx context.Context, actor auth.Principal, reservationID uuid.UUID) (*ReservationView, error) {
	res, err := q.reads.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, mapNotFound(err, errs.ErrReservationNotFound)
	}
	if !actor.Role.AtLeast(auth.RoleOrganizer) && !res.IsOwnedBy(actor.UserID) {
		return nil, errs.Mark(errs.Newf("reservation %s not visible to %s", reservationID, actor.UserID), errs.ErrReservationNotFound)
	}
	return NewReservationView(res), nil
}

func mapNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
