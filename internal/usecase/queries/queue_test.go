//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra/memstore"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/testutil/builder"
	"ticket-allocator/internal/usecase/queries"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type QueueQueriesTestSuite struct {
	suite.Suite
	store   *memstore.Store
	queries queries.QueueQueries
	ctx     context.Context
}

func TestQueueQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueueQueriesTestSuite))
}

func (s *QueueQueriesTestSuite) SetupTest() {
	clk := clock.NewMockClock(now)
	s.store = memstore.New(clk)
	s.queries = queries.NewQueueQueries(s.store.Reads(), clk)
	s.ctx = context.Background()
}

func (s *QueueQueriesTestSuite) createCategory(b *builder.CategoryBuilder) uuid.UUID {
	cat := b.Build()
	s.Require().NoError(s.store.Catalog().Create(s.ctx, cat))
	return cat.ID()
}

func (s *QueueQueriesTestSuite) within(categoryID uuid.UUID, fn func(tx shared.Tx) error) {
	err := s.store.WithinCategory(s.ctx, categoryID, func(_ context.Context, tx shared.Tx) error {
		return fn(tx)
	})
	s.Require().NoError(err)
}

func (s *QueueQueriesTestSuite) enqueue(categoryID, userID uuid.UUID, score int) *queue.Entry {
	e, err := queue.NewEntry(categoryID, userID, 1, queue.Contact{}, "", false, now)
	s.Require().NoError(err)
	e.SetPriorityScore(score)
	s.within(categoryID, func(tx shared.Tx) error {
		return tx.Queue().Enqueue(s.ctx, e)
	})
	return e
}

func (s *QueueQueriesTestSuite) TestGetQueuePosition() {
	s.Run("counts entries served first", func() {
		catID := s.createCategory(builder.NewCategoryBuilder().SoldOut())
		first, second, boosted := uuid.New(), uuid.New(), uuid.New()
		s.enqueue(catID, first, 0)
		s.enqueue(catID, second, 0)
		s.enqueue(catID, boosted, 10)

		view, err := s.queries.GetQueuePosition(s.ctx, catID, second)
		s.Require().NoError(err)
		s.Equal(int64(2), view.Position)
		s.Equal(2, view.Ahead)
		s.Equal("waiting", view.Status)

		view, err = s.queries.GetQueuePosition(s.ctx, catID, boosted)
		s.Require().NoError(err)
		s.Equal(0, view.Ahead)
		s.Equal(10, view.PriorityScore)
	})

	s.Run("prefers the active entry over older ones", func() {
		catID := s.createCategory(builder.NewCategoryBuilder().SoldOut())
		userID := uuid.New()
		old := s.enqueue(catID, userID, 0)
		s.within(catID, func(tx shared.Tx) error {
			if err := old.Cancel(now); err != nil {
				return err
			}
			return tx.Queue().Update(s.ctx, old)
		})
		current := s.enqueue(catID, userID, 0)

		view, err := s.queries.GetQueuePosition(s.ctx, catID, userID)

		s.Require().NoError(err)
		s.Equal(current.ID(), view.ID)
		s.Equal("waiting", view.Status)
	})

	s.Run("reports a finished entry with nobody ahead", func() {
		catID := s.createCategory(builder.NewCategoryBuilder().SoldOut())
		s.enqueue(catID, uuid.New(), 0)
		userID := uuid.New()
		e := s.enqueue(catID, userID, 0)
		s.within(catID, func(tx shared.Tx) error {
			if err := e.Cancel(now); err != nil {
				return err
			}
			return tx.Queue().Update(s.ctx, e)
		})

		view, err := s.queries.GetQueuePosition(s.ctx, catID, userID)

		s.Require().NoError(err)
		s.Equal("cancelled", view.Status)
		s.Equal(0, view.Ahead)
	})

	s.Run("no entry", func() {
		_, err := s.queries.GetQueuePosition(s.ctx, uuid.New(), uuid.New())
		s.True(errs.Is(err, errs.ErrQueueEntryNotFound))
	})
}

func (s *QueueQueriesTestSuite) TestCategories() {
	later := now.Add(time.Hour)
	onSale := s.createCategory(builder.NewCategoryBuilder().WithInventory(10, 3, 2))
	upcoming := s.createCategory(builder.NewCategoryBuilder().WithSaleWindow(&later, nil).With(func(b *builder.CategoryBuilder) {
		b.CreatedAt = b.CreatedAt.Add(time.Minute)
	}))

	s.Run("single category with counters", func() {
		view, err := s.queries.GetCategory(s.ctx, onSale)

		s.Require().NoError(err)
		s.Equal(10, view.Total)
		s.Equal(3, view.Sold)
		s.Equal(2, view.Reserved)
		s.Equal(5, view.Available)
		s.True(view.OnSale)
	})

	s.Run("list in creation order", func() {
		views, err := s.queries.ListCategories(s.ctx)

		s.Require().NoError(err)
		s.Require().Len(views, 2)
		s.Equal(onSale, views[0].ID)
		s.Equal(upcoming, views[1].ID)
		s.True(views[1].IsActive)
		s.False(views[1].OnSale)
	})

	s.Run("unknown category", func() {
		_, err := s.queries.GetCategory(s.ctx, uuid.New())
		s.True(errs.Is(err, errs.ErrCategoryNotFound))
	})
}

func (s *QueueQueriesTestSuite) TestGetReservation() {
	catID := s.createCategory(builder.NewCategoryBuilder().WithInventory(10, 0, 2))
	ownerID := uuid.New()
	res := builder.NewReservationBuilder().WithCategoryID(catID).WithUserID(&ownerID).Build()
	s.within(catID, func(tx shared.Tx) error {
		return tx.Reservations().Create(s.ctx, res)
	})

	tests := []struct {
		name    string
		actor   auth.Principal
		visible bool
	}{
		{name: "owner", actor: auth.Principal{UserID: ownerID, Role: auth.RoleBuyer}, visible: true},
		{name: "other buyer", actor: auth.Principal{UserID: uuid.New(), Role: auth.RoleBuyer}, visible: false},
		{name: "organizer", actor: auth.Principal{UserID: uuid.New(), Role: auth.RoleOrganizer}, visible: true},
		{name: "admin", actor: auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}, visible: true},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			view, err := s.queries.GetReservation(s.ctx, tt.actor, res.ID())
			if !tt.visible {
				s.True(errs.Is(err, errs.ErrReservationNotFound))
				return
			}
			s.Require().NoError(err)
			s.Equal(res.ID(), view.ID)
			s.Equal(reservation.StatusActive.String(), view.Status)
			s.Equal(int64(10000), view.PriceLockedCents)
		})
	}

	s.Run("unknown reservation", func() {
		_, err := s.queries.GetReservation(s.ctx, auth.Principal{UserID: ownerID, Role: auth.RoleAdmin}, uuid.New())
		s.True(errs.Is(err, errs.ErrReservationNotFound))
	})
}
