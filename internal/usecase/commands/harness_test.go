//go:build unit

package commands_test

import (
	"context"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra/memstore"
	"ticket-allocator/internal/mock/commandsmock"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/testutil/builder"
	"ticket-allocator/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var startTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// storeSuite wires the real command implementations to an in-memory store.
type storeSuite struct {
	suite.Suite

	mockCtrl  *gomock.Controller
	abuse     *commandsmock.MockAbuseDetector
	clock     *clock.MockClock
	store     *memstore.Store
	policy    commands.Policy
	allocator commands.Allocator
	queue     commands.QueueCommands
	holds     commands.HoldCommands
	finalizer commands.PurchaseFinalizer
	sweeper   commands.ExpirySweeper
	auditor   commands.InventoryAuditor
	ctx       context.Context
}

func (s *storeSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.abuse = commandsmock.NewMockAbuseDetector(s.mockCtrl)
	s.abuse.EXPECT().
		Observe(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(commands.AbuseVerdict{IPKey: "ip-key"}, nil).
		AnyTimes()

	s.clock = clock.NewMockClock(startTime)
	s.store = memstore.New(s.clock)
	s.policy = commands.Policy{
		OfferTimeout:    15 * time.Minute,
		PurchaseTimeout: 10 * time.Minute,
		MaxQueueSize:    3,
	}
	s.ctx = context.Background()

	factory := reservation.NewFactory(s.clock, reservation.NewDefaultPriceCalculator())
	s.allocator = commands.NewAllocator(s.store, factory, s.clock, s.policy, 2)
	s.queue = commands.NewQueueUseCase(s.store, s.allocator, queue.FIFOScorer{}, s.abuse, s.clock, s.policy)
	s.holds = commands.NewHoldUseCase(s.store, factory, s.clock, s.policy)
	s.finalizer = commands.NewPurchaseFinalizer(s.store, s.allocator, s.clock)
	s.sweeper = commands.NewExpirySweeper(s.store, s.allocator, s.clock, 100, 2)
	s.auditor = commands.NewInventoryAuditor(s.store.Reads())
}

// SetupSubTest rewinds the clock; categories created by earlier subtests stay.
func (s *storeSuite) SetupSubTest() {
	s.clock.Set(startTime)
}

func (s *storeSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *storeSuite) createCategory(b *builder.CategoryBuilder) uuid.UUID {
	cat := b.Build()
	s.Require().NoError(s.store.Catalog().Create(s.ctx, cat))
	return cat.ID()
}

func (s *storeSuite) join(categoryID uuid.UUID, qty int) (*commands.JoinQueueResult, uuid.UUID) {
	userID := uuid.New()
	result, err := s.queue.JoinQueue(s.ctx, commands.JoinQueueInput{
		CategoryID:        categoryID,
		UserID:            userID,
		RequestedQuantity: qty,
		Contact:           queue.Contact{Email: "buyer@example.com"},
		ClientIP:          "203.0.113.7",
	})
	s.Require().NoError(err)
	return result, userID
}

func (s *storeSuite) category(id uuid.UUID) *category.Category {
	cat, err := s.store.Reads().CategoryByID(s.ctx, id)
	s.Require().NoError(err)
	return cat
}

func (s *storeSuite) entry(id uuid.UUID) *queue.Entry {
	e, err := s.store.Reads().EntryByID(s.ctx, id)
	s.Require().NoError(err)
	return e
}

func (s *storeSuite) reservation(id uuid.UUID) *reservation.Reservation {
	res, err := s.store.Reads().ReservationByID(s.ctx, id)
	s.Require().NoError(err)
	return res
}

func (s *storeSuite) assertErrIs(err, target error) bool {
	return s.Truef(errs.Is(err, target), "error %v is not %v", err, target)
}

func (s *storeSuite) requireErrIs(err, target error) {
	if !s.assertErrIs(err, target) {
		s.FailNow("unexpected error")
	}
}

// assertConsistent checks sold+reserved <= total and reserved == sum of active holds.
func (s *storeSuite) assertConsistent() {
	violations, err := s.auditor.Audit(s.ctx)
	s.Require().NoError(err)
	s.Empty(violations)
}
