//go:build unit

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/handler/api"
	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	commandsmock "ticket-allocator/internal/mock/commandsmock"
	queriesmock "ticket-allocator/internal/mock/queriesmock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/testutil/builder"
	"ticket-allocator/internal/testutil/httptest"
	"ticket-allocator/internal/usecase/commands"
	"ticket-allocator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueue   *commandsmock.MockQueueCommands
	mockHolds   *commandsmock.MockHoldCommands
	mockQueries *queriesmock.MockQueueQueries
	principal   auth.Principal
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueue = commandsmock.NewMockQueueCommands(s.mockCtrl)
	s.mockHolds = commandsmock.NewMockHoldCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockQueueQueries(s.mockCtrl)
	s.principal = auth.Principal{UserID: uuid.New(), Role: auth.RoleBuyer}

	h := api.NewReservationHandler(s.mockQueue, s.mockHolds, s.mockQueries)
	s.router.Use(withPrincipal(s.principal))
	s.router.POST("/categories/:id/holds", h.Hold)
	s.router.GET("/reservations/:id", h.Get)
	s.router.POST("/reservations/:id/purchase", h.BeginPurchase)
	s.router.POST("/reservations/:id/release", h.Release)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestHold() {
	categoryID := uuid.New()
	url := fmt.Sprintf("/categories/%s/holds", categoryID)

	s.Run("success: creates a direct-purchase hold for the caller", func() {
		res := builder.NewReservationBuilder().WithCategoryID(categoryID).WithUserID(&s.principal.UserID).Build()

		s.mockHolds.EXPECT().HoldTickets(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.HoldTicketsInput) (*reservation.Reservation, error) {
				s.Equal(categoryID, in.CategoryID)
				s.Require().NotNil(in.UserID)
				s.Equal(s.principal.UserID, *in.UserID)
				s.Equal("sess-1", in.SessionID)
				s.Equal(2, in.Quantity)
				s.Equal(reservation.SourceDirectPurchase, in.Source)
				return res, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.HoldTicketsRequest{Quantity: 2, SessionID: "sess-1"}, "token")

		var out resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &out)
		s.Equal(res.ID(), out.ID)
		s.Equal("direct_purchase", out.Source)
		s.Equal("active", out.Status)
		s.Equal(int64(10000), out.PriceLockedCents)
	})

	s.Run("error: 409 SOLD_OUT when the queue has priority", func() {
		s.mockHolds.EXPECT().HoldTickets(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInsufficientInventory).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.HoldTicketsRequest{Quantity: 1}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "SOLD_OUT")
	})

	s.Run("error: 400 on zero quantity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.HoldTicketsRequest{Quantity: 0}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	res := builder.NewReservationBuilder().WithUserID(&s.principal.UserID).Build()
	url := fmt.Sprintf("/reservations/%s", res.ID())

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().GetReservation(gomock.Any(), s.principal, res.ID()).
			Return(queries.NewReservationView(res), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var out resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal(res.ID(), out.ID)
		s.Equal(2, out.Quantity)
	})

	s.Run("error: 404 for someone else's reservation", func() {
		s.mockQueries.EXPECT().GetReservation(gomock.Any(), s.principal, res.ID()).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

func (s *ReservationHandlerTestSuite) TestBeginPurchase() {
	resID := uuid.New()
	url := fmt.Sprintf("/reservations/%s/purchase", resID)

	s.Run("success: returns the extended hold", func() {
		res := builder.NewReservationBuilder().ForQueueEntry(uuid.New()).Build()
		s.mockQueue.EXPECT().BeginPurchase(gomock.Any(), resID, s.principal.UserID).Return(res, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var out resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.True(res.ExpiresAt().Equal(out.ExpiresAt))
		s.NotNil(out.WaitingListID)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{"not owner", errs.ErrReservationNotOwned, http.StatusForbidden, "RESERVATION_NOT_OWNED"},
			{"expired offer", errs.ErrReservationNoLongerValid, http.StatusGone, "OFFER_EXPIRED"},
			{"unknown reservation", errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueue.EXPECT().BeginPurchase(gomock.Any(), resID, s.principal.UserID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestRelease() {
	resID := uuid.New()
	url := fmt.Sprintf("/reservations/%s/release", resID)

	s.Run("success: returns 204 No Content", func() {
		s.mockQueue.EXPECT().ReleaseOffer(gomock.Any(), resID, s.principal.UserID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 410 when the offer already lapsed", func() {
		s.mockQueue.EXPECT().ReleaseOffer(gomock.Any(), resID, s.principal.UserID).
			Return(errs.ErrReservationNoLongerValid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusGone, "OFFER_EXPIRED")
	})
}
