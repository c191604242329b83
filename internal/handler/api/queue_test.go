//go:build unit

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/handler/api"
	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	commandsmock "ticket-allocator/internal/mock/commandsmock"
	queriesmock "ticket-allocator/internal/mock/queriesmock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/testutil"
	"ticket-allocator/internal/testutil/builder"
	"ticket-allocator/internal/testutil/httptest"
	"ticket-allocator/internal/usecase/commands"
	"ticket-allocator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// withPrincipal stands in for the auth middleware.
func withPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("principal", p)
		}
		c.Next()
	}
}

type QueueHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockQueueCommands
	mockQueries  *queriesmock.MockQueueQueries
	principal    auth.Principal
}

func (s *QueueHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockQueueCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockQueueQueries(s.mockCtrl)
	s.principal = auth.Principal{UserID: uuid.New(), Role: auth.RoleBuyer, Email: "token@example.com"}

	h := api.NewQueueHandler(s.mockCommands, s.mockQueries)
	g := s.router.Group("/categories/:id", withPrincipal(s.principal))
	g.POST("/queue", h.Join)
	g.GET("/queue/me", h.Position)
	g.DELETE("/queue/me", h.Leave)
}

func (s *QueueHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQueueHandlerSuite(t *testing.T) {
	suite.Run(t, new(QueueHandlerTestSuite))
}

type testCaseQueue struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *QueueHandlerTestSuite) TestJoin() {
	categoryID := uuid.New()
	url := fmt.Sprintf("/categories/%s/queue", categoryID)
	reqBody := reqdto.JoinQueueRequest{Quantity: 2}

	s.Run("success: returns 201 with the caller's position", func() {
		entry := builder.NewEntryBuilder().WithCategoryID(categoryID).WithUserID(s.principal.UserID).WithPosition(7).Build()

		s.mockCommands.EXPECT().JoinQueue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.JoinQueueInput) (*commands.JoinQueueResult, error) {
				s.Equal(categoryID, in.CategoryID)
				s.Equal(s.principal.UserID, in.UserID)
				s.Equal(2, in.RequestedQuantity)
				s.Equal("token@example.com", in.Contact.Email, "falls back to the token contact")
				s.NotEmpty(in.ClientIP)
				return &commands.JoinQueueResult{Entry: entry}, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetQueuePosition(gomock.Any(), categoryID, s.principal.UserID).
			Return(queries.NewQueueEntryView(entry, 3), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var res resdto.QueueEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(entry.ID(), res.ID)
		s.Equal(int64(7), res.Position)
		s.Equal(3, res.Ahead)
		s.Equal("waiting", res.Status)
	})

	s.Run("success: contact in the body overrides the token", func() {
		email := "body@example.com"
		entry := builder.NewEntryBuilder().WithCategoryID(categoryID).Build()

		s.mockCommands.EXPECT().JoinQueue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.JoinQueueInput) (*commands.JoinQueueResult, error) {
				s.Equal(email, in.Contact.Email)
				return &commands.JoinQueueResult{Entry: entry}, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetQueuePosition(gomock.Any(), categoryID, s.principal.UserID).
			Return(queries.NewQueueEntryView(entry, 0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.JoinQueueRequest{Quantity: 1, Email: &email}, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseQueue{
			{name: "quantity zero", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
			{name: "quantity missing", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
			{name: "quantity negative", mutate: testutil.Field("quantity", -1), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 400 on malformed category id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/categories/not-a-uuid/queue", reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 without a principal", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: duplicate join carries the existing entry", func() {
		existing := builder.NewEntryBuilder().WithCategoryID(categoryID).WithPosition(4).Build()
		dupErr := errs.Mark(&commands.DuplicateQueueEntryError{Existing: existing}, errs.ErrDuplicateQueueEntry)

		s.mockCommands.EXPECT().JoinQueue(gomock.Any(), gomock.Any()).Return(nil, dupErr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "ALREADY_IN_QUEUE")

		var detail resdto.DuplicateEntryDetail
		httptest.ErrorDetail(s.T(), rec, &detail)
		s.Equal(existing.ID(), detail.EntryID)
		s.Equal(int64(4), detail.Position)
		s.Equal("waiting", detail.Status)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{"category not found", errs.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
			{"not on sale", errs.ErrCategoryNotOnSale, http.StatusConflict, "NOT_ON_SALE"},
			{"queue full", errs.ErrQueueFull, http.StatusConflict, "QUEUE_FULL"},
			{"quantity out of range", errs.ErrInvalidQuantity, http.StatusUnprocessableEntity, "INVALID_QUANTITY"},
			{"internal server error", errors.New("database error"), http.StatusInternalServerError, ""},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().JoinQueue(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

func (s *QueueHandlerTestSuite) TestPosition() {
	categoryID := uuid.New()
	url := fmt.Sprintf("/categories/%s/queue/me", categoryID)

	s.Run("success: returns the offered entry", func() {
		resID := uuid.New()
		entry := builder.NewEntryBuilder().WithCategoryID(categoryID).
			Offered(2, resID, time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)).Build()
		s.mockQueries.EXPECT().GetQueuePosition(gomock.Any(), categoryID, s.principal.UserID).
			Return(queries.NewQueueEntryView(entry, 0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var res resdto.QueueEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("offered", res.Status)
		s.Require().NotNil(res.ReservationID)
		s.Equal(resID, *res.ReservationID)
		s.Equal(2, res.OfferedQuantity)
	})

	s.Run("error: 404 when the caller never joined", func() {
		s.mockQueries.EXPECT().GetQueuePosition(gomock.Any(), categoryID, s.principal.UserID).
			Return(nil, errs.ErrQueueEntryNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "QUEUE_ENTRY_NOT_FOUND")
	})
}

func (s *QueueHandlerTestSuite) TestLeave() {
	categoryID := uuid.New()
	url := fmt.Sprintf("/categories/%s/queue/me", categoryID)

	s.Run("success: returns the cancelled entry", func() {
		entry := builder.NewEntryBuilder().WithCategoryID(categoryID).WithStatus(queue.StatusCancelled).Build()
		s.mockCommands.EXPECT().LeaveQueue(gomock.Any(), categoryID, s.principal.UserID).
			Return(entry, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")

		var res resdto.QueueEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("cancelled", res.Status)
	})

	s.Run("error: 409 when the entry already finished", func() {
		s.mockCommands.EXPECT().LeaveQueue(gomock.Any(), categoryID, s.principal.UserID).
			Return(nil, errs.ErrInvalidEntryState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "INVALID_ENTRY_STATE")
	})
}
