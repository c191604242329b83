//go:build unit

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ticket-allocator/internal/domain/auth"
	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
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

type AdminHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCatalog   *commandsmock.MockCatalogCommands
	mockAllocator *commandsmock.MockAllocator
	mockHolds     *commandsmock.MockHoldCommands
	mockQueue     *commandsmock.MockQueueCommands
	mockQueries   *queriesmock.MockQueueQueries
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = commandsmock.NewMockCatalogCommands(s.mockCtrl)
	s.mockAllocator = commandsmock.NewMockAllocator(s.mockCtrl)
	s.mockHolds = commandsmock.NewMockHoldCommands(s.mockCtrl)
	s.mockQueue = commandsmock.NewMockQueueCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockQueueQueries(s.mockCtrl)

	h := api.NewAdminHandler(s.mockCatalog, s.mockAllocator, s.mockHolds, s.mockQueue, s.mockQueries)
	s.router.Use(withPrincipal(auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}))
	s.router.POST("/admin/categories", h.CreateCategory)
	s.router.POST("/admin/categories/:id/deactivate", h.DeactivateCategory)
	s.router.POST("/admin/categories/:id/allocate", h.Allocate)
	s.router.POST("/admin/categories/:id/holds", h.Hold)
	s.router.DELETE("/admin/queue-entries/:id", h.RemoveEntry)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func categoryView(c *category.Category) *queries.CategoryView {
	inv := c.Inventory()
	return &queries.CategoryView{
		ID:          c.ID(),
		EventID:     c.EventID(),
		Name:        c.Name(),
		PriceCents:  c.PriceCents(),
		Total:       inv.Total,
		Sold:        inv.Sold,
		Reserved:    inv.Reserved,
		Available:   inv.Available(),
		MinPerOrder: c.MinPerOrder(),
		MaxPerOrder: c.MaxPerOrder(),
		IsActive:    c.IsActive(),
		OnSale:      c.IsActive(),
	}
}

func (s *AdminHandlerTestSuite) TestCreateCategory() {
	url := "/admin/categories"
	reqBody := reqdto.CreateCategoryRequest{
		EventID:       uuid.New(),
		Name:          "  Floor  ",
		PriceCents:    7500,
		TotalQuantity: 100,
		MinPerOrder:   1,
		MaxPerOrder:   4,
	}

	s.Run("success: returns 201 with the new category", func() {
		cat := builder.NewCategoryBuilder().WithName("Floor").WithInventory(100, 0, 0).Build()

		s.mockCatalog.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateCategoryInput) (*category.Category, error) {
				s.Equal("Floor", in.Name)
				s.Equal(100, in.Total)
				s.Equal(int64(7500), in.PriceCents)
				return cat, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetCategory(gomock.Any(), cat.ID()).Return(categoryView(cat), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var out resdto.CategoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &out)
		s.Equal(cat.ID(), out.ID)
		s.Equal(100, out.Available)
	})

	s.Run("error: 422 when the catalog rejects the category", func() {
		s.mockCatalog.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidCategory).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "INVALID_CATEGORY")
	})
}

func (s *AdminHandlerTestSuite) TestDeactivateCategory() {
	cat := builder.NewCategoryBuilder().Inactive().Build()
	url := fmt.Sprintf("/admin/categories/%s/deactivate", cat.ID())

	s.Run("success: returns the inactive category", func() {
		s.mockCatalog.EXPECT().DeactivateCategory(gomock.Any(), cat.ID()).Return(cat, nil).Times(1)
		s.mockQueries.EXPECT().GetCategory(gomock.Any(), cat.ID()).Return(categoryView(cat), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var out resdto.CategoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.False(out.IsActive)
	})

	s.Run("error: 404 for an unknown category", func() {
		s.mockCatalog.EXPECT().DeactivateCategory(gomock.Any(), cat.ID()).Return(nil, errs.ErrCategoryNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "CATEGORY_NOT_FOUND")
	})
}

func (s *AdminHandlerTestSuite) TestAllocate() {
	categoryID := uuid.New()
	url := fmt.Sprintf("/admin/categories/%s/allocate", categoryID)

	s.Run("success: reports the pass summary", func() {
		offered := []*queue.Entry{builder.NewEntryBuilder().Build(), builder.NewEntryBuilder().Build()}
		s.mockAllocator.EXPECT().AllocateCategory(gomock.Any(), categoryID).
			Return(&commands.AllocationResult{CategoryID: categoryID, Available: 5, Offered: offered, Skipped: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var out resdto.AllocationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal(resdto.AllocationResponse{CategoryID: categoryID, Available: 5, Offered: 2, Skipped: 1}, out)
	})
}

func (s *AdminHandlerTestSuite) TestHold() {
	categoryID := uuid.New()
	url := fmt.Sprintf("/admin/categories/%s/holds", categoryID)

	s.Run("success: creates an admin hold with the requested ttl", func() {
		res := builder.NewReservationBuilder().WithCategoryID(categoryID).
			With(func(b *builder.ReservationBuilder) { b.Source = reservation.SourceAdminHold; b.UserID = nil }).Build()

		s.mockHolds.EXPECT().HoldTickets(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.HoldTicketsInput) (*reservation.Reservation, error) {
				s.Equal(reservation.SourceAdminHold, in.Source)
				s.Equal(30*time.Minute, in.TTL)
				s.Nil(in.UserID)
				return res, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.AdminHoldRequest{Quantity: 3, TTLMinutes: 30}, "token")

		var out resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &out)
		s.Equal("admin_hold", out.Source)
	})
}

func (s *AdminHandlerTestSuite) TestRemoveEntry() {
	entryID := uuid.New()
	url := fmt.Sprintf("/admin/queue-entries/%s", entryID)

	s.Run("success: returns the removed entry", func() {
		entry := builder.NewEntryBuilder().With(func(b *builder.EntryBuilder) { b.ID = entryID }).
			WithStatus(queue.StatusRemoved).Build()
		s.mockQueue.EXPECT().RemoveEntry(gomock.Any(), entryID).Return(entry, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")

		var out resdto.QueueEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal("removed", out.Status)
	})

	s.Run("error: 409 when the entry is already terminal", func() {
		s.mockQueue.EXPECT().RemoveEntry(gomock.Any(), entryID).Return(nil, errs.ErrInvalidEntryState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "INVALID_ENTRY_STATE")
	})
}
