package api

import (
	"net/http"

	"ticket-allocator/internal/domain/reservation"
	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	"ticket-allocator/internal/handler/httperr"
	"ticket-allocator/internal/usecase/commands"
	"ticket-allocator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves operator endpoints. Routes are guarded by role middleware.
type AdminHandler struct {
	catalog   commands.CatalogCommands
	allocator commands.Allocator
	holds     commands.HoldCommands
	queueCmds commands.QueueCommands
	q         queries.QueueQueries
}

func NewAdminHandler(
	catalog commands.CatalogCommands,
	allocator commands.Allocator,
	holds commands.HoldCommands,
	queueCmds commands.QueueCommands,
	q queries.QueueQueries,
) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		allocator: allocator,
		holds:     holds,
		queueCmds: queueCmds,
		q:         q,
	}
}

// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCategoryRequest true "Category"
// @Success 201 {object} resdto.CategoryResponse
// @Failure 422 {object} httperr.Response
// @Router /admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req reqdto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	cat, err := h.catalog.CreateCategory(c.Request.Context(), commands.CreateCategoryInput{
		EventID:     req.EventID,
		Name:        req.TrimmedName(),
		PriceCents:  req.PriceCents,
		Total:       req.TotalQuantity,
		MinPerOrder: req.MinPerOrder,
		MaxPerOrder: req.MaxPerOrder,
		SaleStart:   req.SaleStart,
		SaleEnd:     req.SaleEnd,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}

	view, err := h.q.GetCategory(c.Request.Context(), cat.ID())
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCategoryView(view))
}

// @Summary Deactivate category
// @Description Stop sales for a category. Existing holds run to completion.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} resdto.CategoryResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/categories/{id}/deactivate [post]
func (h *AdminHandler) DeactivateCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.catalog.DeactivateCategory(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	view, err := h.q.GetCategory(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryView(view))
}

// @Summary Run allocator
// @Description Run one allocation pass for the category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} resdto.AllocationResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/categories/{id}/allocate [post]
func (h *AdminHandler) Allocate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.allocator.AllocateCategory(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AllocationResponse{
		CategoryID: result.CategoryID,
		Available:  result.Available,
		Offered:    len(result.Offered),
		Skipped:    result.Skipped,
	})
}

// @Summary Admin hold
// @Description Hold inventory for an operator, bypassing the sale window and the queue
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body reqdto.AdminHoldRequest true "Hold"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 409 {object} httperr.Response
// @Router /admin/categories/{id}/holds [post]
func (h *AdminHandler) Hold(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AdminHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.holds.HoldTickets(c.Request.Context(), commands.HoldTicketsInput{
		CategoryID: id,
		UserID:     req.UserID,
		Quantity:   req.Quantity,
		Source:     reservation.SourceAdminHold,
		TTL:        req.TTL(),
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(queries.NewReservationView(res)))
}

// @Summary Remove queue entry
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Queue entry ID"
// @Success 200 {object} resdto.QueueEntryResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/queue-entries/{id} [delete]
func (h *AdminHandler) RemoveEntry(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.queueCmds.RemoveEntry(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQueueEntryView(queries.NewQueueEntryView(entry, 0)))
}
