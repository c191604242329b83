package api

import (
	"net/http"

	"ticket-allocator/internal/domain/reservation"
	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	"ticket-allocator/internal/handler/httperr"
	"ticket-allocator/internal/handler/middleware"
	"ticket-allocator/internal/usecase/commands"
	"ticket-allocator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	queueCmds commands.QueueCommands
	holds     commands.HoldCommands
	q         queries.QueueQueries
}

func NewReservationHandler(queueCmds commands.QueueCommands, holds commands.HoldCommands, q queries.QueueQueries) *ReservationHandler {
	return &ReservationHandler{
		queueCmds: queueCmds,
		holds:     holds,
		q:         q,
	}
}

// @Summary Hold tickets
// @Description Reserve tickets directly while the category has free inventory and nobody waiting
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body reqdto.HoldTicketsRequest true "Hold request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /categories/{id}/holds [post]
func (h *ReservationHandler) Hold(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.HoldTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.holds.HoldTickets(c.Request.Context(), commands.HoldTicketsInput{
		CategoryID: categoryID,
		UserID:     &userID,
		SessionID:  req.SessionID,
		Quantity:   req.Quantity,
		Source:     reservation.SourceDirectPurchase,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(queries.NewReservationView(res)))
}

// @Summary Get reservation
// @Description Get a reservation owned by the caller
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}

	view, err := h.q.GetReservation(c.Request.Context(), principal, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Begin purchase
// @Description Start checkout for an offer; the hold is extended to the purchase timeout
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /reservations/{id}/purchase [post]
func (h *ReservationHandler) BeginPurchase(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}

	res, err := h.queueCmds.BeginPurchase(c.Request.Context(), id, userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(queries.NewReservationView(res)))
}

// @Summary Release offer
// @Description Give back a held offer so the next buyer in line can be served
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /reservations/{id}/release [post]
func (h *ReservationHandler) Release(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}

	if err := h.queueCmds.ReleaseOffer(c.Request.Context(), id, userID); err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}
