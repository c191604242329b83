package api

import (
	"errors"
	"net/http"

	"ticket-allocator/internal/domain/queue"
	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	"ticket-allocator/internal/handler/httperr"
	"ticket-allocator/internal/handler/middleware"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/pkg/patch"
	"ticket-allocator/internal/usecase/commands"
	"ticket-allocator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QueueHandler struct {
	cmds commands.QueueCommands
	q    queries.QueueQueries
}

func NewQueueHandler(cmds commands.QueueCommands, q queries.QueueQueries) *QueueHandler {
	return &QueueHandler{cmds: cmds, q: q}
}

// @Summary Join queue
// @Description Join the waiting list of a ticket category
// @Tags queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body reqdto.JoinQueueRequest true "Join queue request"
// @Success 201 {object} resdto.QueueEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /categories/{id}/queue [post]
func (h *QueueHandler) Join(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}
	var req reqdto.JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.JoinQueue(c.Request.Context(), commands.JoinQueueInput{
		CategoryID:        categoryID,
		UserID:            principal.UserID,
		RequestedQuantity: req.Quantity,
		Contact: queue.Contact{
			Email: patch.Coalesce(req.Email, principal.Email),
			Phone: patch.Coalesce(req.Phone, principal.Phone),
		},
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		var dup *commands.DuplicateQueueEntryError
		if errors.As(err, &dup) {
			httperr.AbortWithDomainError(c, err, resdto.DuplicateEntryDetail{
				EntryID:  dup.Existing.ID(),
				Position: dup.Existing.Position(),
				Status:   dup.Existing.Status().String(),
			})
			return
		}
		httperr.AbortWithDomainError(c, err, nil)
		return
	}

	view, err := h.q.GetQueuePosition(c.Request.Context(), categoryID, principal.UserID)
	if err != nil {
		// The join committed; answer with what the command returned.
		view = queries.NewQueueEntryView(result.Entry, 0)
	}
	c.JSON(http.StatusCreated, resdto.FromQueueEntryView(view))
}

// @Summary Get queue position
// @Description Get the caller's queue entry and how many entries are ahead
// @Tags queue
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} resdto.QueueEntryResponse
// @Failure 404 {object} httperr.Response
// @Router /categories/{id}/queue/me [get]
func (h *QueueHandler) Position(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}

	view, err := h.q.GetQueuePosition(c.Request.Context(), categoryID, userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQueueEntryView(view))
}

// @Summary Leave queue
// @Description Cancel a waiting entry or decline a held offer
// @Tags queue
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} resdto.QueueEntryResponse
// @Failure 404 {object} httperr.Response
// @Router /categories/{id}/queue/me [delete]
func (h *QueueHandler) Leave(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}

	entry, err := h.cmds.LeaveQueue(c.Request.Context(), categoryID, userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQueueEntryView(queries.NewQueueEntryView(entry, 0)))
}

var errMissingPrincipal = errs.New("no authenticated principal in context")

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
