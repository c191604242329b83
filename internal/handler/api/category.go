package api

import (
	"net/http"

	resdto "ticket-allocator/internal/handler/dto/response"
	"ticket-allocator/internal/handler/httperr"
	"ticket-allocator/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	q queries.QueueQueries
}

func NewCategoryHandler(q queries.QueueQueries) *CategoryHandler {
	return &CategoryHandler{q: q}
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} resdto.CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	views, err := h.q.ListCategories(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryViews(views))
}

// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} resdto.CategoryResponse
// @Failure 404 {object} httperr.Response
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetCategory(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryView(view))
}
