package httperr

import (
	"net/http"

	"ticket-allocator/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = codeFor(err)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// Order matters: the first matching sentinel wins.
var mappings = []mapping{
	{errs.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Ticket category not found"},
	{errs.ErrQueueEntryNotFound, http.StatusNotFound, "QUEUE_ENTRY_NOT_FOUND", "Queue entry not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{errs.ErrReservationNotOwned, http.StatusForbidden, "RESERVATION_NOT_OWNED", "Reservation belongs to another user"},
	{errs.ErrInvalidQuantity, http.StatusUnprocessableEntity, "INVALID_QUANTITY", "Quantity is outside the allowed per-order range"},
	{errs.ErrInvalidCategory, http.StatusUnprocessableEntity, "INVALID_CATEGORY", "Invalid ticket category"},
	{errs.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"},
	{errs.ErrCategoryNotOnSale, http.StatusConflict, "NOT_ON_SALE", "Tickets are not on sale"},
	{errs.ErrInsufficientInventory, http.StatusConflict, "SOLD_OUT", "Sold out, join the queue"},
	{errs.ErrDuplicateQueueEntry, http.StatusConflict, "ALREADY_IN_QUEUE", "You are already in the queue"},
	{errs.ErrQueueFull, http.StatusConflict, "QUEUE_FULL", "The queue is full"},
	{errs.ErrInvalidEntryState, http.StatusConflict, "INVALID_ENTRY_STATE", "Queue entry cannot change state"},
	{errs.ErrReservationNoLongerValid, http.StatusGone, "OFFER_EXPIRED", "Offer expired, rejoin the queue"},
}

func codeFor(err error) string {
	for _, m := range mappings {
		if errs.Is(err, m.sentinel) {
			return m.code
		}
	}
	return ""
}

// AbortWithDomainError picks the status and message from the sentinel the
// error carries. Unknown errors become 500.
func AbortWithDomainError(c *gin.Context, err error, detail any) {
	for _, m := range mappings {
		if errs.Is(err, m.sentinel) {
			AbortWithError(c, m.status, err, m.message, detail)
			return
		}
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
