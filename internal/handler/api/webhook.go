package api

import (
	"log/slog"
	"net/http"

	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	"ticket-allocator/internal/handler/httperr"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentWebhookHandler struct {
	finalizer commands.PurchaseFinalizer
}

func NewPaymentWebhookHandler(finalizer commands.PurchaseFinalizer) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{finalizer: finalizer}
}

// @Summary Payment outcome webhook
// @Description Applies a payment result to a reservation. Redeliveries are answered with already_processed.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared secret"
// @Param request body reqdto.PaymentWebhookRequest true "Payment outcome"
// @Success 200 {object} resdto.PaymentWebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /webhooks/payments [post]
func (h *PaymentWebhookHandler) HandlePayment(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.finalizer.HandlePaymentOutcome(c.Request.Context(), req.ReservationID, commands.PaymentOutcome(req.Outcome))
	if err != nil {
		if errs.Is(err, errs.ErrReservationNoLongerValid) {
			slog.Warn("Duplicate or stale payment webhook", "reservation_id", req.ReservationID, "outcome", req.Outcome)
			c.JSON(http.StatusOK, resdto.PaymentWebhookResponse{Status: "already_processed", ReservationID: req.ReservationID})
			return
		}
		httperr.AbortWithDomainError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentWebhookResponse{Status: result.Status.String(), ReservationID: result.ReservationID})
}
