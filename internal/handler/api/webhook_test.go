//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/handler/api"
	reqdto "ticket-allocator/internal/handler/dto/request"
	resdto "ticket-allocator/internal/handler/dto/response"
	commandsmock "ticket-allocator/internal/mock/commandsmock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/testutil"
	"ticket-allocator/internal/testutil/httptest"
	"ticket-allocator/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockFinalizer *commandsmock.MockPurchaseFinalizer
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockFinalizer = commandsmock.NewMockPurchaseFinalizer(s.mockCtrl)
	s.router.POST("/webhooks/payments", api.NewPaymentWebhookHandler(s.mockFinalizer).HandlePayment)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestHandlePayment() {
	url := "/webhooks/payments"
	resID := uuid.New()

	s.Run("success: payment success converts the reservation", func() {
		s.mockFinalizer.EXPECT().HandlePaymentOutcome(gomock.Any(), resID, commands.PaymentSucceeded).
			Return(&commands.FinalizeResult{ReservationID: resID, Status: reservation.StatusConverted, Quantity: 2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.PaymentWebhookRequest{ReservationID: resID, Outcome: "success"}, "")

		var out resdto.PaymentWebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal("converted", out.Status)
		s.Equal(resID, out.ReservationID)
	})

	s.Run("success: payment failure releases the reservation", func() {
		s.mockFinalizer.EXPECT().HandlePaymentOutcome(gomock.Any(), resID, commands.PaymentFailed).
			Return(&commands.FinalizeResult{ReservationID: resID, Status: reservation.StatusReleased}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.PaymentWebhookRequest{ReservationID: resID, Outcome: "failure"}, "")

		var out resdto.PaymentWebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal("released", out.Status)
	})

	s.Run("success: a redelivery is acknowledged without error", func() {
		s.mockFinalizer.EXPECT().HandlePaymentOutcome(gomock.Any(), resID, commands.PaymentSucceeded).
			Return(nil, errs.Wrap(errs.ErrReservationNoLongerValid, "reservation already converted")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.PaymentWebhookRequest{ReservationID: resID, Outcome: "success"}, "")

		var out resdto.PaymentWebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal("already_processed", out.Status)
	})

	s.Run("error: 404 for an unknown reservation", func() {
		s.mockFinalizer.EXPECT().HandlePaymentOutcome(gomock.Any(), resID, commands.PaymentSucceeded).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.PaymentWebhookRequest{ReservationID: resID, Outcome: "success"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		reqBody := reqdto.PaymentWebhookRequest{ReservationID: resID, Outcome: "success"}
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"unknown outcome", testutil.Field("outcome", "refunded")},
			{"missing outcome", testutil.Field("outcome", nil)},
			{"missing reservation id", testutil.Field("reservation_id", nil)},
			{"malformed reservation id", testutil.Field("reservation_id", "nope")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}
