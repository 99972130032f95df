//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"ntzs-issuer/internal/handler/api"
	"ntzs-issuer/internal/infra/zenopay"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/tests/common/httptest"
	commandsmock "ntzs-issuer/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const webhookSecret = "test-webhook-secret"

type WebhookHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockConfirmation *commandsmock.MockConfirmationCommands
	handler          *api.WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockConfirmation = commandsmock.NewMockConfirmationCommands(s.mockCtrl)
	s.handler = api.NewWebhookHandler(s.mockConfirmation, config.ZenoPayConfig{WebhookSecret: webhookSecret})

	s.router.POST("/webhooks/zenopay", s.handler.HandleZenoPay)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestHandleZenoPay() {
	url := "/webhooks/zenopay"
	secretHeader := map[string]string{"x-api-key": webhookSecret}

	completed := zenopay.WebhookPayload{
		OrderID:       "order-123",
		PaymentStatus: "COMPLETED",
		Reference:     "REF-999",
	}

	s.Run("success: confirms a completed payment", func() {
		s.mockConfirmation.EXPECT().ConfirmFiatPayment(gomock.Any(), "order-123", "REF-999").
			Return(nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, completed, "", secretHeader)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ok", body["status"])
	})

	s.Run("success: repeated delivery is acknowledged again", func() {
		s.mockConfirmation.EXPECT().ConfirmFiatPayment(gomock.Any(), "order-123", "REF-999").
			Return(nil).Times(2)

		for range 2 {
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, completed, "", secretHeader)
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}
	})

	s.Run("success: non-completed statuses are ignored without a confirmation call", func() {
		pending := completed
		pending.PaymentStatus = "PENDING"

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, pending, "", secretHeader)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ignored", body["status"])
	})

	s.Run("success: unknown orders are acknowledged so the provider stops retrying", func() {
		s.mockConfirmation.EXPECT().ConfirmFiatPayment(gomock.Any(), "order-123", "REF-999").
			Return(commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, completed, "", secretHeader)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("unknown_order", body["status"])
	})

	s.Run("error: 401 Unauthorized for a wrong secret", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, completed, "",
			map[string]string{"x-api-key": "wrong-secret"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook credentials")
	})

	s.Run("error: 401 Unauthorized for a missing secret", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, completed, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook credentials")
	})

	s.Run("error: 400 Bad Request for a malformed payload", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, "not-json-object", "", secretHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid payload")
	})

	s.Run("error: 500 Internal Server Error when confirmation fails", func() {
		s.mockConfirmation.EXPECT().ConfirmFiatPayment(gomock.Any(), "order-123", "REF-999").
			Return(errors.New("database error")).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, completed, "", secretHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
