package api

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"ntzs-issuer/internal/infra/zenopay"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives payment completion callbacks from ZenoPay. The
// provider authenticates itself with the shared secret in the x-api-key
// header; there is no user session on this path.
type WebhookHandler struct {
	confirmation commands.ConfirmationCommands
	secret       string
}

func NewWebhookHandler(confirmation commands.ConfirmationCommands, cfg config.ZenoPayConfig) *WebhookHandler {
	return &WebhookHandler{
		confirmation: confirmation,
		secret:       cfg.WebhookSecret,
	}
}

// @Summary Payment webhook
// @Description Callback endpoint for the mobile money provider
// @Tags webhooks
// @Accept json
// @Produce json
// @Param x-api-key header string true "Shared webhook secret"
// @Param payload body zenopay.WebhookPayload true "Webhook payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks/zenopay [post]
func (h *WebhookHandler) HandleZenoPay(c *gin.Context) {
	key := c.GetHeader("x-api-key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook credentials"})
		return
	}

	var payload zenopay.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	// Non-completed notifications are acknowledged and dropped; the
	// reconciliation sweep owns every other state.
	if zenopay.PaymentStatus(payload.PaymentStatus) != zenopay.PaymentCompleted {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	err := h.confirmation.ConfirmFiatPayment(c.Request.Context(), payload.OrderID, payload.Reference)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotFound) {
			// Unknown orders are acknowledged so the provider stops retrying.
			slog.Warn("webhook for unknown order", "order_id", payload.OrderID)
			c.JSON(http.StatusOK, gin.H{"status": "unknown_order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
