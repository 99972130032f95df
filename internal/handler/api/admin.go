package api

import (
	"errors"
	"net/http"

	reqdto "ntzs-issuer/internal/handler/dto/request"
	resdto "ntzs-issuer/internal/handler/dto/response"
	"ntzs-issuer/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminCommands commands.AdminCommands
	safeCommands  commands.SafeMintCommands
	mintCommands  commands.MintCommands
}

func NewAdminHandler(
	adminCommands commands.AdminCommands,
	safeCommands commands.SafeMintCommands,
	mintCommands commands.MintCommands,
) *AdminHandler {
	return &AdminHandler{
		adminCommands: adminCommands,
		safeCommands:  safeCommands,
		mintCommands:  mintCommands,
	}
}

// @Summary Approve bank transfer
// @Description Record the compliance approval for a bank transfer deposit
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/deposits/{id}/approve [post]
func (h *AdminHandler) ApproveBankTransfer(c *gin.Context) {
	id, ok := parseDepositID(c)
	if !ok {
		return
	}

	if err := h.adminCommands.ApproveBankTransfer(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrNotApprovable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit is not awaiting bank approval"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reject deposit
// @Description Take an unconfirmed deposit out of the pipeline
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Param request body reqdto.RejectDepositRequest true "Rejection reason"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/deposits/{id}/reject [post]
func (h *AdminHandler) RejectDeposit(c *gin.Context) {
	id, ok := parseDepositID(c)
	if !ok {
		return
	}

	var req reqdto.RejectDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.adminCommands.RejectDeposit(c.Request.Context(), id, req.Reason); err != nil {
		if errors.Is(err, commands.ErrNotRejectable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit can no longer be rejected"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Retry failed mint
// @Description Requeue a deposit whose mint attempt failed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/deposits/{id}/retry-mint [post]
func (h *AdminHandler) RetryMint(c *gin.Context) {
	id, ok := parseDepositID(c)
	if !ok {
		return
	}

	if err := h.adminCommands.RetryMint(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrNotRetryable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit is not in a retryable state"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Verify payment manually
// @Description Poll the provider for the deposit's payment state and advance it if settled
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /admin/deposits/{id}/verify-payment [post]
func (h *AdminHandler) VerifyPayment(c *gin.Context) {
	id, ok := parseDepositID(c)
	if !ok {
		return
	}

	if err := h.adminCommands.VerifyAndAdvance(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrDepositNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
		case errors.Is(err, commands.ErrPaymentNotSettled):
			c.JSON(http.StatusConflict, gin.H{"error": "Payment is not completed yet"})
		case errors.Is(err, commands.ErrDatabaseOperationFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Provider status check failed"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get multisig mint payload
// @Description Render the unsigned mint transaction for a high-value deposit
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Success 200 {object} resdto.SafePayloadResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/deposits/{id}/safe-payload [get]
func (h *AdminHandler) GetSafePayload(c *gin.Context) {
	id, ok := parseDepositID(c)
	if !ok {
		return
	}

	payload, err := h.safeCommands.GetSafePayload(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDepositNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
		case errors.Is(err, commands.ErrNotAwaitingSafe):
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit is not awaiting a multisig mint"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSafePayload(payload))
}

// @Summary Confirm multisig mint
// @Description Verify an executed multisig mint on chain and finalize the deposit
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Param request body reqdto.ConfirmSafeMintRequest true "Executed transaction hash"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/deposits/{id}/confirm-safe-mint [post]
func (h *AdminHandler) ConfirmSafeMint(c *gin.Context) {
	id, ok := parseDepositID(c)
	if !ok {
		return
	}

	var req reqdto.ConfirmSafeMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.safeCommands.ConfirmSafeMint(c.Request.Context(), id, req.TxHash); err != nil {
		switch {
		case errors.Is(err, commands.ErrDepositNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
		case errors.Is(err, commands.ErrNotAwaitingSafe), errors.Is(err, commands.ErrSafeAlreadyHandled):
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit is not awaiting a multisig mint"})
		case errors.Is(err, commands.ErrMintNotVerified):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "On-chain mint could not be verified"})
		case errors.Is(err, commands.ErrDailyCapExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "Daily issuance cap exceeded"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Run the mint batch now
// @Description Process pending mints immediately instead of waiting for the next scheduler tick
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MintRunResponse
// @Failure 500 {object} map[string]string
// @Router /admin/mints/process [post]
func (h *AdminHandler) ProcessMints(c *gin.Context) {
	summary, err := h.mintCommands.ProcessPendingMints(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMintRunSummary(summary))
}

func parseDepositID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deposit ID format"})
		return uuid.Nil, false
	}
	return id, true
}
