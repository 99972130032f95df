package api

import (
	"errors"
	"net/http"

	reqdto "ntzs-issuer/internal/handler/dto/request"
	resdto "ntzs-issuer/internal/handler/dto/response"
	"ntzs-issuer/internal/handler/middleware"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errIdempotencyKeyRequired = errors.New("Idempotency-Key header required")

type DepositHandler struct {
	depositCommands commands.DepositCommands
	depositQueries  queries.DepositQueries
}

func NewDepositHandler(depositCommands commands.DepositCommands, depositQueries queries.DepositQueries) *DepositHandler {
	return &DepositHandler{
		depositCommands: depositCommands,
		depositQueries:  depositQueries,
	}
}

// @Summary Submit deposit
// @Description Submit a fiat deposit to be minted as nTZS after payment confirmation
// @Tags deposits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateDepositRequest true "Deposit request"
// @Success 201 {object} resdto.DepositResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /deposits [post]
func (h *DepositHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req reqdto.CreateDepositRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.depositCommands.SubmitDeposit(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Deposit validation failed"})
		case errors.Is(err, commands.ErrPaymentInitiationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider rejected the request"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromDepositView(result.Deposit))
}

// @Summary Get deposit
// @Description Get deposit by ID, including its mint transaction when present
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Success 200 {object} resdto.DepositResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /deposits/{id} [get]
func (h *DepositHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deposit ID format"})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.depositQueries.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrDepositAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDepositView(view))
}

// @Summary List own deposits
// @Description List the authenticated user's deposits, newest first
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.DepositListResponse
// @Failure 401 {object} map[string]string
// @Router /deposits [get]
func (h *DepositHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.depositQueries.ListByUser(c.Request.Context(), userID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDepositListItems(items))
}

// @Summary Cancel deposit
// @Description Cancel an unpaid deposit
// @Tags deposits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deposit ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /deposits/{id} [delete]
func (h *DepositHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deposit ID format"})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.depositCommands.CancelDeposit(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrDepositNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit not found"})
		case errors.Is(err, commands.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, commands.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit can no longer be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DepositHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("Idempotency-Key must be a valid UUID")
	}
	return key, nil
}
