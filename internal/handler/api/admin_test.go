//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"ntzs-issuer/internal/handler/api"
	resdto "ntzs-issuer/internal/handler/dto/response"
	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/pkg/jwt"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/tests/common/httptest"
	commandsmock "ntzs-issuer/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockAdmin    *commandsmock.MockAdminCommands
	mockSafeMint *commandsmock.MockSafeMintCommands
	mockMint     *commandsmock.MockMintCommands
	handler      *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAdmin = commandsmock.NewMockAdminCommands(s.mockCtrl)
	s.mockSafeMint = commandsmock.NewMockSafeMintCommands(s.mockCtrl)
	s.mockMint = commandsmock.NewMockMintCommands(s.mockCtrl)
	s.handler = api.NewAdminHandler(s.mockAdmin, s.mockSafeMint, s.mockMint)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", jwt.RoleOperator)
		c.Next()
	}

	s.router.POST("/admin/deposits/:id/approve", authMiddleware, s.handler.ApproveBankTransfer)
	s.router.POST("/admin/deposits/:id/reject", authMiddleware, s.handler.RejectDeposit)
	s.router.POST("/admin/deposits/:id/retry-mint", authMiddleware, s.handler.RetryMint)
	s.router.POST("/admin/deposits/:id/verify-payment", authMiddleware, s.handler.VerifyPayment)
	s.router.GET("/admin/deposits/:id/safe-payload", authMiddleware, s.handler.GetSafePayload)
	s.router.POST("/admin/deposits/:id/confirm-safe-mint", authMiddleware, s.handler.ConfirmSafeMint)
	s.router.POST("/admin/mints/process", authMiddleware, s.handler.ProcessMints)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

// ================================================================================
// TestApproveBankTransfer
// ================================================================================

func (s *AdminHandlerTestSuite) TestApproveBankTransfer() {
	depositID := uuid.New()
	url := "/admin/deposits/" + depositID.String() + "/approve"

	s.Run("success: returns 204 No Content", func() {
		s.mockAdmin.EXPECT().ApproveBankTransfer(gomock.Any(), depositID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/deposits/invalid-uuid/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid deposit ID")
	})

	s.Run("error: 409 Conflict when deposit is not awaiting approval", func() {
		s.mockAdmin.EXPECT().ApproveBankTransfer(gomock.Any(), depositID).
			Return(commands.ErrNotApprovable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not awaiting bank approval")
	})

	s.Run("error: 500 Internal Server Error on unexpected failure", func() {
		s.mockAdmin.EXPECT().ApproveBankTransfer(gomock.Any(), depositID).
			Return(errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestRejectDeposit
// ================================================================================

func (s *AdminHandlerTestSuite) TestRejectDeposit() {
	depositID := uuid.New()
	url := "/admin/deposits/" + depositID.String() + "/reject"
	reqBody := map[string]string{"reason": "document mismatch"}

	s.Run("success: returns 204 No Content", func() {
		s.mockAdmin.EXPECT().RejectDeposit(gomock.Any(), depositID, "document mismatch").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request when reason is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 Conflict when deposit is past rejection", func() {
		s.mockAdmin.EXPECT().RejectDeposit(gomock.Any(), depositID, "document mismatch").
			Return(commands.ErrNotRejectable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer be rejected")
	})
}

// ================================================================================
// TestRetryMint
// ================================================================================

func (s *AdminHandlerTestSuite) TestRetryMint() {
	depositID := uuid.New()
	url := "/admin/deposits/" + depositID.String() + "/retry-mint"

	s.Run("success: returns 204 No Content", func() {
		s.mockAdmin.EXPECT().RetryMint(gomock.Any(), depositID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when deposit is not in mint_failed", func() {
		s.mockAdmin.EXPECT().RetryMint(gomock.Any(), depositID).
			Return(commands.ErrNotRetryable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not in a retryable state")
	})
}

// ================================================================================
// TestVerifyPayment
// ================================================================================

func (s *AdminHandlerTestSuite) TestVerifyPayment() {
	depositID := uuid.New()
	url := "/admin/deposits/" + depositID.String() + "/verify-payment"

	s.Run("success: returns 204 No Content", func() {
		s.mockAdmin.EXPECT().VerifyAndAdvance(gomock.Any(), depositID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "deposit not found",
				commandsError:  commands.ErrDepositNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Deposit not found",
			},
			{
				name:           "payment not settled",
				commandsError:  commands.ErrPaymentNotSettled,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not completed yet",
			},
			{
				name:           "database failure",
				commandsError:  commands.ErrDatabaseOperationFailed,
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
			{
				name:           "provider unreachable",
				commandsError:  errors.New("connection refused"),
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Provider status check failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockAdmin.EXPECT().VerifyAndAdvance(gomock.Any(), depositID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetSafePayload
// ================================================================================

func (s *AdminHandlerTestSuite) TestGetSafePayload() {
	depositID := uuid.New()
	url := "/admin/deposits/" + depositID.String() + "/safe-payload"

	payload := chain.SafePayload{
		SafeAddress: "0x2222222222222222222222222222222222222222",
		To:          "0x3333333333333333333333333333333333333333",
		Value:       "0",
		Data:        "0x40c10f19",
	}

	s.Run("success: returns 200 OK with SafePayloadResponse", func() {
		s.mockSafeMint.EXPECT().GetSafePayload(gomock.Any(), depositID).
			Return(payload, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.SafePayloadResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(payload.SafeAddress, response.SafeAddress)
		s.Equal(payload.To, response.To)
		s.Equal(payload.Value, response.Value)
		s.Equal(payload.Data, response.Data)
	})

	s.Run("error: 404 Not Found for missing deposit", func() {
		s.mockSafeMint.EXPECT().GetSafePayload(gomock.Any(), depositID).
			Return(chain.SafePayload{}, commands.ErrDepositNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Deposit not found")
	})

	s.Run("error: 409 Conflict when deposit does not need a multisig mint", func() {
		s.mockSafeMint.EXPECT().GetSafePayload(gomock.Any(), depositID).
			Return(chain.SafePayload{}, commands.ErrNotAwaitingSafe).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not awaiting a multisig mint")
	})
}

// ================================================================================
// TestConfirmSafeMint
// ================================================================================

func (s *AdminHandlerTestSuite) TestConfirmSafeMint() {
	depositID := uuid.New()
	url := "/admin/deposits/" + depositID.String() + "/confirm-safe-mint"
	txHash := "0x" + strings.Repeat("a", 64)
	reqBody := map[string]string{"tx_hash": txHash}

	s.Run("success: returns 204 No Content", func() {
		s.mockSafeMint.EXPECT().ConfirmSafeMint(gomock.Any(), depositID, txHash).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for malformed tx hash", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"tx_hash": "abc"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "deposit not found",
				commandsError:  commands.ErrDepositNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Deposit not found",
			},
			{
				name:           "not awaiting safe",
				commandsError:  commands.ErrNotAwaitingSafe,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not awaiting a multisig mint",
			},
			{
				name:           "already handled",
				commandsError:  commands.ErrSafeAlreadyHandled,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not awaiting a multisig mint",
			},
			{
				name:           "receipt does not prove the mint",
				commandsError:  commands.ErrMintNotVerified,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "could not be verified",
			},
			{
				name:           "daily cap exceeded",
				commandsError:  commands.ErrDailyCapExceeded,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Daily issuance cap exceeded",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockSafeMint.EXPECT().ConfirmSafeMint(gomock.Any(), depositID, txHash).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestProcessMints
// ================================================================================

func (s *AdminHandlerTestSuite) TestProcessMints() {
	url := "/admin/mints/process"

	s.Run("success: returns 200 with the batch summary", func() {
		s.mockMint.EXPECT().ProcessPendingMints(gomock.Any()).
			Return(commands.MintRunSummary{Claimed: 3, Minted: 2, Failed: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var resp resdto.MintRunResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(3, resp.Claimed)
		s.Equal(2, resp.Minted)
		s.Equal(1, resp.Failed)
		s.Equal(0, resp.CapExceeded)
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 500 Internal Server Error when the batch aborts", func() {
		s.mockMint.EXPECT().ProcessPendingMints(gomock.Any()).
			Return(commands.MintRunSummary{}, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
