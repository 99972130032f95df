//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"ntzs-issuer/internal/handler/api"
	resdto "ntzs-issuer/internal/handler/dto/response"
	"ntzs-issuer/internal/pkg/jwt"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"
	"ntzs-issuer/tests/common/builder"
	"ntzs-issuer/tests/common/httptest"
	"ntzs-issuer/tests/common/testutil"
	commandsmock "ntzs-issuer/tests/mock/commands"
	queriesmock "ntzs-issuer/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DepositHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDepositCommands
	mockQueries  *queriesmock.MockDepositQueries
	handler      *api.DepositHandler
	userID       uuid.UUID
}

func (s *DepositHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDepositCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDepositQueries(s.mockCtrl)
	s.handler = api.NewDepositHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", jwt.RoleUser)
		c.Next()
	}

	s.router.POST("/deposits", authMiddleware, s.handler.Create)
	s.router.GET("/deposits", authMiddleware, s.handler.List)
	s.router.GET("/deposits/:id", authMiddleware, s.handler.Get)
	s.router.DELETE("/deposits/:id", authMiddleware, s.handler.Cancel)
}

func (s *DepositHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDepositHandlerSuite(t *testing.T) {
	suite.Run(t, new(DepositHandlerTestSuite))
}

type testCaseDeposit struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *DepositHandlerTestSuite) TestCreate() {
	url := "/deposits"
	idemKey := uuid.New()
	idemHeader := map[string]string{"Idempotency-Key": idemKey.String()}

	reqBody := builder.NewDepositBuilder().WithUserID(s.userID).BuildCreateRequestDTO()
	returnView := builder.NewDepositBuilder().WithUserID(s.userID).BuildView()

	s.Run("success: returns 201 Created for a new deposit", func() {
		s.mockCommands.EXPECT().SubmitDeposit(gomock.Any(), reqBody, s.userID, idemKey).
			Return(&commands.SubmitDepositResult{Deposit: returnView, IsReplayed: false}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader)

		var response resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.AmountTZS, response.AmountTZS)
	})

	s.Run("success: returns 200 OK for an idempotent replay", func() {
		s.mockCommands.EXPECT().SubmitDeposit(gomock.Any(), reqBody, s.userID, idemKey).
			Return(&commands.SubmitDepositResult{Deposit: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request when Idempotency-Key header is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 400 Bad Request when Idempotency-Key is not a UUID", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseDeposit{
			{name: "missing field: wallet_address (required)", mutate: testutil.Field("wallet_address", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: amount_tzs (required)", mutate: testutil.Field("amount_tzs", nil), expectCode: http.StatusBadRequest},
			{name: "amount boundary invalid (0)", mutate: testutil.Field("amount_tzs", 0), expectCode: http.StatusBadRequest},
			{name: "amount boundary invalid (-1)", mutate: testutil.Field("amount_tzs", -1), expectCode: http.StatusBadRequest},
			{name: "invalid payment_method", mutate: testutil.Field("payment_method", "cash"), expectCode: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token", idemHeader)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", idemHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "domain validation error",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "validation failed",
			},
			{
				name:           "payment initiation failed",
				commandsError:  commands.ErrPaymentInitiationFailed,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment provider",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().SubmitDeposit(gomock.Any(), reqBody, s.userID, idemKey).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *DepositHandlerTestSuite) TestGet() {
	depositID := uuid.New()
	url := "/deposits/" + depositID.String()

	returnView := builder.NewDepositBuilder().WithUserID(s.userID).BuildView()
	returnView.ID = depositID

	s.Run("success: returns 200 OK with DepositResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, jwt.RoleUser, depositID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.DepositResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(depositID, response.ID)
		s.Equal(returnView.Status, response.Status)
		s.Equal(returnView.WalletAddress, response.WalletAddress)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deposits/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid deposit ID")
	})

	s.Run("error: 403 Forbidden for another user's deposit", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, jwt.RoleUser, depositID).
			Return(nil, queries.ErrDepositAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 404 Not Found for missing deposit", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, jwt.RoleUser, depositID).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Deposit not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *DepositHandlerTestSuite) TestList() {
	url := "/deposits"

	items := []*queries.DepositListItem{
		builder.NewDepositBuilder().WithAmountTZS(1000).BuildListItem(),
		builder.NewDepositBuilder().WithAmountTZS(2000).WithStatus("minted").BuildListItem(),
	}

	s.Run("success: returns the user's deposits", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 0).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.DepositListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(items))
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 0).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *DepositHandlerTestSuite) TestCancel() {
	depositID := uuid.New()
	url := "/deposits/" + depositID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelDeposit(gomock.Any(), s.userID, depositID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/deposits/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid deposit ID")
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
				name:           "not the owner",
				commandsError:  commands.ErrNotOwner,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "already past submitted",
				commandsError:  commands.ErrNotCancellable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "no longer be cancelled",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelDeposit(gomock.Any(), s.userID, depositID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
