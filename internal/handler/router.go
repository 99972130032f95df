package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ntzs-issuer/internal/handler/api"
	"ntzs-issuer/internal/handler/middleware"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	depositHandler *api.DepositHandler,
	webhookHandler *api.WebhookHandler,
	adminHandler *api.AdminHandler,
	statsHandler *api.StatsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, depositHandler, webhookHandler, adminHandler, statsHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	depositHandler *api.DepositHandler,
	webhookHandler *api.WebhookHandler,
	adminHandler *api.AdminHandler,
	statsHandler *api.StatsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Provider callback authenticates with the shared secret, not a user token.
		addRoutes(apiGroup.Group("/webhooks"), []route{
			{Method: http.MethodPost, Path: "/zenopay", Handler: webhookHandler.HandleZenoPay},
		})

		deposits := apiGroup.Group("/deposits")
		deposits.Use(authMiddleware.RequireAuth())
		{
			addRoutes(deposits, []route{
				{Method: http.MethodPost, Path: "", Handler: depositHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: depositHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: depositHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: depositHandler.Cancel},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(jwt.RoleOperator))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/stats", Handler: statsHandler.Get},
				{Method: http.MethodPost, Path: "/mints/process", Handler: adminHandler.ProcessMints},
				{Method: http.MethodPost, Path: "/deposits/:id/approve", Handler: adminHandler.ApproveBankTransfer},
				{Method: http.MethodPost, Path: "/deposits/:id/reject", Handler: adminHandler.RejectDeposit},
				{Method: http.MethodPost, Path: "/deposits/:id/retry-mint", Handler: adminHandler.RetryMint},
				{Method: http.MethodPost, Path: "/deposits/:id/verify-payment", Handler: adminHandler.VerifyPayment},
				{Method: http.MethodGet, Path: "/deposits/:id/safe-payload", Handler: adminHandler.GetSafePayload},
				{Method: http.MethodPost, Path: "/deposits/:id/confirm-safe-mint", Handler: adminHandler.ConfirmSafeMint},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
