package components

import (
	"ntzs-issuer/internal/handler"
	"ntzs-issuer/internal/handler/api"
	"ntzs-issuer/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		middleware.NewAuthMiddleware,
		api.NewDepositHandler,
		api.NewWebhookHandler,
		api.NewAdminHandler,
		api.NewStatsHandler,
	),
	fx.Invoke(handler.NewRouter),
)
