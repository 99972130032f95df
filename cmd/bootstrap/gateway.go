package bootstrap

import (
	"ntzs-issuer/internal/infra/zenopay"
	"ntzs-issuer/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		zenopay.NewClient,
		fx.Annotate(
			zenopay.NewGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
