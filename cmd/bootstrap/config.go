package bootstrap

import (
	"ntzs-issuer/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.ChainConfig { return cfg.Chain },
		func(cfg config.Config) config.ZenoPayConfig { return cfg.ZenoPay },
		func(cfg config.Config) config.IssuanceConfig { return cfg.Issuance },
	),
)
