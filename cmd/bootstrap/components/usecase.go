package components

import (
	"ntzs-issuer/internal/pkg/clock"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,

		queries.NewDepositQueries,
		queries.NewStatsQueries,

		commands.NewDepositUseCase,
		commands.NewConfirmationUseCase,
		commands.NewMintUseCase,
		commands.NewSafeMintUseCase,
		commands.NewAdminUseCase,
	),
)
