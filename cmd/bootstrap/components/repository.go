package components

import (
	"ntzs-issuer/internal/infra/readstore"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewDepositRepository,
			fx.As(new(commands.DepositRepository)),
		),
		fx.Annotate(
			repository.NewIssuanceLedgerRepository,
			fx.As(new(commands.LedgerRepository)),
		),
		fx.Annotate(
			repository.NewMintTransactionRepository,
			fx.As(new(commands.MintTransactionRepository)),
		),
		fx.Annotate(
			repository.NewAuditLogRepository,
			fx.As(new(commands.AuditRepository)),
		),
		fx.Annotate(
			readstore.NewDepositReadStore,
			fx.As(new(queries.DepositViewRepo)),
		),
		fx.Annotate(
			readstore.NewStatsReadStore,
			fx.As(new(queries.StatsStore)),
		),
	),
)
