package bootstrap

import (
	"context"

	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/fx"
)

var ChainModule = fx.Module("chain",
	fx.Provide(
		NewEthClient,
		func(client *ethclient.Client) chain.Backend { return client },
		fx.Annotate(
			chain.NewMintExecutor,
			fx.As(new(commands.MintExecutor)),
			fx.As(new(queries.SupplyReader)),
		),
		fx.Annotate(
			chain.NewMintVerifier,
			fx.As(new(commands.MintVerifier)),
		),
		fx.Annotate(
			chain.NewSafePayloadBuilder,
			fx.As(new(commands.SafePayloadBuilder)),
		),
	),
)

func NewEthClient(lc fx.Lifecycle, cfg config.ChainConfig) (*ethclient.Client, error) {
	client, err := chain.Dial(cfg.RPCURL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			client.Close()
			return nil
		},
	})

	return client, nil
}
