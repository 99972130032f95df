package commands

import (
	"context"
	"log/slog"

	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/pkg/clock"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOrderNotFound = errs.New("no deposit matches the provider order")

// ConfirmationCommands is the single entry point for marking a deposit's fiat
// leg as settled. The webhook, the reconciliation poller and the manual admin
// check all converge here, so the routing decision and the status CAS live in
// exactly one place.
type ConfirmationCommands interface {
	ConfirmFiatPayment(ctx context.Context, providerOrderID, providerRef string) error
	ReconcilePending(ctx context.Context) (int, error)
}

type confirmationUseCaseImpl struct {
	depositRepo DepositRepository
	gateway     PaymentGateway
	db          *pgxpool.Pool
	clock       clock.Clock
	issuanceCfg config.IssuanceConfig
}

func NewConfirmationUseCase(
	depositRepo DepositRepository,
	gateway PaymentGateway,
	db *pgxpool.Pool,
	clk clock.Clock,
	issuanceCfg config.IssuanceConfig,
) ConfirmationCommands {
	return &confirmationUseCaseImpl{
		depositRepo: depositRepo,
		gateway:     gateway,
		db:          db,
		clock:       clk,
		issuanceCfg: issuanceCfg,
	}
}

// ConfirmFiatPayment routes the deposit into the mint queue or the multisig
// queue depending on its amount. Calling it twice for the same order is
// harmless: the guarded update simply matches zero rows the second time.
func (u *confirmationUseCaseImpl) ConfirmFiatPayment(ctx context.Context, providerOrderID, providerRef string) error {
	d, err := u.depositRepo.FindByProviderOrderID(ctx, u.db, providerOrderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrOrderNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	next := d.RouteAfterConfirmation(u.issuanceCfg.SafeMintThreshold)

	ok, err := u.depositRepo.ConfirmFiat(ctx, u.db, d.ID(), next, providerRef)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		slog.Info("fiat confirmation already handled",
			"deposit_id", d.ID(), "status", d.Status().String())
		return nil
	}

	slog.Info("fiat payment confirmed",
		"deposit_id", d.ID(),
		"amount_tzs", d.Amount().Int64(),
		"routed_to", next.String(),
		"provider_ref", providerRef)
	return nil
}

// ReconcilePending sweeps deposits that never received a webhook and polls
// the provider for their real state. Returns how many were confirmed.
func (u *confirmationUseCaseImpl) ReconcilePending(ctx context.Context) (int, error) {
	cutoff := u.clock.Now().Add(-u.issuanceCfg.ReconcileGrace)

	stuck, err := u.depositRepo.ListStuckSubmitted(ctx, u.db, cutoff, u.issuanceCfg.ReconcileBatch)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	confirmed := 0
	for _, d := range stuck {
		if !d.IsMobileMoney() {
			continue
		}
		if ctx.Err() != nil {
			return confirmed, ctx.Err()
		}

		status, err := u.gateway.CheckOrderStatus(ctx, d.ProviderOrderID())
		if err != nil {
			slog.Warn("reconciliation poll failed",
				"deposit_id", d.ID(), "order_id", d.ProviderOrderID(), "error", err)
			continue
		}
		if !status.Completed {
			continue
		}

		if err := u.ConfirmFiatPayment(ctx, d.ProviderOrderID(), status.Reference); err != nil {
			slog.Error("reconciliation confirm failed",
				"deposit_id", d.ID(), "error", err)
			continue
		}
		confirmed++
	}

	return confirmed, nil
}
