package commands

import (
	"context"
	"log/slog"

	"ntzs-issuer/internal/domain/deposit"
	"ntzs-issuer/internal/domain/issuance"
	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/pkg/clock"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"
	"ntzs-issuer/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MintRunSummary reports one batch of the automated mint loop.
type MintRunSummary struct {
	Claimed     int
	Minted      int
	Failed      int
	CapExceeded int
}

type MintCommands interface {
	ProcessPendingMints(ctx context.Context) (MintRunSummary, error)
}

type mintUseCaseImpl struct {
	depositRepo DepositRepository
	ledgerRepo  LedgerRepository
	mintTxRepo  MintTransactionRepository
	auditRepo   AuditRepository
	executor    MintExecutor
	db          *pgxpool.Pool
	clock       clock.Clock
	chainCfg    config.ChainConfig
	issuanceCfg config.IssuanceConfig
}

func NewMintUseCase(
	depositRepo DepositRepository,
	ledgerRepo LedgerRepository,
	mintTxRepo MintTransactionRepository,
	auditRepo AuditRepository,
	executor MintExecutor,
	db *pgxpool.Pool,
	clk clock.Clock,
	chainCfg config.ChainConfig,
	issuanceCfg config.IssuanceConfig,
) MintCommands {
	return &mintUseCaseImpl{
		depositRepo: depositRepo,
		ledgerRepo:  ledgerRepo,
		mintTxRepo:  mintTxRepo,
		auditRepo:   auditRepo,
		executor:    executor,
		db:          db,
		clock:       clk,
		chainCfg:    chainCfg,
		issuanceCfg: issuanceCfg,
	}
}

// ProcessPendingMints drains up to MintBatchSize deposits from the pending
// queue. Each deposit is claimed exclusively, budgeted against the day's cap,
// minted, and finalized. A failure on one deposit never blocks the rest of
// the batch; a cap rejection ends the batch because claiming is FIFO and the
// same deposit would be reclaimed immediately.
func (u *mintUseCaseImpl) ProcessPendingMints(ctx context.Context) (MintRunSummary, error) {
	var summary MintRunSummary

	for i := 0; i < u.issuanceCfg.MintBatchSize; i++ {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		d, err := u.depositRepo.ClaimNextPending(ctx, u.db)
		if err != nil {
			return summary, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if d == nil {
			return summary, nil
		}
		summary.Claimed++

		outcome, err := u.mintOne(ctx, d)
		if err != nil {
			return summary, err
		}

		switch outcome {
		case mintOutcomeMinted:
			summary.Minted++
		case mintOutcomeFailed:
			summary.Failed++
		case mintOutcomeCapExceeded:
			summary.CapExceeded++
			return summary, nil
		}
	}

	return summary, nil
}

type mintOutcome int

const (
	mintOutcomeMinted mintOutcome = iota
	mintOutcomeFailed
	mintOutcomeCapExceeded
)

func (u *mintUseCaseImpl) mintOne(ctx context.Context, d *deposit.Deposit) (mintOutcome, error) {
	// Only the chain calls honor the caller's deadline. Bookkeeping runs
	// detached: a tick budget expiring mid wait must not strand the claim
	// in mint_processing or hold the day's reservation.
	dbCtx := context.WithoutCancel(ctx)

	day := issuance.DayOf(u.clock.Now())
	amount := d.Amount().Int64()

	if err := u.mintTxRepo.BeginAttempt(dbCtx, u.db, d.ID(), d.ChainID(), u.chainCfg.TokenContract); err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	reserved, err := u.reserveBudget(dbCtx, day, amount)
	if err != nil {
		return 0, err
	}
	if !reserved {
		return mintOutcomeCapExceeded, u.handleCapExceeded(dbCtx, d, day)
	}

	txHash, err := u.executor.Mint(ctx, d.Wallet().String(), amount)
	if err != nil {
		return mintOutcomeFailed, u.handleMintFailure(dbCtx, d, day, classifyMintError(err), err)
	}

	if err := u.mintTxRepo.SetSubmitted(dbCtx, u.db, d.ID(), txHash); err != nil {
		slog.Error("failed to record submitted mint transaction",
			"deposit_id", d.ID(), "tx_hash", txHash, "error", err)
	}

	if _, err := u.executor.WaitMined(ctx, txHash); err != nil {
		return mintOutcomeFailed, u.handleMintFailure(dbCtx, d, day, "tx failed: "+err.Error(), err)
	}

	if err := u.finalizeMint(dbCtx, d, day, txHash); err != nil {
		return 0, err
	}
	return mintOutcomeMinted, nil
}

func (u *mintUseCaseImpl) reserveBudget(ctx context.Context, day issuance.DayKey, amount int64) (bool, error) {
	if err := u.ledgerRepo.EnsureDay(ctx, u.db, day, u.issuanceCfg.DailyCapTZS); err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	ok, err := u.ledgerRepo.Reserve(ctx, u.db, day, amount)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return ok, nil
}

// handleCapExceeded returns the deposit to the pending queue so it competes
// again once the budget resets at midnight UTC. No ledger release is needed:
// the reservation never happened.
func (u *mintUseCaseImpl) handleCapExceeded(ctx context.Context, d *deposit.Deposit, day issuance.DayKey) error {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		if err := u.mintTxRepo.SetCapExceeded(ctx, tx, d.ID()); err != nil {
			return struct{}{}, err
		}
		if _, err := u.depositRepo.CompareAndSetStatus(ctx, tx, d.ID(),
			[]deposit.Status{deposit.StatusMintProcessing}, deposit.StatusMintPending); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, u.auditRepo.Append(ctx, tx, repository.AuditCapExceeded, "deposit", d.ID(),
			map[string]any{"amount_tzs": d.Amount().Int64(), "day": day.String()})
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Warn("daily issuance cap exhausted, deposit requeued",
		"deposit_id", d.ID(), "amount_tzs", d.Amount().Int64(), "day", day.String())
	return nil
}

func (u *mintUseCaseImpl) handleMintFailure(ctx context.Context, d *deposit.Deposit, day issuance.DayKey, reason string, cause error) error {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		if err := u.ledgerRepo.Release(ctx, tx, day, d.Amount().Int64()); err != nil {
			return struct{}{}, err
		}
		if err := u.mintTxRepo.SetFailed(ctx, tx, d.ID(), reason); err != nil {
			return struct{}{}, err
		}
		if _, err := u.depositRepo.CompareAndSetStatus(ctx, tx, d.ID(),
			[]deposit.Status{deposit.StatusMintProcessing}, deposit.StatusMintFailed); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, u.auditRepo.Append(ctx, tx, repository.AuditMintFailed, "deposit", d.ID(),
			map[string]any{"reason": reason})
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Error("mint attempt failed",
		"deposit_id", d.ID(), "amount_tzs", d.Amount().Int64(), "error", cause)
	return nil
}

func (u *mintUseCaseImpl) finalizeMint(ctx context.Context, d *deposit.Deposit, day issuance.DayKey, txHash string) error {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		if err := u.ledgerRepo.Commit(ctx, tx, day, d.Amount().Int64()); err != nil {
			return struct{}{}, err
		}
		if err := u.mintTxRepo.SetMinted(ctx, tx, d.ID(), txHash); err != nil {
			return struct{}{}, err
		}
		if _, err := u.depositRepo.CompareAndSetStatus(ctx, tx, d.ID(),
			[]deposit.Status{deposit.StatusMintProcessing}, deposit.StatusMinted); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, u.auditRepo.Append(ctx, tx, repository.AuditMintCompleted, "deposit", d.ID(),
			map[string]any{"tx_hash": txHash, "amount_tzs": d.Amount().Int64()})
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("mint completed",
		"deposit_id", d.ID(), "amount_tzs", d.Amount().Int64(), "tx_hash", txHash)
	return nil
}

func classifyMintError(err error) string {
	switch {
	case errs.Is(err, chain.ErrMinterRoleRevoked):
		return "minter role revoked"
	case errs.Is(err, chain.ErrReceiptTimeout):
		return "receipt wait timed out"
	case errs.Is(err, chain.ErrTxReverted):
		return "transaction reverted"
	default:
		return "submission failed: " + err.Error()
	}
}
