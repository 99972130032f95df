package commands

import (
	"context"
	"log/slog"

	"ntzs-issuer/internal/domain/deposit"
	"ntzs-issuer/internal/domain/issuance"
	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/pkg/clock"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"
	"ntzs-issuer/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotAwaitingSafe    = errs.New("deposit is not awaiting a multisig mint")
	ErrMintNotVerified    = errs.New("on-chain mint could not be verified")
	ErrDailyCapExceeded   = errs.New("daily issuance cap exceeded")
	ErrSafeAlreadyHandled = errs.New("deposit already advanced by another operator")
)

// SafeMintCommands covers the manual path for high-value deposits: an
// operator pulls the unsigned payload, executes it through the multisig, then
// reports the transaction hash back for verification.
type SafeMintCommands interface {
	GetSafePayload(ctx context.Context, depositID uuid.UUID) (chain.SafePayload, error)
	ConfirmSafeMint(ctx context.Context, depositID uuid.UUID, txHash string) error
}

type safeMintUseCaseImpl struct {
	depositRepo DepositRepository
	ledgerRepo  LedgerRepository
	mintTxRepo  MintTransactionRepository
	auditRepo   AuditRepository
	verifier    MintVerifier
	builder     SafePayloadBuilder
	db          *pgxpool.Pool
	clock       clock.Clock
	chainCfg    config.ChainConfig
	issuanceCfg config.IssuanceConfig
}

func NewSafeMintUseCase(
	depositRepo DepositRepository,
	ledgerRepo LedgerRepository,
	mintTxRepo MintTransactionRepository,
	auditRepo AuditRepository,
	verifier MintVerifier,
	builder SafePayloadBuilder,
	db *pgxpool.Pool,
	clk clock.Clock,
	chainCfg config.ChainConfig,
	issuanceCfg config.IssuanceConfig,
) SafeMintCommands {
	return &safeMintUseCaseImpl{
		depositRepo: depositRepo,
		ledgerRepo:  ledgerRepo,
		mintTxRepo:  mintTxRepo,
		auditRepo:   auditRepo,
		verifier:    verifier,
		builder:     builder,
		db:          db,
		clock:       clk,
		chainCfg:    chainCfg,
		issuanceCfg: issuanceCfg,
	}
}

func (u *safeMintUseCaseImpl) GetSafePayload(ctx context.Context, depositID uuid.UUID) (chain.SafePayload, error) {
	d, err := u.loadAwaitingSafe(ctx, depositID)
	if err != nil {
		return chain.SafePayload{}, err
	}
	return u.builder.Build(d.Wallet().String(), d.Amount().Int64())
}

// ConfirmSafeMint verifies the reported transaction actually minted the exact
// amount to the deposit's wallet before any state changes. The budget is
// charged at confirmation time: if today's cap cannot absorb the amount the
// confirmation is refused and the deposit stays queued for the multisig until
// the budget resets.
func (u *safeMintUseCaseImpl) ConfirmSafeMint(ctx context.Context, depositID uuid.UUID, txHash string) error {
	d, err := u.loadAwaitingSafe(ctx, depositID)
	if err != nil {
		return err
	}

	if err := u.verifier.VerifyMint(ctx, txHash, d.Wallet().String(), d.Amount().Int64()); err != nil {
		return errs.Mark(err, ErrMintNotVerified)
	}

	day := issuance.DayOf(u.clock.Now())
	amount := d.Amount().Int64()

	_, err = shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		if err := u.ledgerRepo.EnsureDay(ctx, tx, day, u.issuanceCfg.DailyCapTZS); err != nil {
			return struct{}{}, err
		}
		reserved, err := u.ledgerRepo.Reserve(ctx, tx, day, amount)
		if err != nil {
			return struct{}{}, err
		}
		if !reserved {
			return struct{}{}, ErrDailyCapExceeded
		}
		if err := u.ledgerRepo.Commit(ctx, tx, day, amount); err != nil {
			return struct{}{}, err
		}
		if err := u.mintTxRepo.BeginAttempt(ctx, tx, d.ID(), d.ChainID(), u.chainCfg.TokenContract); err != nil {
			return struct{}{}, err
		}
		if err := u.mintTxRepo.SetMinted(ctx, tx, d.ID(), txHash); err != nil {
			return struct{}{}, err
		}
		ok, err := u.depositRepo.CompareAndSetStatus(ctx, tx, d.ID(),
			[]deposit.Status{deposit.StatusMintRequiresSafe}, deposit.StatusMinted)
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, ErrSafeAlreadyHandled
		}
		return struct{}{}, u.auditRepo.Append(ctx, tx, repository.AuditSafeConfirmed, "deposit", d.ID(),
			map[string]any{"tx_hash": txHash, "amount_tzs": amount})
	})
	if err != nil {
		if errs.Is(err, ErrSafeAlreadyHandled) || errs.Is(err, ErrDailyCapExceeded) {
			return err
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("multisig mint confirmed",
		"deposit_id", d.ID(), "amount_tzs", amount, "tx_hash", txHash)
	return nil
}

func (u *safeMintUseCaseImpl) loadAwaitingSafe(ctx context.Context, depositID uuid.UUID) (*deposit.Deposit, error) {
	d, err := u.depositRepo.FindByID(ctx, u.db, depositID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDepositNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if d.Status() != deposit.StatusMintRequiresSafe {
		return nil, ErrNotAwaitingSafe
	}
	return d, nil
}
