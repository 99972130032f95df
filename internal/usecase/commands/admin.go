package commands

import (
	"context"
	"log/slog"

	"ntzs-issuer/internal/domain/deposit"
	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/pkg/errs"
	"ntzs-issuer/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotRetryable      = errs.New("deposit is not in a retryable state")
	ErrNotRejectable     = errs.New("deposit can no longer be rejected")
	ErrNotApprovable     = errs.New("deposit is not awaiting bank approval")
	ErrPaymentNotSettled = errs.New("provider does not report the payment as completed")
)

// AdminCommands groups the operator interventions: compliance decisions,
// failure retries and manual payment verification.
type AdminCommands interface {
	ApproveBankTransfer(ctx context.Context, depositID uuid.UUID) error
	RejectDeposit(ctx context.Context, depositID uuid.UUID, reason string) error
	RetryMint(ctx context.Context, depositID uuid.UUID) error
	VerifyAndAdvance(ctx context.Context, depositID uuid.UUID) error
}

type adminUseCaseImpl struct {
	depositRepo  DepositRepository
	mintTxRepo   MintTransactionRepository
	auditRepo    AuditRepository
	gateway      PaymentGateway
	confirmation ConfirmationCommands
	db           *pgxpool.Pool
}

func NewAdminUseCase(
	depositRepo DepositRepository,
	mintTxRepo MintTransactionRepository,
	auditRepo AuditRepository,
	gateway PaymentGateway,
	confirmation ConfirmationCommands,
	db *pgxpool.Pool,
) AdminCommands {
	return &adminUseCaseImpl{
		depositRepo:  depositRepo,
		mintTxRepo:   mintTxRepo,
		auditRepo:    auditRepo,
		gateway:      gateway,
		confirmation: confirmation,
		db:           db,
	}
}

// ApproveBankTransfer records the compliance go-ahead for a bank transfer
// deposit. The deposit still needs its fiat leg confirmed before minting.
func (u *adminUseCaseImpl) ApproveBankTransfer(ctx context.Context, depositID uuid.UUID) error {
	ok, err := u.depositRepo.CompareAndSetStatus(ctx, u.db, depositID,
		[]deposit.Status{deposit.StatusSubmitted}, deposit.StatusBankApproved)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return ErrNotApprovable
	}
	return nil
}

// RejectDeposit takes a deposit out of the pipeline before its fiat leg is
// confirmed. Confirmed deposits cannot be rejected; money already moved.
func (u *adminUseCaseImpl) RejectDeposit(ctx context.Context, depositID uuid.UUID, reason string) error {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		ok, err := u.depositRepo.CompareAndSetStatus(ctx, tx, depositID,
			deposit.ConfirmableStatuses(), deposit.StatusRejected)
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, ErrNotRejectable
		}
		return struct{}{}, u.auditRepo.Append(ctx, tx, repository.AuditDepositRejected, "deposit", depositID,
			map[string]any{"reason": reason})
	})
	if err != nil {
		if errs.Is(err, ErrNotRejectable) {
			return ErrNotRejectable
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("deposit rejected", "deposit_id", depositID, "reason", reason)
	return nil
}

// RetryMint requeues a failed mint; the failed attempt already released its
// ledger hold, so the retry budgets afresh. Deposits stranded in
// mint_processing by a crash between submission and finalization are accepted
// too: the earlier transaction may already be mined, so resubmission is never
// automatic and stays behind this operator action.
func (u *adminUseCaseImpl) RetryMint(ctx context.Context, depositID uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		ok, err := u.depositRepo.CompareAndSetStatus(ctx, tx, depositID,
			[]deposit.Status{deposit.StatusMintFailed, deposit.StatusMintProcessing}, deposit.StatusMintPending)
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, ErrNotRetryable
		}
		if err := u.mintTxRepo.SetPendingRetry(ctx, tx, depositID); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, u.auditRepo.Append(ctx, tx, repository.AuditMintRetried, "deposit", depositID, nil)
	})
	if err != nil {
		if errs.Is(err, ErrNotRetryable) {
			return ErrNotRetryable
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("mint retry queued", "deposit_id", depositID)
	return nil
}

// VerifyAndAdvance is the manual confirmation path: an operator asks the
// provider directly whether the payment settled, bypassing a lost webhook
// without waiting for the reconciliation sweep.
func (u *adminUseCaseImpl) VerifyAndAdvance(ctx context.Context, depositID uuid.UUID) error {
	d, err := u.depositRepo.FindByID(ctx, u.db, depositID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDepositNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	status, err := u.gateway.CheckOrderStatus(ctx, d.ProviderOrderID())
	if err != nil {
		return err
	}
	if !status.Completed {
		return ErrPaymentNotSettled
	}

	return u.confirmation.ConfirmFiatPayment(ctx, d.ProviderOrderID(), status.Reference)
}
