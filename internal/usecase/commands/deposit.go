package commands

import (
	"context"
	"log/slog"

	"ntzs-issuer/internal/domain/deposit"
	reqdto "ntzs-issuer/internal/handler/dto/request"
	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"
	"ntzs-issuer/internal/usecase/queries"
	"ntzs-issuer/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDepositNotFound         = errs.New("deposit not found")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrPaymentInitiationFailed = errs.New("payment initiation failed")
	ErrNotCancellable          = errs.New("deposit can no longer be cancelled")
	ErrNotOwner                = errs.New("deposit belongs to another user")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type SubmitDepositResult struct {
	Deposit    *queries.DepositView
	IsReplayed bool
}

type DepositCommands interface {
	SubmitDeposit(ctx context.Context, req reqdto.CreateDepositRequest, userID, idempotencyKey uuid.UUID) (*SubmitDepositResult, error)
	CancelDeposit(ctx context.Context, userID, depositID uuid.UUID) error
}

type depositUseCaseImpl struct {
	depositRepo    DepositRepository
	gateway        PaymentGateway
	depositQueries queries.DepositQueries
	db             *pgxpool.Pool
	chainID        int64
	webhookURL     string
}

func NewDepositUseCase(
	depositRepo DepositRepository,
	gateway PaymentGateway,
	depositQueries queries.DepositQueries,
	db *pgxpool.Pool,
	chainCfg config.ChainConfig,
	zenoCfg config.ZenoPayConfig,
) DepositCommands {
	return &depositUseCaseImpl{
		depositRepo:    depositRepo,
		gateway:        gateway,
		depositQueries: depositQueries,
		db:             db,
		chainID:        chainCfg.ChainID,
		webhookURL:     zenoCfg.WebhookURL,
	}
}

// SubmitDeposit registers a deposit request and, for mobile money, pushes the
// USSD prompt to the buyer's phone. Resubmitting the same Idempotency-Key
// replays the original deposit instead of creating a second one.
func (u *depositUseCaseImpl) SubmitDeposit(
	ctx context.Context,
	req reqdto.CreateDepositRequest,
	userID, idempotencyKey uuid.UUID,
) (*SubmitDepositResult, error) {
	existing, err := u.depositRepo.FindByUserAndKey(ctx, u.db, userID, idempotencyKey)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing != nil {
		view, err := u.depositQueries.GetByIDSystem(ctx, existing.ID())
		if err != nil {
			return nil, err
		}
		return &SubmitDepositResult{Deposit: view, IsReplayed: true}, nil
	}

	d, err := req.ToDomain(userID, idempotencyKey, u.chainID)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if _, err := shared.WithDefaultRetry(ctx, u.db, func(tx repository.DBTX) (struct{}, error) {
		return struct{}{}, u.depositRepo.Create(ctx, tx, d)
	}); err != nil {
		// A concurrent submit with the same key won the race; replay its result.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return u.replayConcurrent(ctx, userID, idempotencyKey)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if d.IsMobileMoney() {
		if err := u.gateway.InitiatePayment(ctx, d.ProviderOrderID(), d.PhoneNumber().String(), d.Amount().Int64(), u.webhookURL); err != nil {
			u.cancelAfterFailedInitiation(ctx, d.ID())
			return nil, errs.Mark(err, ErrPaymentInitiationFailed)
		}
	}

	view, err := u.depositQueries.GetByIDSystem(ctx, d.ID())
	if err != nil {
		return nil, err
	}
	return &SubmitDepositResult{Deposit: view, IsReplayed: false}, nil
}

func (u *depositUseCaseImpl) replayConcurrent(ctx context.Context, userID, idempotencyKey uuid.UUID) (*SubmitDepositResult, error) {
	existing, err := u.depositRepo.FindByUserAndKey(ctx, u.db, userID, idempotencyKey)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	view, err := u.depositQueries.GetByIDSystem(ctx, existing.ID())
	if err != nil {
		return nil, err
	}
	return &SubmitDepositResult{Deposit: view, IsReplayed: true}, nil
}

func (u *depositUseCaseImpl) cancelAfterFailedInitiation(ctx context.Context, depositID uuid.UUID) {
	ok, err := u.depositRepo.CompareAndSetStatus(ctx, u.db, depositID,
		[]deposit.Status{deposit.StatusSubmitted}, deposit.StatusCancelled)
	if err != nil {
		slog.Error("failed to cancel deposit after payment initiation failure",
			"deposit_id", depositID, "error", err)
		return
	}
	if !ok {
		slog.Warn("deposit moved out of submitted before cancellation",
			"deposit_id", depositID)
	}
}

// CancelDeposit lets a user withdraw a deposit that has not been paid yet.
// Once the fiat side is confirmed the deposit is committed to the pipeline.
func (u *depositUseCaseImpl) CancelDeposit(ctx context.Context, userID, depositID uuid.UUID) error {
	d, err := u.depositRepo.FindByID(ctx, u.db, depositID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDepositNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if d.UserID() != userID {
		return ErrNotOwner
	}

	ok, err := u.depositRepo.CompareAndSetStatus(ctx, u.db, depositID,
		[]deposit.Status{deposit.StatusSubmitted}, deposit.StatusCancelled)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return ErrNotCancellable
	}
	return nil
}
