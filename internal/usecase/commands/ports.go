package commands

import (
	"context"
	"time"

	"ntzs-issuer/internal/domain/deposit"
	"ntzs-issuer/internal/domain/issuance"
	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/infra/repository"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
)

type DepositRepository interface {
	Create(ctx context.Context, db repository.DBTX, d *deposit.Deposit) error
	FindByID(ctx context.Context, db repository.DBTX, id uuid.UUID) (*deposit.Deposit, error)
	FindByUserAndKey(ctx context.Context, db repository.DBTX, userID, key uuid.UUID) (*deposit.Deposit, error)
	FindByProviderOrderID(ctx context.Context, db repository.DBTX, orderID string) (*deposit.Deposit, error)
	CompareAndSetStatus(ctx context.Context, db repository.DBTX, id uuid.UUID, from []deposit.Status, to deposit.Status) (bool, error)
	ConfirmFiat(ctx context.Context, db repository.DBTX, id uuid.UUID, to deposit.Status, providerRef string) (bool, error)
	ClaimNextPending(ctx context.Context, db repository.DBTX) (*deposit.Deposit, error)
	ListStuckSubmitted(ctx context.Context, db repository.DBTX, olderThan time.Time, limit int) ([]*deposit.Deposit, error)
}

type LedgerRepository interface {
	EnsureDay(ctx context.Context, db repository.DBTX, day issuance.DayKey, defaultCap int64) error
	Reserve(ctx context.Context, db repository.DBTX, day issuance.DayKey, amount int64) (bool, error)
	Commit(ctx context.Context, db repository.DBTX, day issuance.DayKey, amount int64) error
	Release(ctx context.Context, db repository.DBTX, day issuance.DayKey, amount int64) error
	GetDay(ctx context.Context, db repository.DBTX, day issuance.DayKey) (issuance.LedgerEntry, error)
}

type MintTransactionRepository interface {
	BeginAttempt(ctx context.Context, db repository.DBTX, depositID uuid.UUID, chainID int64, contract string) error
	SetSubmitted(ctx context.Context, db repository.DBTX, depositID uuid.UUID, txHash string) error
	SetMinted(ctx context.Context, db repository.DBTX, depositID uuid.UUID, txHash string) error
	SetFailed(ctx context.Context, db repository.DBTX, depositID uuid.UUID, errMsg string) error
	SetCapExceeded(ctx context.Context, db repository.DBTX, depositID uuid.UUID) error
	SetPendingRetry(ctx context.Context, db repository.DBTX, depositID uuid.UUID) error
	FindByDepositID(ctx context.Context, db repository.DBTX, depositID uuid.UUID) (*deposit.MintTransaction, error)
}

type AuditRepository interface {
	Append(ctx context.Context, db repository.DBTX, action, entityType string, entityID uuid.UUID, metadata map[string]any) error
}

// PaymentOrderSnapshot is the write-side view of a provider status poll.
type PaymentOrderSnapshot struct {
	OrderID   string
	Completed bool
	Reference string
	AmountTZS int64
}

type PaymentGateway interface {
	InitiatePayment(ctx context.Context, orderID, buyerPhone string, amountTZS int64, webhookURL string) error
	CheckOrderStatus(ctx context.Context, orderID string) (*PaymentOrderSnapshot, error)
}

type MintExecutor interface {
	Mint(ctx context.Context, wallet string, amountTZS int64) (string, error)
	WaitMined(ctx context.Context, txHash string) (*types.Receipt, error)
}

type MintVerifier interface {
	VerifyMint(ctx context.Context, txHash, wallet string, amountTZS int64) error
}

type SafePayloadBuilder interface {
	Build(wallet string, amountTZS int64) (chain.SafePayload, error)
}
