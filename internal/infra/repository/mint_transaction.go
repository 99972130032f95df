package repository

import (
	"context"
	"errors"
	"time"

	"ntzs-issuer/internal/domain/deposit"
	"ntzs-issuer/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MintTransactionRepository struct {
	db DBTX
}

func NewMintTransactionRepository(db DBTX) *MintTransactionRepository {
	return &MintTransactionRepository{db: db}
}

// BeginAttempt upserts the attempt record when the orchestrator picks a
// deposit up. A retry reuses the existing row: the previous error is cleared
// and the status reset.
func (r *MintTransactionRepository) BeginAttempt(ctx context.Context, db DBTX, depositID uuid.UUID, chainID int64, contract string) error {
	_, err := db.Exec(ctx, `
		INSERT INTO mint_transactions (deposit_id, chain_id, contract_address, status)
		VALUES ($1, $2, $3, 'processing')
		ON CONFLICT (deposit_id) DO UPDATE
		SET status = 'processing', error_message = NULL, tx_hash = NULL, updated_at = now()`,
		depositID, chainID, contract,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to begin mint attempt", err)
	}
	return nil
}

func (r *MintTransactionRepository) SetSubmitted(ctx context.Context, db DBTX, depositID uuid.UUID, txHash string) error {
	return r.update(ctx, db, depositID, deposit.MintTxSubmitted, &txHash, nil)
}

func (r *MintTransactionRepository) SetMinted(ctx context.Context, db DBTX, depositID uuid.UUID, txHash string) error {
	return r.update(ctx, db, depositID, deposit.MintTxMinted, &txHash, nil)
}

func (r *MintTransactionRepository) SetFailed(ctx context.Context, db DBTX, depositID uuid.UUID, errMsg string) error {
	return r.update(ctx, db, depositID, deposit.MintTxFailed, nil, &errMsg)
}

// SetCapExceeded records the soft failure; the deposit goes back to the
// pending queue rather than the failed bucket.
func (r *MintTransactionRepository) SetCapExceeded(ctx context.Context, db DBTX, depositID uuid.UUID) error {
	return r.update(ctx, db, depositID, deposit.MintTxCapExceeded, nil, nil)
}

func (r *MintTransactionRepository) SetPendingRetry(ctx context.Context, db DBTX, depositID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		UPDATE mint_transactions
		SET status = 'pending_retry', error_message = NULL, updated_at = now()
		WHERE deposit_id = $1`,
		depositID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark mint transaction for retry", err)
	}
	return nil
}

func (r *MintTransactionRepository) FindByDepositID(ctx context.Context, db DBTX, depositID uuid.UUID) (*deposit.MintTransaction, error) {
	var (
		tx     deposit.MintTransaction
		status string
	)

	err := db.QueryRow(ctx, `
		SELECT deposit_id, chain_id, contract_address, tx_hash, status, error_message, created_at, updated_at
		FROM mint_transactions WHERE deposit_id = $1`,
		depositID,
	).Scan(&tx.DepositID, &tx.ChainID, &tx.ContractAddress, &tx.TxHash, &status, &tx.ErrorMessage, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("mint transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find mint transaction", err)
	}

	tx.Status = deposit.MintTxStatus(status)
	return &tx, nil
}

func (r *MintTransactionRepository) update(ctx context.Context, db DBTX, depositID uuid.UUID, status deposit.MintTxStatus, txHash, errMsg *string) error {
	_, err := db.Exec(ctx, `
		UPDATE mint_transactions
		SET status = $2,
		    tx_hash = COALESCE($3, tx_hash),
		    error_message = $4,
		    updated_at = $5
		WHERE deposit_id = $1`,
		depositID, string(status), txHash, errMsg, time.Now().UTC(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update mint transaction", err)
	}
	return nil
}
