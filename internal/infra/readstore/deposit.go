package readstore

import (
	"context"
	"errors"

	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DepositStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.DepositView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.DepositListItem, error)
}

type DepositReadStore struct {
	db repository.DBTX
}

func NewDepositReadStore(db repository.DBTX) *DepositReadStore {
	return &DepositReadStore{db: db}
}

func (r *DepositReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DepositView, error) {
	var v queries.DepositView

	err := r.db.QueryRow(ctx, `
		SELECT d.id, d.user_id, d.wallet_address, d.chain_id, d.amount_tzs, d.status,
		       d.payment_method, d.provider_order_id, d.provider_ref,
		       mt.tx_hash, mt.status, mt.error_message,
		       d.created_at, d.updated_at, d.fiat_confirmed_at
		FROM deposits d
		LEFT JOIN mint_transactions mt ON mt.deposit_id = d.id
		WHERE d.id = $1`,
		id,
	).Scan(
		&v.ID, &v.UserID, &v.WalletAddress, &v.ChainID, &v.AmountTZS, &v.Status,
		&v.PaymentMethod, &v.ProviderOrderID, &v.ProviderRef,
		&v.TxHash, &v.MintStatus, &v.MintError,
		&v.CreatedAt, &v.UpdatedAt, &v.FiatConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("deposit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deposit by ID", err)
	}

	return &v, nil
}

func (r *DepositReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.DepositListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, amount_tzs, status, created_at
		FROM deposits
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deposits by user", err)
	}
	defer rows.Close()

	var result []*queries.DepositListItem
	for rows.Next() {
		var item queries.DepositListItem
		if err := rows.Scan(&item.ID, &item.AmountTZS, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan deposit row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate deposit rows", err)
	}

	return result, nil
}
