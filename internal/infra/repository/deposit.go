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

const depositColumns = `
	id, user_id, wallet_address, chain_id, amount_tzs, status, idempotency_key,
	payment_method, phone_number, provider_order_id, provider_ref,
	created_at, updated_at, fiat_confirmed_at`

type DepositRepository struct {
	db DBTX
}

func NewDepositRepository(db DBTX) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(ctx context.Context, db DBTX, d *deposit.Deposit) error {
	_, err := db.Exec(ctx, `
		INSERT INTO deposits (
			id, user_id, wallet_address, chain_id, amount_tzs, status,
			idempotency_key, payment_method, phone_number, provider_order_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID(), d.UserID(), d.Wallet().String(), d.ChainID(), d.Amount().Int64(),
		d.Status().String(), d.IdempotencyKey(), string(d.PaymentMethod()),
		d.PhoneNumber().String(), d.ProviderOrderID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create deposit", err)
	}
	return nil
}

func (r *DepositRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*deposit.Deposit, error) {
	row := db.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE id = $1`, id)
	d, err := scanDeposit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("deposit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deposit by id", err)
	}
	return d, nil
}

func (r *DepositRepository) FindByUserAndKey(ctx context.Context, db DBTX, userID, key uuid.UUID) (*deposit.Deposit, error) {
	row := db.QueryRow(ctx, `
		SELECT `+depositColumns+` FROM deposits
		WHERE user_id = $1 AND idempotency_key = $2 AND status <> 'cancelled'`,
		userID, key,
	)
	d, err := scanDeposit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("deposit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deposit by idempotency key", err)
	}
	return d, nil
}

func (r *DepositRepository) FindByProviderOrderID(ctx context.Context, db DBTX, orderID string) (*deposit.Deposit, error) {
	row := db.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE provider_order_id = $1`, orderID)
	d, err := scanDeposit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("deposit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deposit by provider order id", err)
	}
	return d, nil
}

// CompareAndSetStatus performs a guarded transition. Zero rows affected means
// another confirmation source already advanced the deposit; callers treat
// false as "already handled", not as an error.
func (r *DepositRepository) CompareAndSetStatus(ctx context.Context, db DBTX, id uuid.UUID, from []deposit.Status, to deposit.Status) (bool, error) {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = s.String()
	}

	tag, err := db.Exec(ctx, `
		UPDATE deposits SET status = $1, updated_at = now()
		WHERE id = $2 AND status = ANY($3)`,
		to.String(), id, fromStrs,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition deposit status", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ConfirmFiat is the CAS used by all three confirmation call sites: it
// advances the deposit out of a confirmable state, records the provider
// reference and stamps the confirmation time, all in one statement.
func (r *DepositRepository) ConfirmFiat(ctx context.Context, db DBTX, id uuid.UUID, to deposit.Status, providerRef string) (bool, error) {
	confirmable := deposit.ConfirmableStatuses()
	fromStrs := make([]string, len(confirmable))
	for i, s := range confirmable {
		fromStrs[i] = s.String()
	}

	tag, err := db.Exec(ctx, `
		UPDATE deposits
		SET status = $1, provider_ref = $2, fiat_confirmed_at = now(), updated_at = now()
		WHERE id = $3 AND status = ANY($4)`,
		to.String(), providerRef, id, fromStrs,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm fiat payment", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClaimNextPending claims the oldest mint-eligible deposit for exactly one
// caller. The FOR UPDATE SKIP LOCKED subquery lets concurrent claimers move
// on instead of queueing behind each other's row locks. Returns nil when no
// work is available.
func (r *DepositRepository) ClaimNextPending(ctx context.Context, db DBTX) (*deposit.Deposit, error) {
	row := db.QueryRow(ctx, `
		UPDATE deposits SET status = 'mint_processing', updated_at = now()
		WHERE id = (
			SELECT id FROM deposits
			WHERE status = 'mint_pending'
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+depositColumns,
	)
	d, err := scanDeposit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to claim pending deposit", err)
	}
	return d, nil
}

// ListStuckSubmitted returns deposits awaiting fiat confirmation past the
// reconciliation grace period, oldest first.
func (r *DepositRepository) ListStuckSubmitted(ctx context.Context, db DBTX, olderThan time.Time, limit int) ([]*deposit.Deposit, error) {
	rows, err := db.Query(ctx, `
		SELECT `+depositColumns+` FROM deposits
		WHERE status = 'submitted' AND created_at < $1
		ORDER BY created_at
		LIMIT $2`,
		olderThan, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stuck deposits", err)
	}
	defer rows.Close()

	var result []*deposit.Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan stuck deposit", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stuck deposits", err)
	}
	return result, nil
}

func scanDeposit(row pgx.Row) (*deposit.Deposit, error) {
	var (
		id, userID, idempotencyKey    uuid.UUID
		wallet, status, method, phone string
		providerOrderID, providerRef  string
		chainID, amountTZS            int64
		createdAt, updatedAt          time.Time
		fiatConfirmedAt               *time.Time
	)

	err := row.Scan(
		&id, &userID, &wallet, &chainID, &amountTZS, &status, &idempotencyKey,
		&method, &phone, &providerOrderID, &providerRef,
		&createdAt, &updatedAt, &fiatConfirmedAt,
	)
	if err != nil {
		return nil, err
	}

	return deposit.ReconstructDeposit(
		id, userID,
		deposit.WalletAddress(wallet),
		chainID,
		deposit.AmountTZS(amountTZS),
		deposit.Status(status),
		idempotencyKey,
		deposit.PaymentMethod(method),
		deposit.PhoneNumber(phone),
		providerOrderID, providerRef,
		createdAt, updatedAt,
		fiatConfirmedAt,
	), nil
}
