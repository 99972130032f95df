//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestDeposit inserts a deposit row directly, bypassing the API. Useful
// for seeding a specific pipeline state.
func CreateTestDeposit(t *testing.T, db DBLike, userID uuid.UUID, amountTZS int64, status string) uuid.UUID {
	t.Helper()

	depositID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO deposits (id, user_id, wallet_address, chain_id, amount_tzs, status,
		                      idempotency_key, payment_method, phone_number, provider_order_id)
		VALUES ($1, $2, '0x1111111111111111111111111111111111111111', 8453, $3, $4,
		        $5, 'mobile_money', '255712345678', $6)`,
		depositID, userID, amountTZS, status, uuid.New(), uuid.NewString())
	require.NoError(t, err)

	return depositID
}

// CreateTestLedgerDay inserts today's issuance ledger row with the given cap.
func CreateTestLedgerDay(t *testing.T, db DBLike, capTZS int64) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO daily_issuance_ledger (day, cap_tzs)
		VALUES ((now() AT TIME ZONE 'UTC')::date, $1)
		ON CONFLICT (day) DO UPDATE SET cap_tzs = EXCLUDED.cap_tzs`,
		capTZS)
	require.NoError(t, err)
}

// GetDepositStatus reads the current pipeline status of a deposit.
func GetDepositStatus(t *testing.T, db DBLike, depositID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM deposits WHERE id = $1", depositID).Scan(&status)
	require.NoError(t, err)
	return status
}

// GetLedgerDay reads today's reserved and issued totals.
func GetLedgerDay(t *testing.T, db DBLike) (reserved, issued int64) {
	t.Helper()

	err := db.QueryRow(context.Background(), `
		SELECT reserved_tzs, issued_tzs FROM daily_issuance_ledger
		WHERE day = (now() AT TIME ZONE 'UTC')::date`).Scan(&reserved, &issued)
	require.NoError(t, err)
	return reserved, issued
}

// GetProviderOrderID reads the provider order reference of a deposit.
func GetProviderOrderID(t *testing.T, db DBLike, depositID uuid.UUID) string {
	t.Helper()

	var orderID string
	err := db.QueryRow(context.Background(),
		"SELECT provider_order_id FROM deposits WHERE id = $1", depositID).Scan(&orderID)
	require.NoError(t, err)
	return orderID
}

// AgeDeposit backdates a deposit's creation time, for reconciliation tests.
func AgeDeposit(t *testing.T, db DBLike, depositID uuid.UUID, age time.Duration) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE deposits SET created_at = now() - $2::interval WHERE id = $1",
		depositID, fmt.Sprintf("%d seconds", int(age.Seconds())))
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
