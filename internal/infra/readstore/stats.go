package readstore

import (
	"context"
	"errors"

	"ntzs-issuer/internal/domain/issuance"
	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/infra/repository"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type StatsStore interface {
	StatusBreakdown(ctx context.Context) ([]queries.StatusAggregate, error)
	KYCApprovedCount(ctx context.Context) (int64, error)
	LedgerDay(ctx context.Context, day issuance.DayKey) (issuance.LedgerEntry, bool, error)
}

type StatsReadStore struct {
	db repository.DBTX
}

func NewStatsReadStore(db repository.DBTX) *StatsReadStore {
	return &StatsReadStore{db: db}
}

func (r *StatsReadStore) StatusBreakdown(ctx context.Context) ([]queries.StatusAggregate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(amount_tzs), 0)
		FROM deposits
		GROUP BY status
		ORDER BY status`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate deposit statuses", err)
	}
	defer rows.Close()

	var result []queries.StatusAggregate
	for rows.Next() {
		var agg queries.StatusAggregate
		if err := rows.Scan(&agg.Status, &agg.Count, &agg.SumTZS); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status aggregate", err)
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status aggregates", err)
	}

	return result, nil
}

func (r *StatsReadStore) KYCApprovedCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM kyc_records WHERE status = 'approved'`,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count approved KYC records", err)
	}
	return count, nil
}

// LedgerDay returns ok=false when no deposits have touched today's budget yet.
func (r *StatsReadStore) LedgerDay(ctx context.Context, day issuance.DayKey) (issuance.LedgerEntry, bool, error) {
	var entry issuance.LedgerEntry
	var dayStr string

	err := r.db.QueryRow(ctx, `
		SELECT day::text, cap_tzs, reserved_tzs, issued_tzs
		FROM daily_issuance_ledger WHERE day = $1`,
		day.String(),
	).Scan(&dayStr, &entry.CapTZS, &entry.ReservedTZS, &entry.IssuedTZS)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issuance.LedgerEntry{}, false, nil
		}
		return issuance.LedgerEntry{}, false, infra.WrapRepoErr("failed to load ledger day", err)
	}

	entry.Day = issuance.DayKey(dayStr)
	return entry, true, nil
}
