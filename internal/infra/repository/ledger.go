package repository

import (
	"context"
	"errors"

	"ntzs-issuer/internal/domain/issuance"
	"ntzs-issuer/internal/infra"

	"github.com/jackc/pgx/v5"
)

// IssuanceLedgerRepository owns the only truly shared mutable state in the
// pipeline. Every mutation is a single conditional statement; a read-then-write
// against this table is never acceptable because claimants run as separate
// processes.
type IssuanceLedgerRepository struct {
	db DBTX
}

func NewIssuanceLedgerRepository(db DBTX) *IssuanceLedgerRepository {
	return &IssuanceLedgerRepository{db: db}
}

// EnsureDay lazily creates the day row. Concurrent callers are safe: the
// conflict target swallows the race.
func (r *IssuanceLedgerRepository) EnsureDay(ctx context.Context, db DBTX, day issuance.DayKey, defaultCap int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO daily_issuance_ledger (day, cap_tzs)
		VALUES ($1, $2)
		ON CONFLICT (day) DO NOTHING`,
		day.String(), defaultCap,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to ensure ledger day", err)
	}
	return nil
}

// Reserve atomically holds amount against the day's cap. The WHERE clause is
// the cap check: the update only happens if the post-increment sum stays
// within budget, so two concurrent reservations can never jointly overshoot.
func (r *IssuanceLedgerRepository) Reserve(ctx context.Context, db DBTX, day issuance.DayKey, amount int64) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE daily_issuance_ledger
		SET reserved_tzs = reserved_tzs + $2
		WHERE day = $1 AND reserved_tzs + issued_tzs + $2 <= cap_tzs`,
		day.String(), amount,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve issuance budget", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Commit moves a successful mint's amount from reserved to issued.
func (r *IssuanceLedgerRepository) Commit(ctx context.Context, db DBTX, day issuance.DayKey, amount int64) error {
	_, err := db.Exec(ctx, `
		UPDATE daily_issuance_ledger
		SET issued_tzs = issued_tzs + $2,
		    reserved_tzs = GREATEST(reserved_tzs - $2, 0)
		WHERE day = $1`,
		day.String(), amount,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to commit issuance budget", err)
	}
	return nil
}

// Release returns a failed attempt's hold to the budget, floored at zero.
func (r *IssuanceLedgerRepository) Release(ctx context.Context, db DBTX, day issuance.DayKey, amount int64) error {
	_, err := db.Exec(ctx, `
		UPDATE daily_issuance_ledger
		SET reserved_tzs = GREATEST(reserved_tzs - $2, 0)
		WHERE day = $1`,
		day.String(), amount,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release issuance budget", err)
	}
	return nil
}

func (r *IssuanceLedgerRepository) GetDay(ctx context.Context, db DBTX, day issuance.DayKey) (issuance.LedgerEntry, error) {
	var entry issuance.LedgerEntry
	var dayStr string

	err := db.QueryRow(ctx, `
		SELECT day::text, cap_tzs, reserved_tzs, issued_tzs
		FROM daily_issuance_ledger WHERE day = $1`,
		day.String(),
	).Scan(&dayStr, &entry.CapTZS, &entry.ReservedTZS, &entry.IssuedTZS)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issuance.LedgerEntry{}, infra.WrapRepoErr("ledger day not found", err, infra.KindNotFound)
		}
		return issuance.LedgerEntry{}, infra.WrapRepoErr("failed to load ledger day", err)
	}

	entry.Day = issuance.DayKey(dayStr)
	return entry, nil
}
