package queries

import (
	"context"
	"log/slog"
	"math/big"

	"ntzs-issuer/internal/domain/issuance"
	"ntzs-issuer/internal/pkg/clock"
	"ntzs-issuer/internal/pkg/config"
)

// SupplyReader reports the token's current on-chain total supply in base
// units. The dashboard treats chain reads as best effort.
type SupplyReader interface {
	TotalSupply(ctx context.Context) (*big.Int, error)
}

type StatsStore interface {
	StatusBreakdown(ctx context.Context) ([]StatusAggregate, error)
	KYCApprovedCount(ctx context.Context) (int64, error)
	LedgerDay(ctx context.Context, day issuance.DayKey) (issuance.LedgerEntry, bool, error)
}

type StatsQueries interface {
	Get(ctx context.Context) (*IssuanceStats, error)
}

type statsQueriesImpl struct {
	store      StatsStore
	supply     SupplyReader
	clock      clock.Clock
	defaultCap int64
}

func NewStatsQueries(store StatsStore, supply SupplyReader, clk clock.Clock, cfg config.IssuanceConfig) StatsQueries {
	return &statsQueriesImpl{
		store:      store,
		supply:     supply,
		clock:      clk,
		defaultCap: cfg.DailyCapTZS,
	}
}

func (q *statsQueriesImpl) Get(ctx context.Context) (*IssuanceStats, error) {
	byStatus, err := q.store.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	kycCount, err := q.store.KYCApprovedCount(ctx)
	if err != nil {
		return nil, err
	}

	stats := &IssuanceStats{
		ByStatus:         byStatus,
		KYCApprovedCount: kycCount,
		DayCapTZS:        q.defaultCap,
	}

	day := issuance.DayOf(q.clock.Now())
	entry, ok, err := q.store.LedgerDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if ok {
		stats.DayCapTZS = entry.CapTZS
		stats.DayReservedTZS = entry.ReservedTZS
		stats.DayIssuedTZS = entry.IssuedTZS
		stats.DayUtilization = entry.Utilization()
	}

	supply, err := q.supply.TotalSupply(ctx)
	if err != nil {
		slog.Warn("failed to read on-chain total supply", "error", err)
		stats.OnChainTotalSupply = "unavailable"
	} else {
		stats.OnChainTotalSupply = supply.String()
	}

	return stats, nil
}
