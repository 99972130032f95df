package queries

import (
	"time"

	"github.com/google/uuid"
)

// DepositView is the read-optimized shape of a single deposit, joined with
// its mint attempt when one exists.
type DepositView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	WalletAddress   string     `json:"wallet_address"`
	ChainID         int64      `json:"chain_id"`
	AmountTZS       int64      `json:"amount_tzs"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"payment_method"`
	ProviderOrderID string     `json:"provider_order_id"`
	ProviderRef     *string    `json:"provider_ref,omitempty"`
	TxHash          *string    `json:"tx_hash,omitempty"`
	MintStatus      *string    `json:"mint_status,omitempty"`
	MintError       *string    `json:"mint_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	FiatConfirmedAt *time.Time `json:"fiat_confirmed_at,omitempty"`
}

// DepositListItem is the trimmed per-row shape for user listings.
type DepositListItem struct {
	ID        uuid.UUID `json:"id"`
	AmountTZS int64     `json:"amount_tzs"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusAggregate is one row of the per-status breakdown.
type StatusAggregate struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	SumTZS int64  `json:"sum_tzs"`
}

// IssuanceStats is the oversight dashboard payload.
type IssuanceStats struct {
	ByStatus           []StatusAggregate `json:"by_status"`
	KYCApprovedCount   int64             `json:"kyc_approved_count"`
	DayCapTZS          int64             `json:"day_cap_tzs"`
	DayReservedTZS     int64             `json:"day_reserved_tzs"`
	DayIssuedTZS       int64             `json:"day_issued_tzs"`
	DayUtilization     float64           `json:"day_utilization"`
	OnChainTotalSupply string            `json:"on_chain_total_supply"`
}
