package response

import (
	"time"

	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DepositResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	WalletAddress   string     `json:"walletAddress"`
	ChainID         int64      `json:"chainId"`
	AmountTZS       int64      `json:"amountTzs"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	ProviderOrderID string     `json:"providerOrderId"`
	ProviderRef     *string    `json:"providerRef,omitempty"`
	TxHash          *string    `json:"txHash,omitempty"`
	MintStatus      *string    `json:"mintStatus,omitempty"`
	MintError       *string    `json:"mintError,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	FiatConfirmedAt *time.Time `json:"fiatConfirmedAt,omitempty"`
}

type DepositListResponse struct {
	ID        uuid.UUID `json:"id"`
	AmountTZS int64     `json:"amountTzs"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromDepositView(view *queries.DepositView) *DepositResponse {
	var resp DepositResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromDepositListItems(items []*queries.DepositListItem) []*DepositListResponse {
	result := make([]*DepositListResponse, len(items))
	for i, item := range items {
		var resp DepositListResponse
		_ = copier.Copy(&resp, item)
		result[i] = &resp
	}
	return result
}

type SafePayloadResponse struct {
	SafeAddress string `json:"safeAddress"`
	To          string `json:"to"`
	Value       string `json:"value"`
	Data        string `json:"data"`
}

func FromSafePayload(p chain.SafePayload) *SafePayloadResponse {
	var resp SafePayloadResponse
	_ = copier.Copy(&resp, p)
	return &resp
}

type MintRunResponse struct {
	Claimed     int `json:"claimed"`
	Minted      int `json:"minted"`
	Failed      int `json:"failed"`
	CapExceeded int `json:"capExceeded"`
}

func FromMintRunSummary(summary commands.MintRunSummary) *MintRunResponse {
	var resp MintRunResponse
	_ = copier.Copy(&resp, summary)
	return &resp
}

type StatusAggregateResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	SumTZS int64  `json:"sumTzs"`
}

type StatsResponse struct {
	ByStatus           []StatusAggregateResponse `json:"byStatus"`
	KYCApprovedCount   int64                     `json:"kycApprovedCount"`
	DayCapTZS          int64                     `json:"dayCapTzs"`
	DayReservedTZS     int64                     `json:"dayReservedTzs"`
	DayIssuedTZS       int64                     `json:"dayIssuedTzs"`
	DayUtilization     float64                   `json:"dayUtilization"`
	OnChainTotalSupply string                    `json:"onChainTotalSupply"`
}

func FromIssuanceStats(stats *queries.IssuanceStats) *StatsResponse {
	var resp StatsResponse
	_ = copier.Copy(&resp, stats)
	return &resp
}
