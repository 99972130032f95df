package deposit

import (
	"time"

	"github.com/google/uuid"
)

// MintTxStatus mirrors a subset of the deposit lifecycle on the on-chain
// attempt record. Vocabulary follows the usual mint pipeline states.
type MintTxStatus string

const (
	MintTxCreated      MintTxStatus = "created"
	MintTxProcessing   MintTxStatus = "processing"
	MintTxSubmitted    MintTxStatus = "submitted"
	MintTxMinted       MintTxStatus = "minted"
	MintTxFailed       MintTxStatus = "failed"
	MintTxCapExceeded  MintTxStatus = "cap_exceeded"
	MintTxPendingRetry MintTxStatus = "pending_retry"
)

// MintTransaction is the at-most-one on-chain attempt record per deposit.
// It is upserted when an attempt begins and updated in place as it advances.
type MintTransaction struct {
	DepositID       uuid.UUID
	ChainID         int64
	ContractAddress string
	TxHash          *string
	Status          MintTxStatus
	ErrorMessage    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
