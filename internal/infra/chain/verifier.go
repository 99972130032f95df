package chain

import (
	"context"
	"math/big"

	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrReceiptNotFound    = errs.New("transaction receipt not found on chain")
	ErrReceiptReverted    = errs.New("transaction reverted")
	ErrNoMatchingTransfer = errs.New("receipt contains no matching mint transfer event")
)

// MintVerifier checks externally executed mints against their on-chain
// receipts. It trusts only event logs emitted by the token contract itself.
type MintVerifier struct {
	client   Backend
	token    common.Address
	decimals int
}

func NewMintVerifier(client Backend, cfg config.ChainConfig) *MintVerifier {
	return &MintVerifier{
		client:   client,
		token:    common.HexToAddress(cfg.TokenContract),
		decimals: cfg.TokenDecimals,
	}
}

// VerifyMint fetches the receipt for txHash and confirms it minted exactly
// amountTZS (scaled to base units) to the wallet.
func (v *MintVerifier) VerifyMint(ctx context.Context, txHash, wallet string, amountTZS int64) error {
	receipt, err := v.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to fetch receipt"), ErrReceiptNotFound)
	}

	expected := ScaleAmount(amountTZS, v.decimals)
	return VerifyMintReceipt(receipt, v.token, common.HexToAddress(wallet), expected)
}

// VerifyMintReceipt checks a receipt for a Transfer(0x0 -> wallet, amount)
// event emitted by the token contract. ERC-20 mints always transfer from the
// zero address, so anything else in the receipt is ignored.
func VerifyMintReceipt(receipt *types.Receipt, token, wallet common.Address, amount *big.Int) error {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return ErrReceiptReverted
	}

	for _, log := range receipt.Logs {
		if log.Address != token {
			continue
		}
		if len(log.Topics) != 3 || log.Topics[0] != transferTopic {
			continue
		}
		from := common.BytesToAddress(log.Topics[1].Bytes())
		to := common.BytesToAddress(log.Topics[2].Bytes())
		if from != zeroAddress || to != wallet {
			continue
		}
		value := new(big.Int).SetBytes(log.Data)
		if value.Cmp(amount) == 0 {
			return nil
		}
	}

	return ErrNoMatchingTransfer
}
