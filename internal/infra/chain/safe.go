package chain

import (
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SafePayload is the transaction an operator loads into the multisig wallet
// for high-value mints. Value is always zero; the mint is pure calldata.
type SafePayload struct {
	SafeAddress string `json:"safe_address"`
	To          string `json:"to"`
	Value       string `json:"value"`
	Data        string `json:"data"`
}

// SafePayloadBuilder renders unsigned mint calldata for the multisig path.
type SafePayloadBuilder struct {
	safe     common.Address
	token    common.Address
	decimals int
}

func NewSafePayloadBuilder(cfg config.ChainConfig) *SafePayloadBuilder {
	return &SafePayloadBuilder{
		safe:     common.HexToAddress(cfg.SafeAddress),
		token:    common.HexToAddress(cfg.TokenContract),
		decimals: cfg.TokenDecimals,
	}
}

func (b *SafePayloadBuilder) Build(wallet string, amountTZS int64) (SafePayload, error) {
	amount := ScaleAmount(amountTZS, b.decimals)

	data, err := tokenABI.Pack("mint", common.HexToAddress(wallet), amount)
	if err != nil {
		return SafePayload{}, errs.Wrap(err, "failed to pack mint calldata")
	}

	return SafePayload{
		SafeAddress: b.safe.Hex(),
		To:          b.token.Hex(),
		Value:       "0",
		Data:        hexutil.Encode(data),
	}, nil
}
