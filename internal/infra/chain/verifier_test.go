package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testToken  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testWallet = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func mintLog(emitter, from, to common.Address, amount *big.Int) *types.Log {
	return &types.Log{
		Address: emitter,
		Topics: []common.Hash{
			transferTopic,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
		},
		Data: common.LeftPadBytes(amount.Bytes(), 32),
	}
}

func TestVerifyMintReceipt(t *testing.T) {
	amount := ScaleAmount(9000, 18)

	tests := []struct {
		name    string
		receipt *types.Receipt
		wantErr error
	}{
		{
			name: "valid mint transfer",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusSuccessful,
				Logs:   []*types.Log{mintLog(testToken, zeroAddress, testWallet, amount)},
			},
			wantErr: nil,
		},
		{
			name: "reverted receipt",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusFailed,
				Logs:   []*types.Log{mintLog(testToken, zeroAddress, testWallet, amount)},
			},
			wantErr: ErrReceiptReverted,
		},
		{
			name: "transfer from non-zero address is not a mint",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusSuccessful,
				Logs:   []*types.Log{mintLog(testToken, testWallet, testWallet, amount)},
			},
			wantErr: ErrNoMatchingTransfer,
		},
		{
			name: "transfer to a different wallet",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusSuccessful,
				Logs: []*types.Log{mintLog(testToken, zeroAddress,
					common.HexToAddress("0x3333333333333333333333333333333333333333"), amount)},
			},
			wantErr: ErrNoMatchingTransfer,
		},
		{
			name: "event from an impostor contract",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusSuccessful,
				Logs: []*types.Log{mintLog(
					common.HexToAddress("0x4444444444444444444444444444444444444444"),
					zeroAddress, testWallet, amount)},
			},
			wantErr: ErrNoMatchingTransfer,
		},
		{
			name: "wrong amount",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusSuccessful,
				Logs:   []*types.Log{mintLog(testToken, zeroAddress, testWallet, ScaleAmount(8999, 18))},
			},
			wantErr: ErrNoMatchingTransfer,
		},
		{
			name: "no logs at all",
			receipt: &types.Receipt{
				Status: types.ReceiptStatusSuccessful,
			},
			wantErr: ErrNoMatchingTransfer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyMintReceipt(tt.receipt, testToken, testWallet, amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestVerifyMintReceipt_MatchAmongManyLogs(t *testing.T) {
	amount := ScaleAmount(15000, 18)
	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			mintLog(testToken, testWallet, zeroAddress, amount),
			{Address: testToken, Topics: []common.Hash{transferTopic}},
			mintLog(testToken, zeroAddress, testWallet, amount),
		},
	}

	assert.NoError(t, VerifyMintReceipt(receipt, testToken, testWallet, amount))
}

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountTZS int64
		decimals  int
		want      string
	}{
		{"18 decimals", 9000, 18, "9000000000000000000000"},
		{"zero decimals", 9000, 0, "9000"},
		{"6 decimals", 1, 6, "1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleAmount(tt.amountTZS, tt.decimals).String())
		})
	}
}

func TestSafePayloadBuilder(t *testing.T) {
	builder := &SafePayloadBuilder{
		safe:     common.HexToAddress("0x5555555555555555555555555555555555555555"),
		token:    testToken,
		decimals: 18,
	}

	payload, err := builder.Build(testWallet.Hex(), 9000)
	require.NoError(t, err)

	assert.Equal(t, testToken.Hex(), payload.To)
	assert.Equal(t, "0", payload.Value)

	expectedData, err := tokenABI.Pack("mint", testWallet, ScaleAmount(9000, 18))
	require.NoError(t, err)
	assert.Equal(t, "0x"+common.Bytes2Hex(expectedData), payload.Data)
}
