package deposit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testThreshold = int64(9000)

func newTestDeposit(t *testing.T, amount int64) *Deposit {
	t.Helper()

	amt, err := NewAmountTZS(amount)
	require.NoError(t, err)
	wallet, err := NewWalletAddress("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	phone, err := NewPhoneNumber("+255712345678")
	require.NoError(t, err)

	d, err := NewDeposit(uuid.New(), wallet, 8453, amt, uuid.New(), PaymentMethodMobileMoney, phone)
	require.NoError(t, err)
	return d
}

func TestNewDeposit(t *testing.T) {
	t.Run("starts in submitted with a provider order id", func(t *testing.T) {
		d := newTestDeposit(t, 5000)

		assert.Equal(t, StatusSubmitted, d.Status())
		assert.NotEmpty(t, d.ProviderOrderID())
		assert.True(t, d.IsMobileMoney())
	})

	t.Run("mobile money requires a phone number", func(t *testing.T) {
		amt, err := NewAmountTZS(5000)
		require.NoError(t, err)
		wallet, err := NewWalletAddress("0x1111111111111111111111111111111111111111")
		require.NoError(t, err)

		_, err = NewDeposit(uuid.New(), wallet, 8453, amt, uuid.New(), PaymentMethodMobileMoney, "")
		assert.ErrorIs(t, err, ErrPhoneRequired)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		amt, err := NewAmountTZS(5000)
		require.NoError(t, err)
		wallet, err := NewWalletAddress("0x1111111111111111111111111111111111111111")
		require.NoError(t, err)

		_, err = NewDeposit(uuid.New(), wallet, 8453, amt, uuid.New(), PaymentMethod("cash"), "")
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})
}

func TestRouteAfterConfirmation(t *testing.T) {
	testCases := []struct {
		name   string
		amount int64
		want   Status
	}{
		{name: "below threshold routes to automated minting", amount: testThreshold - 1, want: StatusMintPending},
		{name: "exactly at threshold routes to safe path", amount: testThreshold, want: StatusMintRequiresSafe},
		{name: "above threshold routes to safe path", amount: testThreshold + 1, want: StatusMintRequiresSafe},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeposit(t, tc.amount)
			assert.Equal(t, tc.want, d.RouteAfterConfirmation(testThreshold))
		})
	}
}

func TestAmountTZS(t *testing.T) {
	_, err := NewAmountTZS(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewAmountTZS(-100)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	amt, err := NewAmountTZS(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), amt.Int64())
}

func TestPhoneNumber(t *testing.T) {
	valid := []string{"+255712345678", "255712345678", "0712345678", "0655123456", "+255 712 345 678"}
	for _, raw := range valid {
		_, err := NewPhoneNumber(raw)
		assert.NoError(t, err, "expected %q to be valid", raw)
	}

	invalid := []string{"", "071234567", "07123456789", "+254712345678", "0812345678", "not-a-number"}
	for _, raw := range invalid {
		_, err := NewPhoneNumber(raw)
		assert.ErrorIs(t, err, ErrInvalidPhoneNumber, "expected %q to be invalid", raw)
	}
}

func TestWalletAddress(t *testing.T) {
	_, err := NewWalletAddress("0x1111111111111111111111111111111111111111")
	assert.NoError(t, err)

	for _, raw := range []string{"", "0x123", "1111111111111111111111111111111111111111", "0xZZ11111111111111111111111111111111111111"} {
		_, err := NewWalletAddress(raw)
		assert.ErrorIs(t, err, ErrInvalidWallet, "expected %q to be invalid", raw)
	}
}
