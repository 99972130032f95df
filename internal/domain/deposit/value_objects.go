package deposit

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive whole TZS value")
	ErrInvalidPhoneNumber = errors.New("invalid Tanzanian mobile number")
	ErrInvalidWallet      = errors.New("invalid wallet address")
)

// Tanzanian mobile numbers: +255 / 255 / 0 prefix followed by a 6 or 7
// network code and eight digits.
var tzPhonePattern = regexp.MustCompile(`^(\+?255|0)[67]\d{8}$`)

var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// AmountTZS is a deposit amount in whole Tanzanian Shillings. Scaling to the
// token's decimal precision happens only at the mint executor boundary.
type AmountTZS int64

func NewAmountTZS(v int64) (AmountTZS, error) {
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return AmountTZS(v), nil
}

func (a AmountTZS) Int64() int64 {
	return int64(a)
}

type PhoneNumber string

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if !tzPhonePattern.MatchString(trimmed) {
		return "", ErrInvalidPhoneNumber
	}
	return PhoneNumber(trimmed), nil
}

func (p PhoneNumber) String() string {
	return string(p)
}

type WalletAddress string

func NewWalletAddress(raw string) (WalletAddress, error) {
	trimmed := strings.TrimSpace(raw)
	if !walletPattern.MatchString(trimmed) {
		return "", ErrInvalidWallet
	}
	return WalletAddress(trimmed), nil
}

func (w WalletAddress) String() string {
	return string(w)
}

type PaymentMethod string

const (
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodBank        PaymentMethod = "bank"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodMobileMoney || m == PaymentMethodBank
}
