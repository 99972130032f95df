package request

import (
	"ntzs-issuer/internal/domain/deposit"

	"github.com/google/uuid"
)

type CreateDepositRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	AmountTZS     int64  `json:"amount_tzs" binding:"required,gt=0"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=mobile_money bank"`
	PhoneNumber   string `json:"phone_number,omitempty"`
}

func (r CreateDepositRequest) ToDomain(userID, idempotencyKey uuid.UUID, chainID int64) (*deposit.Deposit, error) {
	wallet, err := deposit.NewWalletAddress(r.WalletAddress)
	if err != nil {
		return nil, err
	}

	amount, err := deposit.NewAmountTZS(r.AmountTZS)
	if err != nil {
		return nil, err
	}

	var phone deposit.PhoneNumber
	if r.PhoneNumber != "" {
		phone, err = deposit.NewPhoneNumber(r.PhoneNumber)
		if err != nil {
			return nil, err
		}
	}

	return deposit.NewDeposit(
		userID,
		wallet,
		chainID,
		amount,
		idempotencyKey,
		deposit.PaymentMethod(r.PaymentMethod),
		phone,
	)
}
