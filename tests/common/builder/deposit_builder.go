//go:build unit || e2e

package builder

import (
	"time"

	domdeposit "ntzs-issuer/internal/domain/deposit"
	reqdto "ntzs-issuer/internal/handler/dto/request"
	"ntzs-issuer/internal/usecase/queries"

	"github.com/google/uuid"
)

type DepositBuilder struct {
	UserID        uuid.UUID
	WalletAddress string
	ChainID       int64
	AmountTZS     int64
	PaymentMethod string
	PhoneNumber   string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewDepositBuilder() *DepositBuilder {
	now := time.Now().UTC()
	return &DepositBuilder{
		UserID:        uuid.New(),
		WalletAddress: "0x1111111111111111111111111111111111111111",
		ChainID:       8453,
		AmountTZS:     5000,
		PaymentMethod: string(domdeposit.PaymentMethodMobileMoney),
		PhoneNumber:   "255712345678",
		Status:        string(domdeposit.StatusSubmitted),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Build methods
func (b *DepositBuilder) BuildDomain(idempotencyKey uuid.UUID) (*domdeposit.Deposit, error) {
	req := b.BuildCreateRequestDTO()
	return req.ToDomain(b.UserID, idempotencyKey, b.ChainID)
}

func (b *DepositBuilder) BuildCreateRequestDTO() reqdto.CreateDepositRequest {
	return reqdto.CreateDepositRequest{
		WalletAddress: b.WalletAddress,
		AmountTZS:     b.AmountTZS,
		PaymentMethod: b.PaymentMethod,
		PhoneNumber:   b.PhoneNumber,
	}
}

func (b *DepositBuilder) BuildView() *queries.DepositView {
	return &queries.DepositView{
		ID:              uuid.New(),
		UserID:          b.UserID,
		WalletAddress:   b.WalletAddress,
		ChainID:         b.ChainID,
		AmountTZS:       b.AmountTZS,
		Status:          b.Status,
		PaymentMethod:   b.PaymentMethod,
		ProviderOrderID: uuid.NewString(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *DepositBuilder) BuildListItem() *queries.DepositListItem {
	return &queries.DepositListItem{
		ID:        uuid.New(),
		AmountTZS: b.AmountTZS,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *DepositBuilder) WithUserID(userID uuid.UUID) *DepositBuilder {
	b.UserID = userID
	return b
}

func (b *DepositBuilder) WithWalletAddress(addr string) *DepositBuilder {
	b.WalletAddress = addr
	return b
}

func (b *DepositBuilder) WithAmountTZS(amount int64) *DepositBuilder {
	b.AmountTZS = amount
	return b
}

func (b *DepositBuilder) WithPaymentMethod(method string) *DepositBuilder {
	b.PaymentMethod = method
	return b
}

func (b *DepositBuilder) WithStatus(status string) *DepositBuilder {
	b.Status = status
	return b
}

func (b *DepositBuilder) AsBankTransfer() *DepositBuilder {
	b.PaymentMethod = string(domdeposit.PaymentMethodBank)
	b.PhoneNumber = ""
	return b
}

func (b *DepositBuilder) AsSafeMintAmount() *DepositBuilder {
	b.AmountTZS = 9000
	return b
}
