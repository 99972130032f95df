package deposit

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrPhoneRequired        = errors.New("phone number required for mobile money deposits")
)

type Deposit struct {
	id              uuid.UUID
	userID          uuid.UUID
	wallet          WalletAddress
	chainID         int64
	amount          AmountTZS
	status          Status
	idempotencyKey  uuid.UUID
	paymentMethod   PaymentMethod
	phoneNumber     PhoneNumber
	providerOrderID string
	providerRef     string
	createdAt       time.Time
	updatedAt       time.Time
	fiatConfirmedAt *time.Time
}

func NewDeposit(
	userID uuid.UUID,
	wallet WalletAddress,
	chainID int64,
	amount AmountTZS,
	idempotencyKey uuid.UUID,
	method PaymentMethod,
	phone PhoneNumber,
) (*Deposit, error) {
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if method == PaymentMethodMobileMoney && phone == "" {
		return nil, ErrPhoneRequired
	}

	return &Deposit{
		id:             uuid.New(),
		userID:         userID,
		wallet:         wallet,
		chainID:        chainID,
		amount:         amount,
		status:         StatusSubmitted,
		idempotencyKey: idempotencyKey,
		paymentMethod:  method,
		phoneNumber:    phone,
		// Provider order id doubles as the correlation key for webhook and
		// poller lookups.
		providerOrderID: uuid.NewString(),
	}, nil
}

func ReconstructDeposit(
	id, userID uuid.UUID,
	wallet WalletAddress,
	chainID int64,
	amount AmountTZS,
	status Status,
	idempotencyKey uuid.UUID,
	method PaymentMethod,
	phone PhoneNumber,
	providerOrderID, providerRef string,
	createdAt, updatedAt time.Time,
	fiatConfirmedAt *time.Time,
) *Deposit {
	return &Deposit{
		id:              id,
		userID:          userID,
		wallet:          wallet,
		chainID:         chainID,
		amount:          amount,
		status:          status,
		idempotencyKey:  idempotencyKey,
		paymentMethod:   method,
		phoneNumber:     phone,
		providerOrderID: providerOrderID,
		providerRef:     providerRef,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		fiatConfirmedAt: fiatConfirmedAt,
	}
}

// RouteAfterConfirmation decides where a confirmed payment goes: amounts at
// or above the threshold require a multisig-executed mint, everything below
// is eligible for automated minting.
func (d *Deposit) RouteAfterConfirmation(safeThreshold int64) Status {
	if d.amount.Int64() >= safeThreshold {
		return StatusMintRequiresSafe
	}
	return StatusMintPending
}

func (d *Deposit) ID() uuid.UUID                { return d.id }
func (d *Deposit) UserID() uuid.UUID            { return d.userID }
func (d *Deposit) Wallet() WalletAddress        { return d.wallet }
func (d *Deposit) ChainID() int64               { return d.chainID }
func (d *Deposit) Amount() AmountTZS            { return d.amount }
func (d *Deposit) Status() Status               { return d.status }
func (d *Deposit) IdempotencyKey() uuid.UUID    { return d.idempotencyKey }
func (d *Deposit) PaymentMethod() PaymentMethod { return d.paymentMethod }
func (d *Deposit) PhoneNumber() PhoneNumber     { return d.phoneNumber }
func (d *Deposit) ProviderOrderID() string      { return d.providerOrderID }
func (d *Deposit) ProviderRef() string          { return d.providerRef }
func (d *Deposit) CreatedAt() time.Time         { return d.createdAt }
func (d *Deposit) UpdatedAt() time.Time         { return d.updatedAt }
func (d *Deposit) FiatConfirmedAt() *time.Time  { return d.fiatConfirmedAt }

func (d *Deposit) IsMobileMoney() bool {
	return d.paymentMethod == PaymentMethodMobileMoney
}
