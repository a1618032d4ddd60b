package maintenance

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/shared"
)

// Payment errors
var (
	ErrInvalidTransactionID = shared.NewDomainError("INVALID_TRANSACTION_ID", "Transaction ID must be exactly 12 digits")
	ErrDuplicateTransaction = shared.NewDomainError("DUPLICATE_TRANSACTION", "This transaction ID is already used")
	ErrAlreadyPaid          = shared.NewDomainError("ALREADY_PAID", "Maintenance already paid for this period")
)

var transactionIDPattern = regexp.MustCompile(`^[0-9]{12}$`)

// PaymentType is the channel the payment arrived through
type PaymentType string

const (
	PaymentTypeUPI          PaymentType = "UPI"
	PaymentTypeCash         PaymentType = "CASH"
	PaymentTypeBankTransfer PaymentType = "BANK_TRANSFER"
)

// ParsePaymentType normalizes free-form payment type input
func ParsePaymentType(s string) (PaymentType, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_")) {
	case "UPI":
		return PaymentTypeUPI, nil
	case "CASH":
		return PaymentTypeCash, nil
	case "BANK_TRANSFER":
		return PaymentTypeBankTransfer, nil
	}
	return "", shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be UPI, Cash or Bank Transfer")
}

// TreasurerSnapshot pins the collector's details to the payment at creation
// time. It is never re-derived: later rotations must not rewrite who was
// treasurer when a payment was recorded.
type TreasurerSnapshot struct {
	TreasurerID    uuid.UUID
	TreasurerName  string
	TreasurerPhone string
	TreasurerUpiID string
}

// SnapshotOf captures the treasurer details from an owner record
func SnapshotOf(owner *directory.Owner) TreasurerSnapshot {
	return TreasurerSnapshot{
		TreasurerID:    owner.ID,
		TreasurerName:  owner.Name,
		TreasurerPhone: owner.PhoneNumber,
		TreasurerUpiID: owner.UpiID,
	}
}

// Payment is an immutable maintenance payment record. Uniqueness is
// two-layered: the transaction ID is globally unique (same proof cannot be
// reused) and (flat, period) is unique (a flat pays once per period).
type Payment struct {
	shared.BaseEntity
	TransactionID string
	Period        shared.Period
	FlatNumber    string
	OwnerName     string
	OwnerMobile   string
	Amount        decimal.Decimal
	PaymentType   PaymentType
	ReceiptKey    string
	Treasurer     TreasurerSnapshot
}

// NewPaymentInput carries the validated fields for a payment
type NewPaymentInput struct {
	TransactionID string
	Period        shared.Period
	FlatNumber    string
	OwnerName     string
	OwnerMobile   string
	Amount        decimal.Decimal
	PaymentType   PaymentType
	ReceiptKey    string
	Treasurer     TreasurerSnapshot
}

// NewPayment creates a payment record after validating its fields
func NewPayment(input NewPaymentInput) (*Payment, error) {
	if err := ValidateTransactionID(input.TransactionID); err != nil {
		return nil, err
	}
	if err := input.Period.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FlatNumber) == "" {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat number is required")
	}
	if strings.TrimSpace(input.OwnerName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Owner name is required")
	}
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if input.Treasurer.TreasurerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Treasurer snapshot is required")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		TransactionID: input.TransactionID,
		Period:        input.Period,
		FlatNumber:    strings.TrimSpace(input.FlatNumber),
		OwnerName:     strings.TrimSpace(input.OwnerName),
		OwnerMobile:   input.OwnerMobile,
		Amount:        input.Amount,
		PaymentType:   input.PaymentType,
		ReceiptKey:    input.ReceiptKey,
		Treasurer:     input.Treasurer,
	}, nil
}

// ValidateTransactionID checks the 12-digit external payment rail format
func ValidateTransactionID(id string) error {
	if !transactionIDPattern.MatchString(id) {
		return ErrInvalidTransactionID
	}
	return nil
}
