package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/societyhub/backend/internal/domain/maintenance"
)

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest represents a request to record a maintenance payment.
// The receipt bytes come from the multipart file part, not the form fields.
type RecordPaymentRequest struct {
	TransactionID      string          `json:"transaction_id"`
	Month              int             `json:"month"`
	Year               int             `json:"year"`
	FlatNumber         string          `json:"flat_number"`
	OwnerName          string          `json:"owner_name"`
	OwnerMobile        string          `json:"owner_mobile"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentType        string          `json:"payment_type"`
	Receipt            []byte          `json:"-"`
	ReceiptContentType string          `json:"-"`
}

// TreasurerSnapshotResponse is the collector's details frozen on a payment
type TreasurerSnapshotResponse struct {
	TreasurerID    uuid.UUID `json:"treasurer_id"`
	TreasurerName  string    `json:"treasurer_name"`
	TreasurerPhone string    `json:"treasurer_phone"`
	TreasurerUpiID string    `json:"treasurer_upi_id"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID                 `json:"id"`
	TransactionID string                    `json:"transaction_id"`
	Month         int                       `json:"month"`
	Year          int                       `json:"year"`
	FlatNumber    string                    `json:"flat_number"`
	OwnerName     string                    `json:"owner_name"`
	OwnerMobile   string                    `json:"owner_mobile"`
	Amount        decimal.Decimal           `json:"amount"`
	PaymentType   string                    `json:"payment_type"`
	ReceiptURL    string                    `json:"receipt_url,omitempty"`
	Treasurer     TreasurerSnapshotResponse `json:"treasurer"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// PaymentListResponse bundles a period's payments with their count and total
type PaymentListResponse struct {
	Month       int               `json:"month"`
	Year        int               `json:"year"`
	Count       int               `json:"count"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Payments    []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(payment *maintenance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		TransactionID: payment.TransactionID,
		Month:         payment.Period.Month,
		Year:          payment.Period.Year,
		FlatNumber:    payment.FlatNumber,
		OwnerName:     payment.OwnerName,
		OwnerMobile:   payment.OwnerMobile,
		Amount:        payment.Amount,
		PaymentType:   string(payment.PaymentType),
		Treasurer: TreasurerSnapshotResponse{
			TreasurerID:    payment.Treasurer.TreasurerID,
			TreasurerName:  payment.Treasurer.TreasurerName,
			TreasurerPhone: payment.Treasurer.TreasurerPhone,
			TreasurerUpiID: payment.Treasurer.TreasurerUpiID,
		},
		CreatedAt: payment.CreatedAt,
	}
}
