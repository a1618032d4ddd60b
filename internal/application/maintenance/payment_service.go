package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/maintenance"
	"github.com/societyhub/backend/internal/domain/rotation"
	"github.com/societyhub/backend/internal/domain/shared"
)

// ReceiptStorage abstracts the object store holding payment receipts
type ReceiptStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// downloadURLTTL is how long a generated receipt link stays valid
const downloadURLTTL = 15 * time.Minute

// maxReceiptSize caps a single uploaded receipt at 5 MiB
const maxReceiptSize = 5 << 20

// PaymentService handles maintenance payment recording and listing
type PaymentService struct {
	paymentRepo maintenance.PaymentRepository
	ledger      rotation.Ledger
	ownerRepo   directory.OwnerRepository
	storage     ReceiptStorage
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo maintenance.PaymentRepository,
	ledger rotation.Ledger,
	ownerRepo directory.OwnerRepository,
	storage ReceiptStorage,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		ledger:      ledger,
		ownerRepo:   ownerRepo,
		storage:     storage,
		logger:      logger,
	}
}

// RecordPayment records a maintenance payment for a flat and period. The
// current treasurer's details are resolved through the rotation ledger and
// frozen onto the payment before it is persisted. The repository's unique
// constraints remain the final authority on duplicates: the pre-check here
// only gives the common case a clean early error.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	if err := maintenance.ValidateTransactionID(req.TransactionID); err != nil {
		return nil, err
	}

	period, err := shared.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	paymentType, err := maintenance.ParsePaymentType(req.PaymentType)
	if err != nil {
		return nil, err
	}

	exists, err := s.paymentRepo.ExistsByTransactionID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, maintenance.ErrDuplicateTransaction
	}

	// Resolve the collector for the period and freeze their details
	assignment, err := s.ledger.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	treasurer, err := s.ownerRepo.FindByID(ctx, assignment.OwnerID)
	if err != nil {
		return nil, err
	}

	receiptKey := ""
	if len(req.Receipt) > 0 {
		if len(req.Receipt) > maxReceiptSize {
			return nil, shared.NewDomainError("RECEIPT_TOO_LARGE", "Receipt must not exceed 5 MB")
		}
		receiptKey = receiptKeyFor(period, req.FlatNumber, req.TransactionID)
		if err := s.storage.Upload(ctx, receiptKey, req.Receipt, req.ReceiptContentType); err != nil {
			s.logger.Error("Receipt upload failed",
				zap.String("transaction_id", req.TransactionID),
				zap.Error(err))
			return nil, shared.NewDomainError("RECEIPT_UPLOAD_FAILED", "Failed to store the receipt")
		}
	}

	payment, err := maintenance.NewPayment(maintenance.NewPaymentInput{
		TransactionID: req.TransactionID,
		Period:        period,
		FlatNumber:    req.FlatNumber,
		OwnerName:     req.OwnerName,
		OwnerMobile:   req.OwnerMobile,
		Amount:        req.Amount,
		PaymentType:   paymentType,
		ReceiptKey:    receiptKey,
		Treasurer:     maintenance.SnapshotOf(treasurer),
	})
	if err != nil {
		s.discardReceipt(ctx, receiptKey)
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.discardReceipt(ctx, receiptKey)
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("transaction_id", payment.TransactionID),
		zap.String("flat", payment.FlatNumber),
		zap.String("period", period.String()))

	response := s.toPaymentResponse(ctx, payment)
	return &response, nil
}

// ListByPeriod returns the period's payments, most recent first, with the
// period's count and collected total
func (s *PaymentService) ListByPeriod(ctx context.Context, month, year int) (*PaymentListResponse, error) {
	period, err := shared.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	total := decimal.Zero
	for i := range payments {
		responses = append(responses, s.toPaymentResponse(ctx, &payments[i]))
		total = total.Add(payments[i].Amount)
	}
	return &PaymentListResponse{
		Month:       period.Month,
		Year:        period.Year,
		Count:       len(responses),
		TotalAmount: total,
		Payments:    responses,
	}, nil
}

// toPaymentResponse maps a payment and, when a receipt exists, attaches a
// short-lived download link. A presign failure degrades to a response
// without the link rather than failing the whole request.
func (s *PaymentService) toPaymentResponse(ctx context.Context, payment *maintenance.Payment) PaymentResponse {
	response := ToPaymentResponse(payment)
	if payment.ReceiptKey == "" || s.storage == nil {
		return response
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, payment.ReceiptKey, downloadURLTTL)
	if err != nil {
		s.logger.Warn("Receipt URL generation failed",
			zap.String("receipt_key", payment.ReceiptKey),
			zap.Error(err))
		return response
	}
	response.ReceiptURL = url
	return response
}

// discardReceipt best-effort removes an uploaded receipt whose payment row
// never landed
func (s *PaymentService) discardReceipt(ctx context.Context, receiptKey string) {
	if receiptKey == "" || s.storage == nil {
		return
	}
	if err := s.storage.DeleteObject(ctx, receiptKey); err != nil {
		s.logger.Warn("Orphaned receipt cleanup failed",
			zap.String("receipt_key", receiptKey),
			zap.Error(err))
	}
}

func receiptKeyFor(period shared.Period, flatNumber, transactionID string) string {
	return fmt.Sprintf("receipts/%d/%02d/%s-%s", period.Year, period.Month, flatNumber, transactionID)
}
