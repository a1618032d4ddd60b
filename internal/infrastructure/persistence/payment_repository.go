package persistence

import (
	"context"

	"github.com/societyhub/backend/internal/domain/maintenance"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts the payment row. The two unique indexes are the final
// authority on conflicts: whichever one fires determines the error the
// caller sees, regardless of what pre-checks observed.
func (r *GormPaymentRepository) Create(ctx context.Context, payment *maintenance.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err, "idx_payments_transaction") {
			return maintenance.ErrDuplicateTransaction
		}
		if isUniqueViolation(err, "idx_payments_flat_period") {
			return maintenance.ErrAlreadyPaid
		}
		return err
	}
	return nil
}

// ExistsByTransactionID reports whether a transaction ID is recorded
func (r *GormPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByPeriod returns the period's payments, most recent first
func (r *GormPaymentRepository) FindByPeriod(ctx context.Context, period shared.Period) ([]maintenance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", period.Month, period.Year).
		Order("created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]maintenance.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ maintenance.PaymentRepository = (*GormPaymentRepository)(nil)
