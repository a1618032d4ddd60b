package maintenance

import (
	"context"

	"github.com/societyhub/backend/internal/domain/shared"
)

// PaymentRepository defines the persistence contract for maintenance
// payments. Create relies on storage-level unique constraints as the final
// authority: a concurrent writer that loses the race gets the constraint
// violation translated to ErrDuplicateTransaction or ErrAlreadyPaid, never a
// silently deduplicated success.
type PaymentRepository interface {
	// Create inserts the payment row. Returns ErrDuplicateTransaction when
	// the transaction ID is taken and ErrAlreadyPaid when the (flat, period)
	// slot is already settled.
	Create(ctx context.Context, payment *Payment) error

	// ExistsByTransactionID reports whether a transaction ID is recorded
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)

	// FindByPeriod returns the period's payments, most recent first
	FindByPeriod(ctx context.Context, period shared.Period) ([]Payment, error)
}
