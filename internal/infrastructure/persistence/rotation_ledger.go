package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/rotation"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRotationLedger implements the rotation Ledger using GORM
type GormRotationLedger struct {
	db *gorm.DB
}

// NewGormRotationLedger creates a new GormRotationLedger
func NewGormRotationLedger(db *gorm.DB) *GormRotationLedger {
	return &GormRotationLedger{db: db}
}

// Assign persists the assignment together with the role handoff. The demote,
// promote and insert all run in one transaction; the unique (month, year)
// index on the insert decides the winner between concurrent assigns, and a
// loss rolls back the role changes.
func (l *GormRotationLedger) Assign(ctx context.Context, assignment *rotation.Assignment) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Demote whoever currently holds the treasurer role
		if err := tx.Model(&models.OwnerModel{}).
			Where("role = ?", directory.RoleTreasurer).
			Updates(map[string]any{
				"role":       directory.RoleResident,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		// Promote the incoming treasurer
		promote := tx.Model(&models.OwnerModel{}).
			Where("id = ?", assignment.OwnerID).
			Updates(map[string]any{
				"role":       directory.RoleTreasurer,
				"updated_at": now,
			})
		if promote.Error != nil {
			return promote.Error
		}
		if promote.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		// Insert the assignment row, the commit point of the handoff
		model := models.AssignmentModelFromDomain(assignment)
		if err := tx.Create(model).Error; err != nil {
			if isUniqueViolation(err, "idx_assignments_period") {
				return rotation.ErrPeriodAssigned
			}
			return err
		}

		return nil
	})
}

// FindByPeriod resolves the assignment for a period
func (l *GormRotationLedger) FindByPeriod(ctx context.Context, period shared.Period) (*rotation.Assignment, error) {
	var model models.AssignmentModel
	if err := l.db.WithContext(ctx).
		Where("month = ? AND year = ?", period.Month, period.Year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rotation.ErrNotAssigned
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormRotationLedger implements Ledger
var _ rotation.Ledger = (*GormRotationLedger)(nil)
