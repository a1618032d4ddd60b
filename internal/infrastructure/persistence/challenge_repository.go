package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/auth"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChallengeRepository implements ChallengeRepository using GORM
type GormChallengeRepository struct {
	db *gorm.DB
}

// NewGormChallengeRepository creates a new GormChallengeRepository
func NewGormChallengeRepository(db *gorm.DB) *GormChallengeRepository {
	return &GormChallengeRepository{db: db}
}

// Save inserts the challenge, overwriting an existing one for the owner.
// The upsert keyed on owner_id keeps the one-row-per-owner invariant even
// when two issue requests race.
func (r *GormChallengeRepository) Save(ctx context.Context, challenge *auth.Challenge) error {
	model := models.ChallengeModelFromDomain(challenge)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"code", "issued_at", "expires_at", "consumed", "updated_at",
			}),
		}).
		Create(model).Error
}

// FindByOwner returns the owner's current challenge
func (r *GormChallengeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*auth.Challenge, error) {
	var model models.ChallengeModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists consumption with a compare-and-set: the row must still
// hold the same code and be unconsumed. Of two concurrent verifies only one
// can flip the flag; the loser gets ErrInvalidCode, keeping the challenge
// single use. A replaced or deleted row fails the same way.
func (r *GormChallengeRepository) Update(ctx context.Context, challenge *auth.Challenge) error {
	model := models.ChallengeModelFromDomain(challenge)
	result := r.db.WithContext(ctx).
		Model(&models.ChallengeModel{}).
		Where("owner_id = ? AND code = ? AND consumed = ?", challenge.OwnerID, model.Code, false).
		Updates(map[string]any{
			"consumed":   model.Consumed,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return auth.ErrInvalidCode
	}
	return nil
}

// Ensure GormChallengeRepository implements ChallengeRepository
var _ auth.ChallengeRepository = (*GormChallengeRepository)(nil)
