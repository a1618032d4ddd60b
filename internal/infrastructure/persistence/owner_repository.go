package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOwnerRepository implements OwnerRepository using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// Create persists a new owner
func (r *GormOwnerRepository) Create(ctx context.Context, owner *directory.Owner) error {
	model := models.OwnerModelFromDomain(owner)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err, "idx_owners_phone") {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing owner
func (r *GormOwnerRepository) Update(ctx context.Context, owner *directory.Owner) error {
	model := models.OwnerModelFromDomain(owner)
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", owner.ID).Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an owner by ID
func (r *GormOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OwnerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an owner by its ID
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds an owner by phone number
func (r *GormOwnerRepository) FindByPhone(ctx context.Context, phone string) (*directory.Owner, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all owners ordered by flat number
func (r *GormOwnerRepository) FindAll(ctx context.Context) ([]directory.Owner, error) {
	var ownerModels []models.OwnerModel
	if err := r.db.WithContext(ctx).
		Order("flat_number ASC").
		Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]directory.Owner, len(ownerModels))
	for i, model := range ownerModels {
		owners[i] = *model.ToDomain()
	}
	return owners, nil
}

// FindByRole returns all owners currently holding the given role
func (r *GormOwnerRepository) FindByRole(ctx context.Context, role directory.Role) ([]directory.Owner, error) {
	var ownerModels []models.OwnerModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("flat_number ASC").
		Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]directory.Owner, len(ownerModels))
	for i, model := range ownerModels {
		owners[i] = *model.ToDomain()
	}
	return owners, nil
}

// Ensure GormOwnerRepository implements OwnerRepository
var _ directory.OwnerRepository = (*GormOwnerRepository)(nil)
