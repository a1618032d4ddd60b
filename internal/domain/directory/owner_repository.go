package directory

import (
	"context"

	"github.com/google/uuid"
)

// OwnerRepository defines the persistence contract for owners
type OwnerRepository interface {
	// Create persists a new owner. Returns shared.ErrAlreadyExists when the
	// phone number is already registered.
	Create(ctx context.Context, owner *Owner) error

	// Update persists changes to an existing owner
	Update(ctx context.Context, owner *Owner) error

	// Delete removes an owner by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an owner by ID. Returns shared.ErrNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*Owner, error)

	// FindByPhone finds an owner by phone number. Returns shared.ErrNotFound
	// when no owner is registered under that number.
	FindByPhone(ctx context.Context, phone string) (*Owner, error)

	// FindAll returns all owners ordered by flat number
	FindAll(ctx context.Context) ([]Owner, error)

	// FindByRole returns all owners currently holding the given role
	FindByRole(ctx context.Context, role Role) ([]Owner, error)
}
