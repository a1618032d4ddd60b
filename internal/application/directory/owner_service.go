package directory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/shared"
)

// OwnerService handles owner directory operations
type OwnerService struct {
	ownerRepo directory.OwnerRepository
	logger    *zap.Logger
}

// NewOwnerService creates a new OwnerService
func NewOwnerService(ownerRepo directory.OwnerRepository, logger *zap.Logger) *OwnerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OwnerService{
		ownerRepo: ownerRepo,
		logger:    logger,
	}
}

// Create registers a new owner. The phone number's unique constraint is the
// final authority on duplicates.
func (s *OwnerService) Create(ctx context.Context, req CreateOwnerRequest) (*OwnerResponse, error) {
	owner, err := directory.NewOwner(req.Name, req.PhoneNumber, req.FlatNumber)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		if err := owner.SetStatus(directory.ResidencyStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.UpiID != "" {
		if err := owner.SetUpiID(req.UpiID); err != nil {
			return nil, err
		}
	}
	if req.Role != "" {
		// Treasurer is only ever granted through the rotation ledger's
		// handoff, never at registration.
		if directory.Role(req.Role) == directory.RoleTreasurer {
			return nil, shared.NewDomainError("INVALID_ROLE", "Treasurer role is assigned through the rotation, not at registration")
		}
		if err := owner.SetRole(directory.Role(req.Role)); err != nil {
			return nil, err
		}
	}
	if req.FloorNumber != "" || req.FlatType != "" || req.Occupation != "" || req.FamilyDetails != nil {
		family := owner.FamilyDetails
		if req.FamilyDetails != nil {
			family = toFamilyDetails(*req.FamilyDetails)
		}
		if err := owner.UpdateDetails("", req.FloorNumber, req.FlatType, req.Occupation, family); err != nil {
			return nil, err
		}
	}

	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("Owner registered",
		zap.String("owner_id", owner.ID.String()),
		zap.String("flat", owner.FlatNumber))

	response := ToOwnerResponse(owner)
	return &response, nil
}

// GetByID retrieves an owner by ID
func (s *OwnerService) GetByID(ctx context.Context, id uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToOwnerResponse(owner)
	return &response, nil
}

// List returns all owners ordered by flat number
func (s *OwnerService) List(ctx context.Context) ([]OwnerResponse, error) {
	owners, err := s.ownerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToOwnerResponses(owners), nil
}

// ListByRole returns owners holding the given role
func (s *OwnerService) ListByRole(ctx context.Context, role string) ([]OwnerResponse, error) {
	r := directory.Role(role)
	if !r.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+role)
	}
	owners, err := s.ownerRepo.FindByRole(ctx, r)
	if err != nil {
		return nil, err
	}
	return ToOwnerResponses(owners), nil
}

// Update modifies an owner's profile. The phone number and role are not
// updatable here: the phone is the login identity and the treasurer role is
// owned by the rotation ledger.
func (s *OwnerService) Update(ctx context.Context, id uuid.UUID, req UpdateOwnerRequest) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	family := owner.FamilyDetails
	if req.FamilyDetails != nil {
		family = toFamilyDetails(*req.FamilyDetails)
	}
	if err := owner.UpdateDetails(req.Name, req.FloorNumber, req.FlatType, req.Occupation, family); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := owner.SetStatus(directory.ResidencyStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.UpiID != nil {
		if err := owner.SetUpiID(*req.UpiID); err != nil {
			return nil, err
		}
	}

	if err := s.ownerRepo.Update(ctx, owner); err != nil {
		return nil, err
	}

	response := ToOwnerResponse(owner)
	return &response, nil
}

// Delete removes an owner from the directory
func (s *OwnerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ownerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Owner removed", zap.String("owner_id", id.String()))
	return nil
}
