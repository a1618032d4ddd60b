package rotation

import (
	"context"

	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/rotation"
	"github.com/societyhub/backend/internal/domain/shared"
)

// RotationService handles treasurer assignment and lookup
type RotationService struct {
	ledger    rotation.Ledger
	ownerRepo directory.OwnerRepository
	logger    *zap.Logger
}

// NewRotationService creates a new RotationService
func NewRotationService(ledger rotation.Ledger, ownerRepo directory.OwnerRepository, logger *zap.Logger) *RotationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RotationService{
		ledger:    ledger,
		ownerRepo: ownerRepo,
		logger:    logger,
	}
}

// AssignTreasurer appoints the owner as treasurer for the period. The ledger
// applies the role handoff and the assignment insert as one transaction, so
// a concurrent assign for the same period loses cleanly with
// rotation.ErrPeriodAssigned.
func (s *RotationService) AssignTreasurer(ctx context.Context, req AssignTreasurerRequest) (*AssignmentResponse, error) {
	period, err := shared.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	assignment, err := rotation.NewAssignment(owner.ID, period)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Assign(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("Treasurer assigned",
		zap.String("owner_id", owner.ID.String()),
		zap.String("period", period.String()))

	response := ToAssignmentResponse(assignment, owner)
	return &response, nil
}

// GetTreasurer resolves the treasurer for a period along with their
// directory record
func (s *RotationService) GetTreasurer(ctx context.Context, month, year int) (*AssignmentResponse, error) {
	period, err := shared.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	assignment, err := s.ledger.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindByID(ctx, assignment.OwnerID)
	if err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment, owner)
	return &response, nil
}
