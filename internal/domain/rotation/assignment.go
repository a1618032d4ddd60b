package rotation

import (
	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
)

// Assignment errors
var (
	ErrPeriodAssigned = shared.NewDomainError("TREASURER_ALREADY_ASSIGNED", "Treasurer already assigned for this period")
	ErrNotAssigned    = shared.NewDomainError("TREASURER_NOT_ASSIGNED", "Treasurer not assigned for this period")
)

// Assignment records which owner collects maintenance for one period.
// Assignments are append-only: once created they are never updated or
// deleted, so rotation history stays truthful. Correcting a mistaken
// assignment is an administrative path outside this ledger.
type Assignment struct {
	shared.BaseEntity
	OwnerID uuid.UUID
	Period  shared.Period
}

// NewAssignment creates an assignment of the owner to the period
func NewAssignment(ownerID uuid.UUID, period shared.Period) (*Assignment, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID is required")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return &Assignment{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Period:     period,
	}, nil
}
