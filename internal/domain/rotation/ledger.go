package rotation

import (
	"context"

	"github.com/societyhub/backend/internal/domain/shared"
)

// Ledger defines the persistence contract for treasurer assignments.
//
// Assign must apply three effects as one atomic unit: demote every owner
// currently holding the treasurer role, promote the assignment's owner, and
// insert the assignment row. The insert is the commit point: its unique
// constraint on (month, year) arbitrates concurrent assigns, and a constraint
// violation rolls back the role handoff and surfaces as ErrPeriodAssigned.
type Ledger interface {
	// Assign persists the assignment together with the role handoff.
	// Returns ErrPeriodAssigned when the period already has an assignment.
	Assign(ctx context.Context, assignment *Assignment) error

	// FindByPeriod resolves the assignment for a period.
	// Returns ErrNotAssigned when the period has no treasurer.
	FindByPeriod(ctx context.Context, period shared.Period) (*Assignment, error)
}
