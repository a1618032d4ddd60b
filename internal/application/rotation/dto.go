package rotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/rotation"
)

// =============================================================================
// Assignment DTOs
// =============================================================================

// AssignTreasurerRequest represents a request to appoint a treasurer
type AssignTreasurerRequest struct {
	OwnerID uuid.UUID `json:"owner_id" binding:"required"`
	Month   int       `json:"month" binding:"required,min=1,max=12"`
	Year    int       `json:"year" binding:"required,min=2000,max=2100"`
}

// AssignmentResponse represents a treasurer assignment in API responses
type AssignmentResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	FlatNumber  string    `json:"flat_number"`
	UpiID       string    `json:"upi_id,omitempty"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// ToAssignmentResponse combines an assignment with the owner's directory
// record
func ToAssignmentResponse(assignment *rotation.Assignment, owner *directory.Owner) AssignmentResponse {
	return AssignmentResponse{
		ID:          assignment.ID,
		OwnerID:     assignment.OwnerID,
		Month:       assignment.Period.Month,
		Year:        assignment.Period.Year,
		Name:        owner.Name,
		PhoneNumber: owner.PhoneNumber,
		FlatNumber:  owner.FlatNumber,
		UpiID:       owner.UpiID,
		AssignedAt:  assignment.CreatedAt,
	}
}
