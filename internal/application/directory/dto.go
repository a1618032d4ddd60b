package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/directory"
)

// =============================================================================
// Owner DTOs
// =============================================================================

// ChildRequest is one dependent in a family details payload
type ChildRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// FamilyDetailsRequest represents an owner's household information
type FamilyDetailsRequest struct {
	SpouseName       string         `json:"spouse_name" binding:"max=200"`
	NumberOfChildren int            `json:"number_of_children" binding:"min=0,max=20"`
	Children         []ChildRequest `json:"children" binding:"omitempty,dive"`
}

// CreateOwnerRequest represents a request to register a new owner
type CreateOwnerRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string                `json:"phone_number" binding:"required,len=10,numeric"`
	FlatNumber    string                `json:"flat_number" binding:"required,min=1,max=20"`
	FloorNumber   string                `json:"floor_number" binding:"max=10"`
	FlatType      string                `json:"flat_type" binding:"max=20"`
	Status        string                `json:"status" binding:"omitempty,oneof=Owner Rented"`
	Occupation    string                `json:"occupation" binding:"max=100"`
	UpiID         string                `json:"upi_id" binding:"max=100"`
	Role          string                `json:"role" binding:"omitempty,oneof=resident admin"`
	FamilyDetails *FamilyDetailsRequest `json:"family_details"`
}

// UpdateOwnerRequest represents a request to update an owner's profile.
// Empty fields are left unchanged.
type UpdateOwnerRequest struct {
	Name          string                `json:"name" binding:"omitempty,min=1,max=200"`
	FloorNumber   string                `json:"floor_number" binding:"max=10"`
	FlatType      string                `json:"flat_type" binding:"max=20"`
	Status        string                `json:"status" binding:"omitempty,oneof=Owner Rented"`
	Occupation    string                `json:"occupation" binding:"max=100"`
	UpiID         *string               `json:"upi_id" binding:"omitempty,max=100"`
	FamilyDetails *FamilyDetailsRequest `json:"family_details"`
}

// FamilyDetailsResponse represents household details in API responses
type FamilyDetailsResponse struct {
	SpouseName       string   `json:"spouse_name"`
	NumberOfChildren int      `json:"number_of_children"`
	Children         []string `json:"children"`
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	PhoneNumber   string                `json:"phone_number"`
	FlatNumber    string                `json:"flat_number"`
	FloorNumber   string                `json:"floor_number"`
	FlatType      string                `json:"flat_type"`
	Status        string                `json:"status"`
	Occupation    string                `json:"occupation"`
	UpiID         string                `json:"upi_id"`
	Role          string                `json:"role"`
	FamilyDetails FamilyDetailsResponse `json:"family_details"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToOwnerResponse converts a domain owner to a response DTO
func ToOwnerResponse(owner *directory.Owner) OwnerResponse {
	children := make([]string, 0, len(owner.FamilyDetails.Children))
	for _, child := range owner.FamilyDetails.Children {
		children = append(children, child.Name)
	}
	return OwnerResponse{
		ID:          owner.ID,
		Name:        owner.Name,
		PhoneNumber: owner.PhoneNumber,
		FlatNumber:  owner.FlatNumber,
		FloorNumber: owner.FloorNumber,
		FlatType:    owner.FlatType,
		Status:      string(owner.Status),
		Occupation:  owner.Occupation,
		UpiID:       owner.UpiID,
		Role:        string(owner.Role),
		FamilyDetails: FamilyDetailsResponse{
			SpouseName:       owner.FamilyDetails.SpouseName,
			NumberOfChildren: owner.FamilyDetails.NumberOfChildren,
			Children:         children,
		},
		CreatedAt: owner.CreatedAt,
		UpdatedAt: owner.UpdatedAt,
	}
}

// ToOwnerResponses converts a list of domain owners
func ToOwnerResponses(owners []directory.Owner) []OwnerResponse {
	responses := make([]OwnerResponse, 0, len(owners))
	for i := range owners {
		responses = append(responses, ToOwnerResponse(&owners[i]))
	}
	return responses
}

func toFamilyDetails(req FamilyDetailsRequest) directory.FamilyDetails {
	children := make([]directory.Child, 0, len(req.Children))
	for _, child := range req.Children {
		children = append(children, directory.Child{Name: child.Name})
	}
	return directory.FamilyDetails{
		SpouseName:       req.SpouseName,
		NumberOfChildren: req.NumberOfChildren,
		Children:         children,
	}
}
