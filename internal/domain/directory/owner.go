package directory

import (
	"regexp"
	"strings"

	"github.com/societyhub/backend/internal/domain/shared"
)

// Role represents an owner's role within the society
type Role string

const (
	RoleResident  Role = "resident"  // Default role for every owner
	RoleTreasurer Role = "treasurer" // The single collector for the current period
	RoleAdmin     Role = "admin"     // Society administrator
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleResident, RoleTreasurer, RoleAdmin:
		return true
	}
	return false
}

// ResidencyStatus describes how the flat is occupied
type ResidencyStatus string

const (
	ResidencyOwner  ResidencyStatus = "Owner"
	ResidencyRented ResidencyStatus = "Rented"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Child is a dependent listed under an owner's family details
type Child struct {
	Name string
}

// FamilyDetails holds an owner's household information
type FamilyDetails struct {
	SpouseName       string
	NumberOfChildren int
	Children         []Child
}

// Owner is the aggregate root for a flat owner's identity record.
// The Role field is a materialized view of the treasurer rotation ledger:
// its only writer for the treasurer role is the rotation assignment
// transaction.
type Owner struct {
	shared.BaseEntity
	Name          string
	PhoneNumber   string
	FlatNumber    string
	FloorNumber   string
	FlatType      string
	Status        ResidencyStatus
	Occupation    string
	UpiID         string
	Role          Role
	FamilyDetails FamilyDetails
}

// NewOwner creates a new owner with the resident role
func NewOwner(name, phoneNumber, flatNumber string) (*Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if err := ValidatePhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	if strings.TrimSpace(flatNumber) == "" {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat number is required")
	}

	return &Owner{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		PhoneNumber: phoneNumber,
		FlatNumber:  strings.TrimSpace(flatNumber),
		Status:      ResidencyOwner,
		Role:        RoleResident,
	}, nil
}

// ValidatePhoneNumber checks the 10-digit contact format
func ValidatePhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	return nil
}

// SetRole changes the owner's role
func (o *Owner) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}
	o.Role = role
	o.Touch()
	return nil
}

// SetStatus changes the residency status
func (o *Owner) SetStatus(status ResidencyStatus) error {
	if status != ResidencyOwner && status != ResidencyRented {
		return shared.NewDomainError("INVALID_STATUS", "Status must be Owner or Rented")
	}
	o.Status = status
	o.Touch()
	return nil
}

// SetUpiID sets the owner's UPI identifier used on payment snapshots
func (o *Owner) SetUpiID(upiID string) error {
	upiID = strings.TrimSpace(upiID)
	if upiID != "" && !strings.Contains(upiID, "@") {
		return shared.NewDomainError("INVALID_UPI", "UPI ID must contain a handle separator")
	}
	o.UpiID = upiID
	o.Touch()
	return nil
}

// UpdateDetails updates the mutable profile fields. The phone number is
// intentionally not updatable: it is the owner's login identity.
func (o *Owner) UpdateDetails(name, floorNumber, flatType, occupation string, family FamilyDetails) error {
	if name != "" {
		o.Name = strings.TrimSpace(name)
	}
	if floorNumber != "" {
		o.FloorNumber = floorNumber
	}
	if flatType != "" {
		o.FlatType = flatType
	}
	if occupation != "" {
		o.Occupation = occupation
	}
	if family.NumberOfChildren < 0 {
		return shared.NewDomainError("INVALID_FAMILY", "Number of children cannot be negative")
	}
	o.FamilyDetails = family
	o.Touch()
	return nil
}

// IsAdmin reports whether the owner holds the admin role
func (o *Owner) IsAdmin() bool {
	return o.Role == RoleAdmin
}

// IsTreasurer reports whether the owner currently holds the treasurer role
func (o *Owner) IsTreasurer() bool {
	return o.Role == RoleTreasurer
}
