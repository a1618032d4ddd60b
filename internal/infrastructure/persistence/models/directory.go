package models

import (
	"encoding/json"

	"github.com/societyhub/backend/internal/domain/directory"
)

// OwnerModel is the persistence model for the Owner domain entity.
type OwnerModel struct {
	BaseModel
	Name             string                    `gorm:"type:varchar(200);not null"`
	PhoneNumber      string                    `gorm:"type:varchar(20);not null;uniqueIndex:idx_owners_phone"`
	FlatNumber       string                    `gorm:"type:varchar(20);not null;index"`
	FloorNumber      string                    `gorm:"type:varchar(20)"`
	FlatType         string                    `gorm:"type:varchar(50)"`
	Status           directory.ResidencyStatus `gorm:"type:varchar(20);not null;default:'Owner'"`
	Occupation       string                    `gorm:"type:varchar(100)"`
	UpiID            string                    `gorm:"type:varchar(100)"`
	Role             directory.Role            `gorm:"type:varchar(20);not null;default:'resident';index"`
	SpouseName       string                    `gorm:"type:varchar(200)"`
	NumberOfChildren int                       `gorm:"not null;default:0"`
	Children         string                    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the persistence model to a domain Owner entity.
func (m *OwnerModel) ToDomain() *directory.Owner {
	var children []directory.Child
	if m.Children != "" {
		// Corrupt rows degrade to an empty child list rather than failing reads
		_ = json.Unmarshal([]byte(m.Children), &children)
	}

	return &directory.Owner{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		PhoneNumber: m.PhoneNumber,
		FlatNumber:  m.FlatNumber,
		FloorNumber: m.FloorNumber,
		FlatType:    m.FlatType,
		Status:      m.Status,
		Occupation:  m.Occupation,
		UpiID:       m.UpiID,
		Role:        m.Role,
		FamilyDetails: directory.FamilyDetails{
			SpouseName:       m.SpouseName,
			NumberOfChildren: m.NumberOfChildren,
			Children:         children,
		},
	}
}

// FromDomain populates the persistence model from a domain Owner entity.
func (m *OwnerModel) FromDomain(o *directory.Owner) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Name = o.Name
	m.PhoneNumber = o.PhoneNumber
	m.FlatNumber = o.FlatNumber
	m.FloorNumber = o.FloorNumber
	m.FlatType = o.FlatType
	m.Status = o.Status
	m.Occupation = o.Occupation
	m.UpiID = o.UpiID
	m.Role = o.Role
	m.SpouseName = o.FamilyDetails.SpouseName
	m.NumberOfChildren = o.FamilyDetails.NumberOfChildren

	if len(o.FamilyDetails.Children) > 0 {
		if data, err := json.Marshal(o.FamilyDetails.Children); err == nil {
			m.Children = string(data)
		}
	} else {
		m.Children = ""
	}
}

// OwnerModelFromDomain creates a new persistence model from a domain Owner entity.
func OwnerModelFromDomain(o *directory.Owner) *OwnerModel {
	m := &OwnerModel{}
	m.FromDomain(o)
	return m
}
