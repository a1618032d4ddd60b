package models

import (
	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/rotation"
	"github.com/societyhub/backend/internal/domain/shared"
)

// AssignmentModel is the persistence model for treasurer assignments. The
// composite unique index on (month, year) is the arbiter for concurrent
// assignment attempts on the same period.
type AssignmentModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Month   int       `gorm:"not null;uniqueIndex:idx_assignments_period,priority:1"`
	Year    int       `gorm:"not null;uniqueIndex:idx_assignments_period,priority:2"`
}

// TableName returns the table name for GORM
func (AssignmentModel) TableName() string {
	return "treasurer_assignments"
}

// ToDomain converts the persistence model to a domain Assignment entity.
func (m *AssignmentModel) ToDomain() *rotation.Assignment {
	return &rotation.Assignment{
		BaseEntity: m.BaseModel.ToDomain(),
		OwnerID:    m.OwnerID,
		Period:     shared.Period{Month: m.Month, Year: m.Year},
	}
}

// FromDomain populates the persistence model from a domain Assignment entity.
func (m *AssignmentModel) FromDomain(a *rotation.Assignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.OwnerID = a.OwnerID
	m.Month = a.Period.Month
	m.Year = a.Period.Year
}

// AssignmentModelFromDomain creates a new persistence model from a domain Assignment entity.
func AssignmentModelFromDomain(a *rotation.Assignment) *AssignmentModel {
	m := &AssignmentModel{}
	m.FromDomain(a)
	return m
}
