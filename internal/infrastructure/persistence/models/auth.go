package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/auth"
)

// ChallengeModel is the persistence model for OTP challenges. The unique
// index on owner_id enforces the one-challenge-per-owner invariant at the
// storage level.
type ChallengeModel struct {
	BaseModel
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_otp_challenges_owner"`
	Code      string    `gorm:"type:varchar(6);not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Consumed  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ChallengeModel) TableName() string {
	return "otp_challenges"
}

// ToDomain converts the persistence model to a domain Challenge entity.
func (m *ChallengeModel) ToDomain() *auth.Challenge {
	return &auth.Challenge{
		BaseEntity: m.BaseModel.ToDomain(),
		OwnerID:    m.OwnerID,
		Code:       m.Code,
		IssuedAt:   m.IssuedAt,
		ExpiresAt:  m.ExpiresAt,
		Consumed:   m.Consumed,
	}
}

// FromDomain populates the persistence model from a domain Challenge entity.
func (m *ChallengeModel) FromDomain(c *auth.Challenge) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.OwnerID = c.OwnerID
	m.Code = c.Code
	m.IssuedAt = c.IssuedAt
	m.ExpiresAt = c.ExpiresAt
	m.Consumed = c.Consumed
}

// ChallengeModelFromDomain creates a new persistence model from a domain Challenge entity.
func ChallengeModelFromDomain(c *auth.Challenge) *ChallengeModel {
	m := &ChallengeModel{}
	m.FromDomain(c)
	return m
}
