package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
)

// ChallengeTTL is how long an issued code remains verifiable
const ChallengeTTL = 5 * time.Minute

// Challenge errors
var (
	ErrInvalidCode = shared.NewDomainError("INVALID_OTP", "Invalid OTP")
	ErrExpiredCode = shared.NewDomainError("OTP_EXPIRED", "OTP expired")
)

// Challenge is a single-use one-time-password bound to an owner.
// Lifecycle: issued -> consumed | expired. Issuing a new challenge for the
// same owner replaces the previous one, which silently becomes unverifiable.
type Challenge struct {
	shared.BaseEntity
	OwnerID   uuid.UUID
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Consumed  bool
}

// NewChallenge issues a fresh challenge for the owner
func NewChallenge(ownerID uuid.UUID) (*Challenge, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, shared.NewDomainError("OTP_GENERATION_FAILED", "Failed to generate OTP")
	}

	now := time.Now()
	return &Challenge{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Code:       code,
		IssuedAt:   now,
		ExpiresAt:  now.Add(ChallengeTTL),
		Consumed:   false,
	}, nil
}

// GenerateCode returns a uniformly distributed 6-digit code in 100000-999999
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IsExpired reports whether the challenge has passed its validity window
func (c *Challenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Consume verifies the submitted code against the challenge at the given
// instant and marks the challenge consumed on success. A consumed challenge
// never verifies again; a mismatching code is rejected before the expiry
// check, matching the order callers observe.
func (c *Challenge) Consume(code string, now time.Time) error {
	if c.Consumed {
		return ErrInvalidCode
	}
	if c.Code != code {
		return ErrInvalidCode
	}
	if c.IsExpired(now) {
		return ErrExpiredCode
	}

	c.Consumed = true
	c.Touch()
	return nil
}
