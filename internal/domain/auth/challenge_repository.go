package auth

import (
	"context"

	"github.com/google/uuid"
)

// ChallengeRepository defines the persistence contract for OTP challenges.
// At most one challenge row exists per owner; Save replaces any previous
// challenge for the same owner.
type ChallengeRepository interface {
	// Save inserts the challenge, overwriting an existing one for the owner
	Save(ctx context.Context, challenge *Challenge) error

	// FindByOwner returns the owner's current challenge.
	// Returns shared.ErrNotFound when the owner has never been issued one.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Challenge, error)

	// Update persists consumption state changes. Implementations must only
	// apply the change if the stored row still carries the same code and is
	// unconsumed, returning ErrInvalidCode otherwise, so that exactly one
	// verify can succeed per issued challenge.
	Update(ctx context.Context, challenge *Challenge) error
}
