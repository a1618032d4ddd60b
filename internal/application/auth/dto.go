package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/directory"
)

// =============================================================================
// OTP DTOs
// =============================================================================

// SendOtpRequest represents a request for a login code
type SendOtpRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,len=10,numeric"`
}

// SendOtpResponse confirms a code was issued. Otp is only populated when
// code exposure is enabled in configuration.
type SendOtpResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
	Otp       string    `json:"otp,omitempty"`
}

// VerifyOtpRequest represents a code verification attempt
type VerifyOtpRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,len=10,numeric"`
	Otp         string `json:"otp" binding:"required,len=6,numeric"`
}

// OwnerSummary is the logged-in owner's identity in the token response
type OwnerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	FlatNumber  string    `json:"flat_number"`
	Role        string    `json:"role"`
}

// VerifyOtpResponse carries the issued access token
type VerifyOtpResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Owner       OwnerSummary `json:"owner"`
}

// ToOwnerSummary converts a domain owner to the login summary
func ToOwnerSummary(owner *directory.Owner) OwnerSummary {
	return OwnerSummary{
		ID:          owner.ID,
		Name:        owner.Name,
		PhoneNumber: owner.PhoneNumber,
		FlatNumber:  owner.FlatNumber,
		Role:        string(owner.Role),
	}
}
