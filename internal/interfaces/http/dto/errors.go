package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Conflicts derived from storage uniqueness constraints are uniformly 409:
// the loser of a race must see a conflict, never a validation error.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// OTP verification
	"INVALID_OTP":           http.StatusBadRequest,
	"OTP_EXPIRED":           http.StatusBadRequest,
	"OTP_ATTEMPTS_EXCEEDED": http.StatusTooManyRequests,
	"OTP_GENERATION_FAILED": http.StatusInternalServerError,

	// Lookups
	"NOT_FOUND":              http.StatusNotFound,
	"TREASURER_NOT_ASSIGNED": http.StatusNotFound,

	// Uniqueness conflicts
	"ALREADY_EXISTS":             http.StatusConflict,
	"TREASURER_ALREADY_ASSIGNED": http.StatusConflict,
	"DUPLICATE_TRANSACTION":      http.StatusConflict,
	"ALREADY_PAID":               http.StatusConflict,
	"CONCURRENCY_CONFLICT":       http.StatusConflict,

	// Input validation
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_PHONE":          http.StatusBadRequest,
	"INVALID_FLAT":           http.StatusBadRequest,
	"INVALID_ROLE":           http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_UPI":            http.StatusBadRequest,
	"INVALID_FAMILY":         http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_OWNER":          http.StatusBadRequest,
	"INVALID_TRANSACTION_ID": http.StatusBadRequest,
	"INVALID_PAYMENT_TYPE":   http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_SNAPSHOT":       http.StatusBadRequest,
	"RECEIPT_TOO_LARGE":      http.StatusRequestEntityTooLarge,
	"RECEIPT_UPLOAD_FAILED":  http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
