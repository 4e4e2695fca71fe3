// Package error defines domain-specific errors for the ledger application.
package error

import "fmt"

// Authentication domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrEmailAlreadyExists is returned when attempting to register with an existing email.
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", ErrConflict)

	// ErrWeakPassword is returned when the provided password does not meet requirements.
	ErrWeakPassword = fmt.Errorf("password does not meet minimum requirements: %w", ErrConflict)

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)

	// ErrEmailNotVerified is returned when an unverified user tries to log in.
	ErrEmailNotVerified = fmt.Errorf("email not verified: %w", ErrUnauthenticated)

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrUnauthenticated)

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = fmt.Errorf("token has expired: %w", ErrUnauthenticated)

	// ErrInvalidResetToken is returned when a password reset token is invalid.
	ErrInvalidResetToken = fmt.Errorf("invalid or expired password reset token: %w", ErrValidation)

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = fmt.Errorf("invalid email format: %w", ErrValidation)

	// ErrMissingAuthFields is returned when email or password is absent.
	ErrMissingAuthFields = fmt.Errorf("email and password are required: %w", ErrValidation)
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
	ErrCodeEmailNotVerified   AuthErrorCode = "AUTH-020004"

	// Token errors (03XXXX)
	ErrCodeInvalidToken             AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken             AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken             AuthErrorCode = "AUTH-030003"
	ErrCodeInvalidVerificationToken AuthErrorCode = "AUTH-030004"

	// Password reset errors (04XXXX)
	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
