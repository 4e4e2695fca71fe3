// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Email delivery errors.
var (
	ErrEmailEnqueue      = errors.New("failed to queue email")
	ErrUnknownEmailKind  = errors.New("unknown email kind")
	ErrEmailRejected     = errors.New("email rejected by provider")
	ErrEmailUnavailable  = errors.New("email provider unavailable")
	ErrEmailRenderFailed = errors.New("failed to render email")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailEnqueue EmailErrorCode = "EMAIL-010001"

	// Provider errors (02XXXX)
	ErrCodeEmailRejected    EmailErrorCode = "EMAIL-020001"
	ErrCodeEmailUnavailable EmailErrorCode = "EMAIL-020002"

	// Template errors (03XXXX)
	ErrCodeUnknownEmailKind  EmailErrorCode = "EMAIL-030001"
	ErrCodeEmailRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailError reports whether retrying the delivery cannot succeed.
func IsPermanentEmailError(err error) bool {
	return errors.Is(err, ErrEmailRejected) || errors.Is(err, ErrUnknownEmailKind) || errors.Is(err, ErrEmailRenderFailed)
}
