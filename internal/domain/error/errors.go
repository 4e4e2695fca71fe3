// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Error kinds. Every domain sentinel wraps exactly one of these so callers can
// classify failures with errors.Is without knowing the concrete sentinel.
var (
	// ErrValidation marks malformed, missing or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing user, asset or record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a request that collides with existing state.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated marks a missing, invalid or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrBusy marks a ledger that is locked by another mutation.
	ErrBusy = errors.New("resource busy")
)
