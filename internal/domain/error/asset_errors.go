// Package error defines domain-specific errors for the ledger application.
package error

import "fmt"

// Asset domain errors.
var (
	// ErrAssetNotFound is returned when an asset does not exist for the user.
	ErrAssetNotFound = fmt.Errorf("asset %w", ErrNotFound)

	// ErrTargetAssetNotFound is returned when a transfer target does not exist for the user.
	ErrTargetAssetNotFound = fmt.Errorf("target asset %w", ErrNotFound)

	// ErrInvalidAssetCategory is returned when the category is not Cash, Bank or E-Wallet.
	ErrInvalidAssetCategory = fmt.Errorf("invalid asset category: %w", ErrValidation)

	// ErrNegativeAssetAmount is returned when an asset update sets a negative balance.
	ErrNegativeAssetAmount = fmt.Errorf("asset amount cannot be negative: %w", ErrValidation)

	// ErrMissingAssetFields is returned when required asset fields are absent.
	ErrMissingAssetFields = fmt.Errorf("missing asset fields: %w", ErrValidation)
)

// AssetErrorCode defines error codes for asset errors.
// Format: AST-XXYYYY where XX is category and YYYY is specific error.
type AssetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAssetCategory AssetErrorCode = "AST-010001"
	ErrCodeNegativeAssetAmount  AssetErrorCode = "AST-010002"
	ErrCodeMissingAssetFields   AssetErrorCode = "AST-010003"
	ErrCodeInvalidAssetID       AssetErrorCode = "AST-010004"

	// Lookup errors (02XXXX)
	ErrCodeAssetNotFound AssetErrorCode = "AST-020001"
)

// AssetError represents an asset error with code and message.
type AssetError struct {
	Code    AssetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AssetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AssetError) Unwrap() error {
	return e.Err
}

// NewAssetError creates a new AssetError with the given code and message.
func NewAssetError(code AssetErrorCode, message string, err error) *AssetError {
	return &AssetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
