// Package error defines domain-specific errors for the ledger application.
package error

import "fmt"

// Record domain errors.
var (
	// ErrRecordNotFound is returned when a record does not exist for the user.
	ErrRecordNotFound = fmt.Errorf("record %w", ErrNotFound)

	// ErrMissingRecordFields is returned when a required record field is absent.
	ErrMissingRecordFields = fmt.Errorf("missing record fields: %w", ErrValidation)

	// ErrInvalidRecordDate is returned when day or month is out of range.
	ErrInvalidRecordDate = fmt.Errorf("invalid record date: %w", ErrValidation)

	// ErrInvalidRecordType is returned when the type is not Expense, Income or Transfer.
	ErrInvalidRecordType = fmt.Errorf("invalid record type: %w", ErrValidation)

	// ErrInvalidRecordAmount is returned when amount or fee is negative.
	ErrInvalidRecordAmount = fmt.Errorf("invalid record amount: %w", ErrValidation)

	// ErrSelfTransfer is returned when a transfer targets its own source asset.
	ErrSelfTransfer = fmt.Errorf("transfer target must differ from source: %w", ErrValidation)

	// ErrInvalidRecordQuery is returned when query filters conflict or are malformed.
	ErrInvalidRecordQuery = fmt.Errorf("invalid record query: %w", ErrValidation)

	// ErrLedgerBusy is returned when another mutation holds the user's ledger lock.
	ErrLedgerBusy = fmt.Errorf("ledger is %w", ErrBusy)
)

// RecordErrorCode defines error codes for record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingRecordFields RecordErrorCode = "REC-010001"
	ErrCodeInvalidRecordDate   RecordErrorCode = "REC-010002"
	ErrCodeInvalidRecordType   RecordErrorCode = "REC-010003"
	ErrCodeInvalidRecordAmount RecordErrorCode = "REC-010004"
	ErrCodeSelfTransfer        RecordErrorCode = "REC-010005"
	ErrCodeInvalidRecordID     RecordErrorCode = "REC-010006"

	// Lookup errors (02XXXX)
	ErrCodeRecordNotFound      RecordErrorCode = "REC-020001"
	ErrCodeSourceAssetNotFound RecordErrorCode = "REC-020002"
	ErrCodeTargetAssetNotFound RecordErrorCode = "REC-020003"

	// Query errors (03XXXX)
	ErrCodeUnpairedDateRange   RecordErrorCode = "REC-030001"
	ErrCodeDateWithMonthOrYear RecordErrorCode = "REC-030002"
	ErrCodeMonthWithoutYear    RecordErrorCode = "REC-030003"
	ErrCodeInvalidQueryMonth   RecordErrorCode = "REC-030004"
	ErrCodeInvalidQueryValue   RecordErrorCode = "REC-030005"

	// Concurrency errors (04XXXX)
	ErrCodeLedgerBusy RecordErrorCode = "REC-040001"
)

// RecordError represents a record error with code and message.
type RecordError struct {
	Code    RecordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return &RecordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
