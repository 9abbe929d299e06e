// Package error defines domain-specific errors for the FiscalOps application.
package error

import "errors"

// Bracket table domain errors.
var (
	// ErrBracketTableNotFound is returned when no bracket table is defined for
	// a (jurisdiction, taxYear) pair. Callers fall back to the configured flat
	// rate rather than treating this as a hard failure.
	ErrBracketTableNotFound = errors.New("bracket table not found for jurisdiction and tax year")

	// ErrEmptyBracketTable is returned when an imported bracket table has no rows.
	ErrEmptyBracketTable = errors.New("bracket table is empty")

	// ErrBracketTableGap is returned when brackets are not contiguous.
	ErrBracketTableGap = errors.New("bracket table has a gap")

	// ErrBracketTableOverlap is returned when brackets overlap or are inverted.
	ErrBracketTableOverlap = errors.New("bracket table has overlapping brackets")

	// ErrMissingTopBracket is returned when no bracket is open-ended.
	ErrMissingTopBracket = errors.New("bracket table has no open-ended top bracket")

	// ErrUnboundedBracketNotLast is returned when an open-ended bracket is not the last one.
	ErrUnboundedBracketNotLast = errors.New("open-ended bracket must be the top bracket")

	// ErrInvalidBracketRate is returned when a rate is outside [0, 1].
	ErrInvalidBracketRate = errors.New("bracket rate must be between 0 and 1")

	// ErrNegativeBracketBound is returned when a bracket bound is negative.
	ErrNegativeBracketBound = errors.New("bracket bounds must not be negative")
)

// BracketErrorCode defines error codes for bracket table errors.
// Format: BRK-XXYYYY where XX is category and YYYY is specific error.
type BracketErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyBracketTable       BracketErrorCode = "BRK-010001"
	ErrCodeBracketTableGap         BracketErrorCode = "BRK-010002"
	ErrCodeBracketTableOverlap     BracketErrorCode = "BRK-010003"
	ErrCodeMissingTopBracket       BracketErrorCode = "BRK-010004"
	ErrCodeUnboundedBracketNotLast BracketErrorCode = "BRK-010005"
	ErrCodeInvalidBracketRate      BracketErrorCode = "BRK-010006"
	ErrCodeNegativeBracketBound    BracketErrorCode = "BRK-010007"
	ErrCodeInvalidTaxYear          BracketErrorCode = "BRK-010008"

	// Lookup errors (02XXXX)
	ErrCodeBracketTableNotFound BracketErrorCode = "BRK-020001"
)

// BracketError represents a bracket table error with code and message.
type BracketError struct {
	Code    BracketErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BracketError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BracketError) Unwrap() error {
	return e.Err
}

// NewBracketError creates a new BracketError with the given code and message.
func NewBracketError(code BracketErrorCode, message string, err error) *BracketError {
	return &BracketError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
