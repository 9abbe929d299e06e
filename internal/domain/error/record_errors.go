// Package error defines domain-specific errors for the FiscalOps application.
package error

import "errors"

// Financial record domain errors (deduction and income records).
var (
	// ErrDeductionNotFound is returned when a deduction record is not found.
	ErrDeductionNotFound = errors.New("deduction record not found")

	// ErrIncomeNotFound is returned when an income record is not found.
	ErrIncomeNotFound = errors.New("income record not found")

	// ErrNotAuthorizedToModifyRecord is returned when a record does not belong to the caller.
	ErrNotAuthorizedToModifyRecord = errors.New("not authorized to modify record")

	// ErrNegativeRecordAmount is returned when a record amount is negative.
	ErrNegativeRecordAmount = errors.New("record amount must not be negative")

	// ErrInvalidDeductionStatus is returned when a review decision is not approved or rejected.
	ErrInvalidDeductionStatus = errors.New("review decision must be 'approved' or 'rejected'")

	// ErrDeductionAlreadyReviewed is returned when re-reviewing a non-pending deduction.
	ErrDeductionAlreadyReviewed = errors.New("deduction record has already been reviewed")

	// ErrRecordDescriptionTooLong is returned when a record description exceeds the maximum length.
	ErrRecordDescriptionTooLong = errors.New("description too long")
)

// RecordErrorCode defines error codes for financial record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeRecordAmount     RecordErrorCode = "REC-010001"
	ErrCodeInvalidDeductionStatus   RecordErrorCode = "REC-010002"
	ErrCodeRecordDescriptionTooLong RecordErrorCode = "REC-010003"
	ErrCodeMissingRecordFields      RecordErrorCode = "REC-010004"
	ErrCodeInvalidRecordDate        RecordErrorCode = "REC-010005"

	// Lookup/ownership errors (02XXXX)
	ErrCodeDeductionNotFound        RecordErrorCode = "REC-020001"
	ErrCodeIncomeNotFound           RecordErrorCode = "REC-020002"
	ErrCodeNotAuthorizedRecord      RecordErrorCode = "REC-020003"
	ErrCodeDeductionAlreadyReviewed RecordErrorCode = "REC-020004"
)

// RecordError represents a financial record error with code and message.
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
