// Package error defines domain-specific errors for the FiscalOps application.
package error

import "errors"

// Tax analysis domain errors.
var (
	// ErrNegativeTaxableIncome is returned when the calculator is handed a
	// negative taxable income. Deductions exceeding income must be clamped to
	// zero at the call site; the calculator never silently corrects the input.
	ErrNegativeTaxableIncome = errors.New("taxable income must not be negative")

	// ErrSnapshotNotFound is returned when a snapshot is not found.
	ErrSnapshotNotFound = errors.New("tax analysis snapshot not found")

	// ErrSnapshotWriteFailed is returned when the snapshot insert fails. The
	// calculation run fails as a whole; computed numbers are never reported
	// as saved when they were not durably recorded.
	ErrSnapshotWriteFailed = errors.New("failed to persist tax analysis snapshot")

	// ErrAdvisoryUnavailable is returned when the risk advisory service is not configured.
	ErrAdvisoryUnavailable = errors.New("risk advisory service is not available")
)

// TaxAnalysisErrorCode defines error codes for tax analysis errors.
// Format: TAX-XXYYYY where XX is category and YYYY is specific error.
type TaxAnalysisErrorCode string

const (
	// Input contract errors (01XXXX)
	ErrCodeNegativeTaxableIncome TaxAnalysisErrorCode = "TAX-010001"
	ErrCodeInvalidAnalysisPeriod TaxAnalysisErrorCode = "TAX-010002"

	// Lookup errors (02XXXX)
	ErrCodeSnapshotNotFound TaxAnalysisErrorCode = "TAX-020001"

	// Persistence errors (03XXXX)
	ErrCodeSnapshotWriteFailed TaxAnalysisErrorCode = "TAX-030001"

	// Advisory errors (04XXXX)
	ErrCodeAdvisoryUnavailable TaxAnalysisErrorCode = "TAX-040001"
)

// TaxAnalysisError represents a tax analysis error with code and message.
type TaxAnalysisError struct {
	Code    TaxAnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TaxAnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TaxAnalysisError) Unwrap() error {
	return e.Err
}

// NewTaxAnalysisError creates a new TaxAnalysisError with the given code and message.
func NewTaxAnalysisError(code TaxAnalysisErrorCode, message string, err error) *TaxAnalysisError {
	return &TaxAnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
