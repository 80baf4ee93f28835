package error

import "errors"

// Loan domain errors.
var (
	// ErrLoanNotFound is returned when a loan is not found in the system.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrLoanNameRequired is returned when the loan name is empty.
	ErrLoanNameRequired = errors.New("loan name is required")

	// ErrLoanNameTooLong is returned when the loan name exceeds the maximum length.
	ErrLoanNameTooLong = errors.New("loan name too long")

	// ErrInvalidLoanAmount is returned when the loan amount is not strictly positive.
	ErrInvalidLoanAmount = errors.New("loan amount must be greater than zero")

	// ErrLoanAmountTooLarge is returned when the loan amount is above the supported maximum.
	ErrLoanAmountTooLarge = errors.New("loan amount too large")

	// ErrLoanNotUnpaid is returned when a half payment is attempted on a loan that is not unpaid.
	ErrLoanNotUnpaid = errors.New("loan is not unpaid")

	// ErrLoanAlreadyPaid is returned when a payment is attempted on a settled loan.
	ErrLoanAlreadyPaid = errors.New("loan is already paid")
)

// LoanErrorCode defines error codes for loan errors.
// Format: LOAN-XXYYYY where XX is category and YYYY is specific error.
type LoanErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidLoanAmount    LoanErrorCode = "LOAN-010001"
	ErrCodeLoanNameRequired     LoanErrorCode = "LOAN-010002"
	ErrCodeLoanNotFound         LoanErrorCode = "LOAN-010003"
	ErrCodeLoanCategoryNotFound LoanErrorCode = "LOAN-010004"
	ErrCodeLoanNameTooLong      LoanErrorCode = "LOAN-010005"
	ErrCodeMissingLoanFields    LoanErrorCode = "LOAN-010006"
	ErrCodeLoanAmountTooLarge   LoanErrorCode = "LOAN-010007"

	// Funds errors (02XXXX)
	ErrCodeLoanInsufficientFunds    LoanErrorCode = "LOAN-020001"
	ErrCodeLoanBalanceLimitExceeded LoanErrorCode = "LOAN-020002"

	// State transition errors (03XXXX)
	ErrCodeLoanNotUnpaid   LoanErrorCode = "LOAN-030001"
	ErrCodeLoanAlreadyPaid LoanErrorCode = "LOAN-030002"
)

// LoanError represents a loan error with code and message.
type LoanError struct {
	Code    LoanErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LoanError) Unwrap() error {
	return e.Err
}

// NewLoanError creates a new LoanError with the given code and message.
func NewLoanError(code LoanErrorCode, message string, err error) *LoanError {
	return &LoanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
