// Package error defines domain-specific errors for the envelope ledger.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when the category name is empty.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrCategoryHasTransactions is returned when deleting a category that still has transactions.
	ErrCategoryHasTransactions = errors.New("category has transactions")

	// ErrCategoryHasOutstandingLoans is returned when deleting a category with loans not yet paid.
	ErrCategoryHasOutstandingLoans = errors.New("category has outstanding loans")

	// ErrCategoryInUse is returned by the store when a foreign key still references the category.
	ErrCategoryInUse = errors.New("category is referenced by other records")

	// ErrBalanceLimitExceeded is returned by the store when a credit would push a balance past its limit.
	ErrBalanceLimitExceeded = errors.New("category balance limit exceeded")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameRequired  CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryID     CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010005"

	// Referential conflicts (03XXXX)
	ErrCodeCategoryHasTransactions     CategoryErrorCode = "CAT-030001"
	ErrCodeCategoryHasOutstandingLoans CategoryErrorCode = "CAT-030002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
