package error

import "errors"

// Allocation domain errors.
var (
	// ErrInvalidPercentage is returned when a percentage is outside [0, 100] or too precise.
	ErrInvalidPercentage = errors.New("invalid percentage")

	// ErrAllocationExceeded is returned when the total allocation would go over 100%.
	ErrAllocationExceeded = errors.New("total allocation exceeds 100%")

	// ErrNoActiveCategories is returned when no category can receive global income.
	ErrNoActiveCategories = errors.New("no category with a positive percentage")
)

// AllocationErrorCode defines error codes for allocation errors.
// Format: ALC-XXYYYY where XX is category and YYYY is specific error.
type AllocationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPercentage  AllocationErrorCode = "ALC-010001"
	ErrCodeAllocationExceeded AllocationErrorCode = "ALC-010002"
	ErrCodeNoActiveCategories AllocationErrorCode = "ALC-010003"
)

// AllocationError represents an allocation error with code and message.
type AllocationError struct {
	Code    AllocationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// NewAllocationError creates a new AllocationError with the given code and message.
func NewAllocationError(code AllocationErrorCode, message string, err error) *AllocationError {
	return &AllocationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
