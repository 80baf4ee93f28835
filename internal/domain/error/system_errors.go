package error

// SystemErrorCode defines error codes raised by the HTTP layer itself.
type SystemErrorCode string

const (
	ErrCodeInvalidRequest SystemErrorCode = "SYS-010001"
	ErrCodeRateLimited    SystemErrorCode = "SYS-020001"
	ErrCodeInternal       SystemErrorCode = "SYS-050001"
)
