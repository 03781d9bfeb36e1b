package apperrors

// ErrorCode is the machine-readable cause sent to clients next to the message.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeUpstreamFailure  ErrorCode = "UPSTREAM_FAILURE"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
)
