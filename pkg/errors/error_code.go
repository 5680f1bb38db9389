package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidVersion       ErrorCode = 103

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound ErrorCode = 200
	ErrCodeEmptyPayload ErrorCode = 201

	// API/transport errors (300-399)
	ErrCodeRequestFailed      ErrorCode = 300
	ErrCodeBackendUnavailable ErrorCode = 301
	ErrCodeUnexpectedStatus   ErrorCode = 302
	ErrCodeVersionTooOld      ErrorCode = 303

	// Feed errors (400-499)
	ErrCodeFeedParseFailed ErrorCode = 400
	ErrCodeFeedStopped     ErrorCode = 401
	ErrCodeUnknownFeed     ErrorCode = 402
)
