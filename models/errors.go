package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidURL     = "INVALID_URL"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeParseFailed    = "PARSE_FAILED"
	ErrCodeMissingURL     = "MISSING_URL"
	ErrCodeMissingContent = "MISSING_CONTENT"
	ErrCodeNotImplemented = "NOT_IMPLEMENTED"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeProxyFailed    = "PROXY_ERROR"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PreviewError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type PreviewError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *PreviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PreviewError) Unwrap() error {
	return e.Err
}

// NewPreviewError creates a new PreviewError.
func NewPreviewError(code, message string, err error) *PreviewError {
	return &PreviewError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *PreviewError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
