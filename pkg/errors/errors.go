package errors

import "fmt"

// ErrorType represents different types of failures that can occur during a run
type ErrorType string

const (
	ErrorTypeTimeout       ErrorType = "timeout"
	ErrorTypeHTTP          ErrorType = "http"
	ErrorTypeParsing       ErrorType = "parsing"
	ErrorTypeExhausted     ErrorType = "exhausted"
	ErrorTypeUnrecoverable ErrorType = "unrecoverable"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// Error represents a scraper failure with type information. Failures travel
// as values through the pipeline so a failed item can be skipped without
// aborting its chunk.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Timeout creates a timeout failure for the given URL.
func Timeout(url string) *Error {
	return &Error{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("request to %q timed out", url),
	}
}

// HTTP creates an HTTP failure carrying the response status. Code 0 means
// the request never produced a response (transport-level failure).
func HTTP(url string, status int, cause error) *Error {
	msg := fmt.Sprintf("request to %q failed", url)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{
		Type:    ErrorTypeHTTP,
		Message: msg,
		Code:    status,
	}
}

// Parsing creates a failure for markup missing expected structure.
func Parsing(url string, detail string) *Error {
	return &Error{
		Type:    ErrorTypeParsing,
		Message: fmt.Sprintf("%s in %q", detail, url),
	}
}

// Exhausted signals that pagination ended before n candidates were found.
// It is a warning: the partial result is still processed.
func Exhausted(want, got int) *Error {
	return &Error{
		Type:    ErrorTypeExhausted,
		Message: fmt.Sprintf("pagination exhausted after %d of %d links", got, want),
	}
}

// Unrecoverable signals a condition that aborts the run with a non-zero exit.
func Unrecoverable(msg string) *Error {
	return &Error{
		Type:    ErrorTypeUnrecoverable,
		Message: msg,
	}
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeTimeout, ErrorTypeHTTP:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 500, 502, 503, 504: // Server errors
		return true
	case 401, 403, 404: // Client errors that won't change
		return false
	default:
		return statusCode >= 500 // Retry all 5xx errors
	}
}
