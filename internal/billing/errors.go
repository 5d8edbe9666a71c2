package billing

import (
	"errors"
	"fmt"
)

// Common billing client errors
var (
	// ErrUnauthorized indicates that the service refused the credentials or
	// the access token. Never retried without signing in again.
	ErrUnauthorized = errors.New("billing: unauthorized")

	// ErrMalformedResponse indicates a response that could not be decoded.
	ErrMalformedResponse = errors.New("billing: malformed response")
)

// StatusError reports a non-2xx response from the billing service.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("billing: server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("billing: server error (%d)", e.StatusCode)
}

// IsTransient reports whether err indicates a failure that may succeed on
// retry: timeouts, connection failures, lost or garbled responses and
// 5xx-class status codes. Business-rule rejections (4xx) and authorization
// failures are not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnauthorized) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}
	// Request-level failures: dial errors, timeouts, connection resets and
	// malformed responses. With the idempotency token on every attempt, a
	// retry after a lost response cannot double-charge.
	return true
}
