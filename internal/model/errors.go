package model

import (
	"fmt"
	"time"
)

// HTTPError is returned for any non-2xx response from the backend. Message
// carries the "message" field of the JSON error body, empty when the body had
// none or was not JSON.
type HTTPError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
