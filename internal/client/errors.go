package client

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the only error kind the client reports. Connectivity
// failures, non-2xx responses and malformed bodies all match it.
var ErrRequestFailed = errors.New("items api request failed")

// RequestError carries the detail of a failed call for logging.
type RequestError struct {
	Op         string
	Method     string
	URL        string
	RequestID  string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s: status %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// LogAttrs returns the error detail as slog key/value pairs.
func (e *RequestError) LogAttrs() []any {
	return []any{
		"op", e.Op,
		"method", e.Method,
		"url", e.URL,
		"status", e.StatusCode,
		"request_id", e.RequestID,
		"error", e.Err,
	}
}

var errUnexpectedStatus = errors.New("unexpected status")
