package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks network-level failures (dial, timeout, reset).
	ErrTransport = errors.New("backend transport failure")
	// ErrStatus marks non-2xx responses. Use errors.As with *StatusError for the code.
	ErrStatus = errors.New("backend returned non-success status")
	// ErrMalformed marks response bodies that do not decode into the expected shape.
	ErrMalformed = errors.New("backend returned malformed body")
)

// StatusError carries the status code of a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string // truncated response body, for diagnostics only
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

// Is lets errors.Is(err, ErrStatus) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// StatusCode returns the HTTP status of err if it is a StatusError, else 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Kind names the failure category of err for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "other"
	}
}
