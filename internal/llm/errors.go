package llm

import (
	"errors"
	"fmt"
)

const maxErrorBody = 300

// TransportError is a failed exchange with the backend: a non-2xx status or
// a connection that never produced a response (StatusCode 0).
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		msg := fmt.Sprintf("%s request failed with status %d", e.Provider, e.StatusCode)
		if body := truncate(e.Body, maxErrorBody); body != "" {
			msg += ": " + body
		}
		return msg
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the backend answered 2xx but the envelope around the
// model reply could not be read.
type DecodeError struct {
	Provider string
	Body     string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Provider, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsTransient reports whether err came from the transport layer and may
// succeed if the same request is sent again.
func IsTransient(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var de *DecodeError
	return errors.As(err, &de)
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
