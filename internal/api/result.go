package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/julianstephens/habithaven/internal/constants"
)

// Result is the uniform outcome of a backend call. Exactly one of Data or
// Error is meaningful, depending on Success.
type Result struct {
	Success    bool
	Data       json.RawMessage
	Error      string
	StatusCode int
}

// Err converts a failed Result into an *Error. It returns nil on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	msg := r.Error
	if msg == "" {
		msg = constants.MsgFallbackError
	}
	return &Error{StatusCode: r.StatusCode, Message: msg}
}

// Error is a failed backend call. StatusCode is 0 when no response was received.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 or carries a "not found" message
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 404 || strings.Contains(strings.ToLower(apiErr.Message), "not found")
}

// IsNetwork reports whether err is a transport failure (no response received)
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}

// Message returns the backend-facing message of err, unwrapping service context
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
