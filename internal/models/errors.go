package models

import "time"

// ErrorEnvelope is the body of every JSON error response. Path is only set by the
// panic recovery middleware, which has no handler-specific context to offer.
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path,omitempty"`
}

// NewErrorEnvelope stamps an error body with the current time. Callers sanitize message.
func NewErrorEnvelope(errorType, message string) ErrorEnvelope {
	return ErrorEnvelope{
		Error:     errorType,
		Message:   message,
		Timestamp: FormatTimestamp(time.Now()),
	}
}
