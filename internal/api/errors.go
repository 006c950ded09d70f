package api

import "fmt"

// Error represents a non-2xx response from the send API. It carries the
// full normalized failure envelope so callers can build their own retry
// policy on top.
type Error struct {
	// Message is the best-effort human-readable failure description
	// derived from the response body (or a generic fallback).
	Message string
	// StatusCode is the HTTP status code.
	StatusCode int
	// StatusText is the trimmed HTTP reason phrase, when present.
	StatusText string
	// RequestID is the request correlation id, when the server returned
	// one.
	RequestID string
	// RetryAfterSeconds is the parsed Retry-After hint. Nil when the
	// header was absent or unparseable.
	RetryAfterSeconds *int
	// Headers is a lower-cased snapshot of every response header. Treat
	// it as read-only.
	Headers map[string]string
	// Details is the decoded JSON body when available, the raw body text
	// when non-empty, or nil.
	Details any
}

func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}
