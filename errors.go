package mailchannels

import (
	"errors"
	"fmt"

	"github.com/mailchannels/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingDKIM is returned when the DKIM default triple is absent
	// or has a blank field.
	ErrMissingDKIM = errors.New("DKIM domain, selector, and private key are required")

	// ErrNilHTTPClient is returned when an explicitly supplied HTTP
	// client is nil.
	ErrNilHTTPClient = errors.New("HTTP client must not be nil")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrForbidden is returned when the sender or domain is not allowed.
	ErrForbidden = errors.New("sender not allowed")

	// ErrPayloadTooLarge is returned when the message exceeds the size limit.
	ErrPayloadTooLarge = errors.New("message too large")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents a non-2xx response from the MailChannels API. It is
// the failure envelope for everything that happened after the request left
// the client: status, correlation id, retry hint, headers, and the raw or
// parsed body.
type APIError struct {
	// Message is the best-effort human-readable failure description
	// derived from the response body (or a generic fallback).
	Message string
	// StatusCode is the HTTP status code.
	StatusCode int
	// StatusText is the trimmed HTTP reason phrase, when present.
	StatusText string
	// RequestID is the request correlation id, when the server returned one.
	RequestID string
	// RetryAfterSeconds is the parsed Retry-After hint. Nil when the
	// header was absent or unparseable. The client never retries; this is
	// input for the caller's own retry policy.
	RetryAfterSeconds *int
	// Headers is a lower-cased snapshot of every response header. Treat
	// it as read-only.
	Headers map[string]string
	// Details is the decoded JSON body when available, the raw body text
	// when non-empty, or nil.
	Details any
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 413:
		return target == ErrPayloadTooLarge
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// ValidationError reports a structural problem with a message, detected
// before any network call. Path names the exact offending field, e.g.
// "personalizations[0].to[1].email".
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid message: %s %s", e.Path, e.Reason)
}

// wrapError converts internal API errors to public errors. Transport-level
// failures pass through unchanged so callers can distinguish connectivity
// problems from API rejections.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return &APIError{
			Message:           apiErr.Message,
			StatusCode:        apiErr.StatusCode,
			StatusText:        apiErr.StatusText,
			RequestID:         apiErr.RequestID,
			RetryAfterSeconds: apiErr.RetryAfterSeconds,
			Headers:           apiErr.Headers,
			Details:           apiErr.Details,
		}
	}

	return err
}
