package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// messageKeys are the candidate keys searched, in order, when deriving a
// human-readable message from a JSON error body.
var messageKeys = []string{"message", "error_description", "detail", "error"}

// requestIDHeaders are checked in priority order when extracting the
// request correlation id.
var requestIDHeaders = []string{
	"X-Request-Id",
	"X-Mailchannels-Request-Id",
	"X-Mc-Request-Id",
	"Cf-Ray",
}

// normalizeResponse turns a raw HTTP response into either a SendResult
// (2xx) or an *Error (everything else).
func normalizeResponse(status int, statusText string, header http.Header, body []byte) (*SendResult, error) {
	parsed, isJSON := parseJSONBody(header, body)

	if status >= 200 && status <= 299 {
		return successResult(status, parsed, isJSON, body), nil
	}

	return nil, buildError(status, statusText, header, body, parsed, isJSON)
}

// successResult builds the success envelope. A JSON object carrying only a
// string id yields the id with no Data; any other non-empty body surfaces
// as Data.
func successResult(status int, parsed any, isJSON bool, body []byte) *SendResult {
	result := &SendResult{Status: status}

	if !isJSON {
		if len(body) > 0 {
			result.Data = string(body)
		}
		return result
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		result.Data = parsed
		return result
	}

	id, hasID := obj["id"].(string)
	if hasID {
		result.ID = id
	}
	if hasID && len(obj) == 1 {
		return result
	}
	if len(obj) > 0 {
		result.Data = obj
	}
	return result
}

// buildError assembles the structured error for a non-2xx response.
func buildError(status int, statusText string, header http.Header, body []byte, parsed any, isJSON bool) *Error {
	apiErr := &Error{
		StatusCode:        status,
		StatusText:        strings.TrimSpace(statusText),
		RequestID:         requestID(header),
		RetryAfterSeconds: retryAfterSeconds(header, time.Now()),
		Headers:           headerSnapshot(header),
	}

	var message string
	if isJSON {
		apiErr.Details = parsed
		message = extractMessage(parsed)
	} else if len(body) > 0 {
		apiErr.Details = string(body)
	}

	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		if apiErr.StatusText != "" {
			message = fmt.Sprintf("request failed with %d %s", status, apiErr.StatusText)
		} else {
			message = fmt.Sprintf("request failed with %d", status)
		}
	}
	apiErr.Message = message

	return apiErr
}

// parseJSONBody decodes the body when the response declares a JSON content
// type and the body is non-empty. A decode failure is absorbed: the body is
// then treated as opaque text.
func parseJSONBody(header http.Header, body []byte) (any, bool) {
	if len(body) == 0 {
		return nil, false
	}
	contentType := strings.ToLower(header.Get("Content-Type"))
	if !strings.Contains(contentType, "json") {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, false
	}
	return value, true
}

// extractMessage searches a decoded JSON value depth-first for a usable
// message string. Top-level candidate keys win over a nested "error"
// object, which wins over walking the "errors" array in order; the first
// non-blank string found anywhere is returned.
func extractMessage(value any) string {
	obj, ok := value.(map[string]any)
	if !ok {
		return ""
	}

	for _, key := range messageKeys {
		if s, ok := obj[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}

	if nested, ok := obj["error"].(map[string]any); ok {
		if msg := extractMessage(nested); msg != "" {
			return msg
		}
	}

	if list, ok := obj["errors"].([]any); ok {
		for _, entry := range list {
			switch entry := entry.(type) {
			case string:
				if s := strings.TrimSpace(entry); s != "" {
					return s
				}
			case map[string]any:
				if msg := extractMessage(entry); msg != "" {
					return msg
				}
			}
		}
	}

	return ""
}

// requestID returns the first non-blank correlation id header.
func requestID(header http.Header) string {
	for _, name := range requestIDHeaders {
		if id := strings.TrimSpace(header.Get(name)); id != "" {
			return id
		}
	}
	return ""
}

// retryAfterSeconds parses the Retry-After header. Integer seconds are
// clamped to zero-or-greater; an HTTP date yields the seconds until that
// date, clamped to zero. Anything else leaves the hint unset.
func retryAfterSeconds(header http.Header, now time.Time) *int {
	raw := strings.TrimSpace(header.Get("Retry-After"))
	if raw == "" {
		return nil
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds < 0 {
			seconds = 0
		}
		return &seconds
	}

	if at, err := http.ParseTime(raw); err == nil {
		seconds := int(math.Ceil(at.Sub(now).Seconds()))
		if seconds < 0 {
			seconds = 0
		}
		return &seconds
	}

	return nil
}

// headerSnapshot captures all response headers with lower-cased names.
// Multi-valued headers are joined with ", ".
func headerSnapshot(header http.Header) map[string]string {
	snapshot := make(map[string]string, len(header))
	for name, values := range header {
		snapshot[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return snapshot
}
