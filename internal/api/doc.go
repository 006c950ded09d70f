// Package api provides HTTP client functionality for communicating with the
// MailChannels transactional send API. It handles authentication, request
// construction, and normalization of upstream responses into either a send
// result or a structured error.
//
// # Client Creation
//
// Create a client with [NewClient], passing a [Config] with at least the
// base URL and API key. The API key is sent via the X-Api-Key header on
// every request.
//
// # Response Normalization
//
// [Client.Send] issues a single POST to the send endpoint and hands the raw
// status, headers, and body to the normalizer. Success responses (2xx)
// become a [SendResult]; everything else becomes an [*Error] carrying the
// HTTP status, a best-effort human-readable message extracted from the
// response body, the request correlation id, a Retry-After hint, and a
// lower-cased snapshot of all response headers.
//
// Transport-level failures (connection errors, cancellation) are returned
// unchanged so callers can distinguish them from API-level rejections.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may
// call methods on a single Client simultaneously.
package api
