package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Default client settings.
const (
	// DefaultTimeout is the timeout applied to the ambient HTTP client.
	DefaultTimeout = 30 * time.Second

	// sendPath is the single endpoint this client talks to, relative to
	// the base URL.
	sendPath = "send"

	// dryRunQuery requests upstream validation without delivery.
	dryRunQuery = "dry-run=true"
)

// Request header names.
const (
	apiKeyHeader      = "X-Api-Key"
	idempotencyHeader = "Idempotency-Key"
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// substitute their own implementations.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config configures the API client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.mailchannels.net/tx/v1/".
	// Any number of trailing slashes is accepted; the client normalizes
	// to exactly one.
	BaseURL string
	// APIKey authenticates every request via the X-Api-Key header.
	APIKey string
	// HTTPClient is the transport used for the single network call per
	// send. Defaults to an *http.Client with DefaultTimeout.
	HTTPClient Doer
	// Headers are default headers applied to every request. They fill in
	// alongside the fixed headers but never override them.
	Headers map[string]string
}

// Client is the HTTP API client for the send endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient Doer
	headers    map[string]string
}

// NewClient creates a new API client from the given config.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	// Copy the configured headers with canonical names so the client stays
	// immutable after construction and case-variant names collide with the
	// fixed headers instead of slipping past the merge.
	headers := make(map[string]string, len(cfg.Headers))
	for name, value := range cfg.Headers {
		headers[http.CanonicalHeaderKey(name)] = value
	}

	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: httpClient,
		headers:    headers,
	}, nil
}

// normalizeBaseURL ensures the base URL ends with exactly one slash so
// relative paths can be appended directly.
func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/"
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendOptions carries per-call options for Send.
type SendOptions struct {
	// DryRun requests upstream validation without delivery.
	DryRun bool
	// IdempotencyKey, when non-empty, is sent as the Idempotency-Key
	// header so the upstream can deduplicate retried requests.
	IdempotencyKey string
}

// Send POSTs the JSON-encoded payload to the send endpoint and normalizes
// the response. Transport failures are returned unchanged; non-2xx
// responses are returned as *Error.
func (c *Client) Send(ctx context.Context, payload []byte, opts SendOptions) (*SendResult, error) {
	endpoint := c.baseURL + sendPath
	if opts.DryRun {
		endpoint += "?" + dryRunQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		apiKeyHeader:   c.apiKey,
	}
	if opts.IdempotencyKey != "" {
		headers[idempotencyHeader] = opts.IdempotencyKey
	}
	// Configured defaults fill in around the fixed headers; mergo keeps
	// existing keys intact.
	if err := mergo.Merge(&headers, c.headers); err != nil {
		return nil, fmt.Errorf("merge default headers: %w", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failure: return as-is so callers can tell connectivity
		// problems from API rejections.
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return normalizeResponse(resp.StatusCode, statusText(resp), resp.Header, body)
}

// statusText extracts the reason phrase from a response status line, e.g.
// "Service Unavailable" from "503 Service Unavailable". A status line that
// does not lead with the numeric code is passed through trimmed.
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	return strings.TrimSpace(text)
}
