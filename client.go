package mailchannels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mailchannels/client-go/internal/api"
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// and callers with custom transports can substitute their own.
type Doer = api.Doer

// SendResult is the success envelope returned by Send.
type SendResult = api.SendResult

// Client is the MailChannels send API client. It holds only immutable
// configuration after construction, so a single Client may be shared
// across goroutines and Send may be called concurrently.
type Client struct {
	api  *api.Client
	dkim DKIM
}

// New creates a new MailChannels client with the given API key. The DKIM
// default triple is required; supply it with WithDKIM. Construction fails
// fast on a blank API key, an incomplete DKIM triple, or a nil explicitly
// supplied HTTP client.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	dkim := cfg.dkim.trimmed()
	if !dkim.complete() {
		return nil, ErrMissingDKIM
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		if cfg.httpClientSet {
			return nil, ErrNilHTTPClient
		}
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		HTTPClient: httpClient,
		Headers:    cfg.headers,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		api:  apiClient,
		dkim: dkim,
	}, nil
}

// DKIM returns the client's default signing triple.
func (c *Client) DKIM() DKIM {
	return c.dkim
}

// Send delivers a message through the API. The DKIM defaults are merged
// into the message, the result is validated, and a single POST is issued;
// a structurally invalid message is rejected before the transport is ever
// invoked. Cancellation is cooperative via ctx and is passed through to
// the transport.
//
// On a 2xx response Send returns the SendResult; otherwise it returns a
// *APIError. Transport failures are returned unchanged.
func (c *Client) Send(ctx context.Context, msg *Message, opts ...SendOption) (*SendResult, error) {
	if msg == nil {
		return nil, &ValidationError{Path: "message", Reason: "must not be nil"}
	}

	cfg := &sendConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	merged := mergeDKIM(c.dkim, msg)
	if err := validateMessage(merged); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	result, err := c.api.Send(ctx, payload, api.SendOptions{
		DryRun:         cfg.dryRun,
		IdempotencyKey: cfg.idempotencyKey,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// NewIdempotencyKey returns a random key suitable for WithIdempotencyKey.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
