package mailchannels

import "time"

const (
	defaultBaseURL = "https://api.mailchannels.net/tx/v1/"
	defaultTimeout = 30 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL       string
	httpClient    Doer
	httpClientSet bool
	timeout       time.Duration
	headers       map[string]string
	dkim          DKIM
}

// sendConfig holds per-call configuration for Send.
type sendConfig struct {
	dryRun         bool
	idempotencyKey string
}

// Option configures the client.
type Option func(*clientConfig)

// SendOption configures a single Send call.
type SendOption func(*sendConfig)

// WithBaseURL sets the API base URL. Trailing slashes are normalized.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. This is the sole network
// boundary; substitute it for testing.
func WithHTTPClient(client Doer) Option {
	return func(c *clientConfig) {
		c.httpClient = client
		c.httpClientSet = true
	}
}

// WithTimeout sets the timeout of the ambient HTTP client. It has no
// effect when a custom client is supplied via WithHTTPClient.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHeaders sets default headers applied to every request. They fill in
// alongside the client's own headers but never override them, regardless
// of name casing. The map is copied at construction; later mutations by
// the caller have no effect.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) {
		c.headers = headers
	}
}

// WithDKIM sets the client's default DKIM signing triple. All three
// values are required; they are trimmed and used as the fallback for
// messages and personalizations that do not override them.
func WithDKIM(domain, selector, privateKey string) Option {
	return func(c *clientConfig) {
		c.dkim = DKIM{
			Domain:     domain,
			Selector:   selector,
			PrivateKey: privateKey,
		}
	}
}

// WithDryRun asks the API to validate the message without delivering it.
func WithDryRun() SendOption {
	return func(c *sendConfig) {
		c.dryRun = true
	}
}

// WithIdempotencyKey sets the Idempotency-Key header for this call so the
// upstream can deduplicate retried requests. See NewIdempotencyKey.
func WithIdempotencyKey(key string) SendOption {
	return func(c *sendConfig) {
		c.idempotencyKey = key
	}
}
