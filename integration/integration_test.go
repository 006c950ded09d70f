//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	mailchannels "github.com/mailchannels/client-go"
)

var (
	apiKey       string
	baseURL      string
	dkimDomain   string
	dkimSelector string
	dkimKey      string
	fromAddress  string
	toAddress    string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("MAILCHANNELS_API_KEY")
	baseURL = os.Getenv("MAILCHANNELS_URL")
	dkimDomain = os.Getenv("DKIM_DOMAIN")
	dkimSelector = os.Getenv("DKIM_SELECTOR")
	dkimKey = os.Getenv("DKIM_PRIVATE_KEY")
	fromAddress = os.Getenv("MAILCHANNELS_FROM")
	toAddress = os.Getenv("MAILCHANNELS_TO")

	if apiKey == "" || dkimDomain == "" || dkimSelector == "" || dkimKey == "" {
		os.Stderr.WriteString("Skipping integration tests: MAILCHANNELS_API_KEY and DKIM_* not set\n")
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func newClient(t *testing.T) *mailchannels.Client {
	t.Helper()

	opts := []mailchannels.Option{
		mailchannels.WithDKIM(dkimDomain, dkimSelector, dkimKey),
		mailchannels.WithTimeout(30 * time.Second),
	}
	if baseURL != "" {
		opts = append(opts, mailchannels.WithBaseURL(baseURL))
	}

	client, err := mailchannels.New(apiKey, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func testMessage() *mailchannels.Message {
	return &mailchannels.Message{
		From: mailchannels.Address{Email: fromAddress},
		Personalizations: []mailchannels.Personalization{
			{To: []mailchannels.Address{{Email: toAddress}}},
		},
		Subject: "client-go integration test",
		Content: []mailchannels.Content{
			{Type: "text/plain", Value: "integration test"},
		},
	}
}

func TestSendDryRun(t *testing.T) {
	if fromAddress == "" || toAddress == "" {
		t.Skip("MAILCHANNELS_FROM / MAILCHANNELS_TO not set")
	}

	client := newClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Send(ctx, testMessage(), mailchannels.WithDryRun())
	if err != nil {
		var apiErr *mailchannels.APIError
		if errors.As(err, &apiErr) {
			t.Fatalf("dry run rejected (%d): %s (request id %s)",
				apiErr.StatusCode, apiErr.Message, apiErr.RequestID)
		}
		t.Fatalf("Send() error = %v", err)
	}

	if result.Status < 200 || result.Status > 299 {
		t.Errorf("Status = %d, want 2xx", result.Status)
	}
}

func TestSendInvalidKey(t *testing.T) {
	opts := []mailchannels.Option{
		mailchannels.WithDKIM(dkimDomain, dkimSelector, dkimKey),
	}
	if baseURL != "" {
		opts = append(opts, mailchannels.WithBaseURL(baseURL))
	}

	client, err := mailchannels.New("invalid-key", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	msg := testMessage()
	if fromAddress == "" {
		msg.From = mailchannels.Address{Email: "no-reply@" + dkimDomain}
		msg.Personalizations = []mailchannels.Personalization{
			{To: []mailchannels.Address{{Email: "devnull@" + dkimDomain}}},
		}
	}

	_, err = client.Send(ctx, msg, mailchannels.WithDryRun())
	if !errors.Is(err, mailchannels.ErrUnauthorized) {
		t.Errorf("Send() error = %v, want ErrUnauthorized", err)
	}
}
