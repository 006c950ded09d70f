// Package mailchannels provides a Go client SDK for the MailChannels
// transactional email API.
//
// The client validates an outbound message before any network call, fills
// in DKIM signing defaults with per-field precedence (personalization
// override > message override > client default), issues a single POST to
// the send endpoint, and normalizes both success and error responses into
// a predictable shape.
//
// Basic usage:
//
//	client, err := mailchannels.New("your-api-key",
//	    mailchannels.WithDKIM("example.com", "mailer", privateKey),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Send(ctx, &mailchannels.Message{
//	    From: mailchannels.Address{Email: "no-reply@example.com"},
//	    Personalizations: []mailchannels.Personalization{
//	        {To: []mailchannels.Address{{Email: "user@example.org"}}},
//	    },
//	    Subject: "Welcome",
//	    Content: []mailchannels.Content{
//	        {Type: "text/plain", Value: "Hello!"},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Message ID:", result.ID)
//
// Failures after the request leaves the client surface as *APIError,
// carrying the HTTP status, a Retry-After hint, and the request id, so
// callers can layer their own retry policy on top; the client itself
// never retries. Structural problems surface as *ValidationError before
// the transport is invoked. Transport failures are returned unchanged.
package mailchannels
