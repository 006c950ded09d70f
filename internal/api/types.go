package api

// SendResult is the success envelope for a send call.
type SendResult struct {
	// Status is the HTTP status code of the response.
	Status int
	// ID is the message id returned by the API, when present.
	ID string
	// Data carries the rest of the response body: the decoded JSON value
	// when the body held more than just an id, or the raw body text when
	// the response was not JSON. Nil when the body was empty or held only
	// the id.
	Data any
}
