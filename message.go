package mailchannels

import "encoding/json"

// Address is an email address with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Personalization is one recipient group within a message. It can override
// the subject, headers, template data, and DKIM signing independently of
// the rest of the message.
type Personalization struct {
	To           []Address         `json:"to"`
	Cc           []Address         `json:"cc,omitempty"`
	Bcc          []Address         `json:"bcc,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	TemplateData map[string]any    `json:"template_data,omitempty"`

	// DKIM signing overrides for this recipient group. Blank fields fall
	// back to the body-level values, which in turn fall back to the
	// client defaults.
	DKIMDomain     string `json:"dkim_domain,omitempty"`
	DKIMSelector   string `json:"dkim_selector,omitempty"`
	DKIMPrivateKey string `json:"dkim_private_key,omitempty"`
}

// Content is one body part of a message, e.g. text/plain or text/html.
// Value may be empty; Type must not be.
type Content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Attachment is a base64-encoded file attached to a message.
type Attachment struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Message is the full outbound send request.
type Message struct {
	Personalizations []Personalization `json:"personalizations"`
	From             Address           `json:"from"`
	ReplyTo          *Address          `json:"reply_to,omitempty"`
	Subject          string            `json:"subject,omitempty"`
	Content          []Content         `json:"content"`
	Attachments      []Attachment      `json:"attachments,omitempty"`
	Headers          map[string]string `json:"headers,omitempty"`

	// Body-level DKIM signing triple. Blank fields fall back to the
	// client defaults during Send.
	DKIMDomain     string `json:"dkim_domain,omitempty"`
	DKIMSelector   string `json:"dkim_selector,omitempty"`
	DKIMPrivateKey string `json:"dkim_private_key,omitempty"`

	// Extra holds fields outside the typed schema. They are merged into
	// the encoded payload verbatim; typed fields win on key collision.
	Extra map[string]json.RawMessage `json:"-"`
}

// messageFields are the JSON keys owned by the typed Message schema.
var messageFields = []string{
	"personalizations",
	"from",
	"reply_to",
	"subject",
	"content",
	"attachments",
	"headers",
	"dkim_domain",
	"dkim_selector",
	"dkim_private_key",
}

// MarshalJSON encodes the typed fields and merges Extra keys into the
// result. Extra keys never shadow typed fields.
func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	core, err := json.Marshal(plain(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return core, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(core, &merged); err != nil {
		return nil, err
	}
	for key, value := range m.Extra {
		if _, exists := merged[key]; exists {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the typed fields and captures any unknown keys
// into Extra so they survive a round-trip.
func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	var core plain
	if err := json.Unmarshal(data, &core); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range messageFields {
		delete(raw, key)
	}

	*m = Message(core)
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}
