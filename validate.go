package mailchannels

import (
	"fmt"
	"strings"
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateMessage checks the structure of a DKIM-merged message. The first
// failing check wins; the returned *ValidationError names the exact
// offending field path. No network call is made before this passes.
func validateMessage(m *Message) error {
	if len(m.Personalizations) == 0 {
		return &ValidationError{Path: "personalizations", Reason: "must contain at least one entry"}
	}

	for i, p := range m.Personalizations {
		if len(p.To) == 0 {
			return &ValidationError{
				Path:   fmt.Sprintf("personalizations[%d].to", i),
				Reason: "must contain at least one entry",
			}
		}
		if err := validateAddresses(p.To, fmt.Sprintf("personalizations[%d].to", i)); err != nil {
			return err
		}
		if err := validateAddresses(p.Cc, fmt.Sprintf("personalizations[%d].cc", i)); err != nil {
			return err
		}
		if err := validateAddresses(p.Bcc, fmt.Sprintf("personalizations[%d].bcc", i)); err != nil {
			return err
		}
	}

	if blank(m.From.Email) {
		return &ValidationError{Path: "from.email", Reason: "must not be blank"}
	}
	if m.ReplyTo != nil && blank(m.ReplyTo.Email) {
		return &ValidationError{Path: "reply_to.email", Reason: "must not be blank"}
	}

	if len(m.Content) == 0 {
		return &ValidationError{Path: "content", Reason: "must contain at least one entry"}
	}
	for i, c := range m.Content {
		if blank(c.Type) {
			return &ValidationError{
				Path:   fmt.Sprintf("content[%d].type", i),
				Reason: "must not be blank",
			}
		}
	}

	for i, a := range m.Attachments {
		switch {
		case blank(a.Type):
			return &ValidationError{
				Path:   fmt.Sprintf("attachments[%d].type", i),
				Reason: "must not be blank",
			}
		case blank(a.Filename):
			return &ValidationError{
				Path:   fmt.Sprintf("attachments[%d].filename", i),
				Reason: "must not be blank",
			}
		case blank(a.Content):
			return &ValidationError{
				Path:   fmt.Sprintf("attachments[%d].content", i),
				Reason: "must not be blank",
			}
		}
	}

	if err := validateDKIMTriple(m.DKIMDomain, m.DKIMSelector, m.DKIMPrivateKey, "request body"); err != nil {
		return err
	}
	// The merger guarantees populated triples; re-check its output anyway.
	for i, p := range m.Personalizations {
		prefix := fmt.Sprintf("personalizations[%d]", i)
		if err := validateDKIMTriple(p.DKIMDomain, p.DKIMSelector, p.DKIMPrivateKey, prefix); err != nil {
			return err
		}
	}

	return nil
}

func validateAddresses(addrs []Address, prefix string) error {
	for j, a := range addrs {
		if blank(a.Email) {
			return &ValidationError{
				Path:   fmt.Sprintf("%s[%d].email", prefix, j),
				Reason: "must not be blank",
			}
		}
	}
	return nil
}

func validateDKIMTriple(domain, selector, privateKey, prefix string) error {
	switch {
	case blank(domain):
		return &ValidationError{Path: prefix + ".dkim_domain", Reason: "must not be blank"}
	case blank(selector):
		return &ValidationError{Path: prefix + ".dkim_selector", Reason: "must not be blank"}
	case blank(privateKey):
		return &ValidationError{Path: prefix + ".dkim_private_key", Reason: "must not be blank"}
	}
	return nil
}
