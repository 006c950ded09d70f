package mailchannels

import "strings"

// DKIM is a DomainKeys Identified Mail signing triple: the signing domain,
// the selector label published in DNS, and the private key the upstream
// service signs with. The key is an opaque pass-through string; this
// client never performs any signing itself.
type DKIM struct {
	Domain     string
	Selector   string
	PrivateKey string
}

// trimmed returns a copy with surrounding whitespace stripped from every
// field.
func (d DKIM) trimmed() DKIM {
	return DKIM{
		Domain:     strings.TrimSpace(d.Domain),
		Selector:   strings.TrimSpace(d.Selector),
		PrivateKey: strings.TrimSpace(d.PrivateKey),
	}
}

// complete reports whether all three fields are non-empty.
func (d DKIM) complete() bool {
	return d.Domain != "" && d.Selector != "" && d.PrivateKey != ""
}

// resolveField returns the trimmed own value when non-blank, otherwise the
// fallback.
func resolveField(own, fallback string) string {
	if own = strings.TrimSpace(own); own != "" {
		return own
	}
	return fallback
}

// mergeDKIM returns a copy of msg with the DKIM triple fully resolved at
// the body level and at every personalization. Precedence per field is
// personalization override > body override > client default: the body
// triple falls back to defaults, and each personalization falls back to
// the already-resolved body value. The input is never mutated, and merging
// an already-merged message is a no-op.
func mergeDKIM(defaults DKIM, msg *Message) *Message {
	out := *msg
	out.DKIMDomain = resolveField(msg.DKIMDomain, defaults.Domain)
	out.DKIMSelector = resolveField(msg.DKIMSelector, defaults.Selector)
	out.DKIMPrivateKey = resolveField(msg.DKIMPrivateKey, defaults.PrivateKey)

	if len(msg.Personalizations) > 0 {
		out.Personalizations = make([]Personalization, len(msg.Personalizations))
		for i, p := range msg.Personalizations {
			p.DKIMDomain = resolveField(p.DKIMDomain, out.DKIMDomain)
			p.DKIMSelector = resolveField(p.DKIMSelector, out.DKIMSelector)
			p.DKIMPrivateKey = resolveField(p.DKIMPrivateKey, out.DKIMPrivateKey)
			out.Personalizations[i] = p
		}
	}

	return &out
}
