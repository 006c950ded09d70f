package mailchannels

import (
	"encoding/json"
	"testing"
)

func TestMessage_MarshalExtraFields(t *testing.T) {
	msg := Message{
		From:             Address{Email: "from@example.com"},
		Personalizations: []Personalization{{To: []Address{{Email: "to@example.org"}}}},
		Content:          []Content{{Type: "text/plain", Value: "hi"}},
		Extra: map[string]json.RawMessage{
			"campaign_id": json.RawMessage(`"spring-2026"`),
			"tracking":    json.RawMessage(`{"opens":true}`),
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["campaign_id"] != "spring-2026" {
		t.Errorf("campaign_id = %v", decoded["campaign_id"])
	}
	tracking, ok := decoded["tracking"].(map[string]any)
	if !ok || tracking["opens"] != true {
		t.Errorf("tracking = %v", decoded["tracking"])
	}
	if _, ok := decoded["from"]; !ok {
		t.Error("typed from field missing after merge")
	}
}

func TestMessage_ExtraNeverShadowsTypedFields(t *testing.T) {
	msg := Message{
		From:             Address{Email: "real@example.com"},
		Personalizations: []Personalization{{To: []Address{{Email: "to@example.org"}}}},
		Content:          []Content{{Type: "text/plain", Value: "hi"}},
		Extra: map[string]json.RawMessage{
			"from": json.RawMessage(`"shadow"`),
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	from, ok := decoded["from"].(map[string]any)
	if !ok || from["email"] != "real@example.com" {
		t.Errorf("from = %v, want typed field to win", decoded["from"])
	}
}

func TestMessage_UnmarshalCapturesUnknownKeys(t *testing.T) {
	payload := `{
		"from": {"email": "from@example.com"},
		"personalizations": [{"to": [{"email": "to@example.org"}]}],
		"content": [{"type": "text/plain", "value": "hi"}],
		"campaign_id": "spring-2026"
	}`

	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if msg.From.Email != "from@example.com" {
		t.Errorf("From = %+v", msg.From)
	}
	raw, ok := msg.Extra["campaign_id"]
	if !ok {
		t.Fatal("campaign_id not captured in Extra")
	}
	if string(raw) != `"spring-2026"` {
		t.Errorf("Extra raw = %s", raw)
	}
	if _, exists := msg.Extra["from"]; exists {
		t.Error("typed key leaked into Extra")
	}
}

func TestMessage_RoundTripPreservesExtra(t *testing.T) {
	original := `{"content":[{"type":"text/plain","value":"hi"}],"custom":{"nested":[1,2,3]},"from":{"email":"a@b.c"},"personalizations":[{"to":[{"email":"d@e.f"}]}]}`

	var msg Message
	if err := json.Unmarshal([]byte(original), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var a, b map[string]any
	if err := json.Unmarshal([]byte(original), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Errorf("round-trip key count = %d, want %d", len(b), len(a))
	}
	if _, ok := b["custom"]; !ok {
		t.Error("custom key lost in round-trip")
	}
}
