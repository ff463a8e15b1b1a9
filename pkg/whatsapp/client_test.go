package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"+91 98765 43210", "919876543210"},
		{"919876543210", "919876543210"},
		{"09876543210", "919876543210"},
		{"98-76-54-32-10", "919876543210"},
	}
	for _, tt := range tests {
		if got := FormatPhoneNumber(tt.in); got != tt.want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerifyWebhook(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		token     string
		challenge string
		secret    string
		wantOK    bool
	}{
		{"valid", "subscribe", "secret", "12345", "secret", true},
		{"wrong mode", "unsubscribe", "secret", "12345", "secret", false},
		{"wrong token", "subscribe", "guess", "12345", "secret", false},
		{"empty secret never verifies", "subscribe", "", "12345", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			echo, ok := VerifyWebhook(tt.mode, tt.token, tt.challenge, tt.secret)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && echo != tt.challenge {
				t.Errorf("echo = %q, want %q", echo, tt.challenge)
			}
		})
	}
}

func TestSendInteractiveTruncatesButtons(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
	}))
	defer srv.Close()

	c := NewClient("123", "token", time.Second)
	c.baseURL = srv.URL

	buttons := []Button{
		{ID: "b1", Title: "Pay now"},
		{ID: "b2", Title: "EMI plan"},
		{ID: "b3", Title: "Talk to agent"},
		{ID: "b4", Title: "Dropped"},
		{ID: "b5", Title: "Also dropped"},
	}

	res, err := c.SendInteractive(context.Background(), "9876543210", "Choose an option", buttons)
	if err != nil {
		t.Fatalf("SendInteractive: %v", err)
	}
	if res.MessageID != "wamid.test" {
		t.Errorf("MessageID = %q", res.MessageID)
	}

	interactive := captured["interactive"].(map[string]interface{})
	action := interactive["action"].(map[string]interface{})
	sent := action["buttons"].([]interface{})
	if len(sent) != 3 {
		t.Errorf("buttons sent = %d, want 3", len(sent))
	}
}

func TestParseInbound(t *testing.T) {
	raw := `{
		"entry": [{
			"id": "entry1",
			"changes": [{
				"field": "messages",
				"value": {
					"messages": [
						{"from": "919876543210", "id": "wamid.1", "type": "text", "text": {"body": "hello"}},
						{"from": "919876543210", "id": "wamid.2", "type": "interactive",
						 "interactive": {"type": "button_reply", "button_reply": {"id": "emi", "title": "EMI plan"}}},
						{"from": "919876543210", "id": "wamid.3", "type": "image"}
					],
					"statuses": [
						{"id": "wamid.0", "status": "delivered", "timestamp": "1756500000"}
					]
				}
			}]
		}]
	}`

	var payload WebhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	texts, statuses := ParseInbound(payload)
	if len(texts) != 2 {
		t.Fatalf("texts = %d, want 2 (image events are skipped)", len(texts))
	}
	if texts[0].Text != "hello" || texts[0].ExternalMessageID != "wamid.1" {
		t.Errorf("text event = %+v", texts[0])
	}
	if texts[1].Text != "EMI plan" {
		t.Errorf("button reply text = %q, want button title", texts[1].Text)
	}
	if len(statuses) != 1 || statuses[0].Status != "delivered" {
		t.Errorf("statuses = %+v", statuses)
	}
}
