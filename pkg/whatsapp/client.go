package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	graphBaseURL = "https://graph.facebook.com/v18.0"

	// Cloud API rejects interactive messages with more than 3 buttons.
	maxButtons = 3
)

// Button is one quick-reply option on an interactive message.
type Button struct {
	ID    string
	Title string
}

// SendResult is the outcome of an outbound call. MessageID is the Cloud API
// message id used later to correlate delivery-status callbacks.
type SendResult struct {
	MessageID string
}

// Client wraps the WhatsApp Cloud API messages endpoint.
type Client struct {
	baseURL       string
	phoneNumberID string
	accessToken   string
	httpClient    *http.Client
}

func NewClient(phoneNumberID, accessToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:       graphBaseURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) (*SendResult, error) {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                FormatPhoneNumber(to),
		"type":              "text",
		"text": map[string]interface{}{
			"body":        body,
			"preview_url": false,
		},
	}
	return c.post(ctx, payload)
}

// SendTemplate delivers a named template with an ordered parameter list.
func (c *Client) SendTemplate(ctx context.Context, to, templateName, languageCode string, parameters []string) (*SendResult, error) {
	template := map[string]interface{}{
		"name": templateName,
		"language": map[string]string{
			"code": languageCode,
		},
	}
	if len(parameters) > 0 {
		params := make([]map[string]string, len(parameters))
		for i, p := range parameters {
			params[i] = map[string]string{"type": "text", "text": p}
		}
		template["components"] = []map[string]interface{}{
			{"type": "body", "parameters": params},
		}
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                FormatPhoneNumber(to),
		"type":              "template",
		"template":          template,
	}
	return c.post(ctx, payload)
}

// SendInteractive delivers a message with reply buttons. Buttons past the
// Cloud API limit are truncated, not rejected.
func (c *Client) SendInteractive(ctx context.Context, to, body string, buttons []Button) (*SendResult, error) {
	if len(buttons) > maxButtons {
		buttons = buttons[:maxButtons]
	}

	actionButtons := make([]map[string]interface{}, len(buttons))
	for i, b := range buttons {
		actionButtons[i] = map[string]interface{}{
			"type": "reply",
			"reply": map[string]string{
				"id":    b.ID,
				"title": b.Title,
			},
		}
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                FormatPhoneNumber(to),
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type":   "button",
			"body":   map[string]string{"text": body},
			"action": map[string]interface{}{"buttons": actionButtons},
		},
	}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload map[string]interface{}) (*SendResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp returned status %d: %s", res.StatusCode, string(body))
	}

	var parsed struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	result := &SendResult{}
	if len(parsed.Messages) > 0 {
		result.MessageID = parsed.Messages[0].ID
	}
	return result, nil
}

// FormatPhoneNumber normalises an Indian number to the 91XXXXXXXXXX form the
// Cloud API expects.
func FormatPhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 10:
		return "91" + digits
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "91" + digits[1:]
	default:
		return digits
	}
}

// VerifyWebhook implements the Cloud API subscription handshake: echo the
// challenge iff the mode and pre-shared token match.
func VerifyWebhook(mode, token, challenge, verifyToken string) (string, bool) {
	if mode == "subscribe" && token == verifyToken && verifyToken != "" {
		return challenge, true
	}
	return "", false
}
