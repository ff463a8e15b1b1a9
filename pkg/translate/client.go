package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ai-debtchat-be/pkg/language"
)

// Result carries the best-effort translation. Confidence 0 means the service
// failed and the source text was passed through unchanged.
type Result struct {
	Text       string
	Source     language.Tag
	Target     language.Tag
	Confidence float64
}

// Client wraps a LibreTranslate-compatible endpoint. Translation is
// best-effort: any failure degrades to pass-through.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate converts text into the target language. Hinglish has no external
// service behind it, so it is produced by the fixed romanization mapping.
func (c *Client) Translate(ctx context.Context, text string, source, target language.Tag) Result {
	if source == target || strings.TrimSpace(text) == "" {
		return Result{Text: text, Source: source, Target: target, Confidence: 1.0}
	}

	if target == language.TagHinglish {
		return Result{
			Text:       romanizeHinglish(text),
			Source:     source,
			Target:     target,
			Confidence: 0.8,
		}
	}

	translated, err := c.call(ctx, text, source, target)
	if err != nil {
		return Result{Text: text, Source: source, Target: target, Confidence: 0}
	}
	return Result{Text: translated, Source: source, Target: target, Confidence: 0.9}
}

func (c *Client) call(ctx context.Context, text string, source, target language.Tag) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("translation service not configured")
	}

	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: externalCode(source),
		Target: externalCode(target),
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/translate", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation status %d: %s", res.StatusCode, string(body))
	}

	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("empty translation")
	}
	return parsed.TranslatedText, nil
}

// The hybrid tag has no ISO code the service understands.
func externalCode(tag language.Tag) string {
	if tag == language.TagHinglish {
		return "hi"
	}
	return string(tag)
}

var hinglishMappings = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\byes\b`), "haan"},
	{regexp.MustCompile(`(?i)\bno\b`), "nahi"},
	{regexp.MustCompile(`(?i)\bmoney\b`), "paisa"},
	{regexp.MustCompile(`(?i)\btoday\b`), "aaj"},
	{regexp.MustCompile(`(?i)\btomorrow\b`), "kal"},
}

func romanizeHinglish(text string) string {
	out := text
	for _, m := range hinglishMappings {
		out = m.pattern.ReplaceAllString(out, m.replacement)
	}
	return out
}
