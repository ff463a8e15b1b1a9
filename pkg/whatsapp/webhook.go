package whatsapp

// Webhook payload shapes for the Cloud API, reduced to the fields the
// pipeline consumes.

type WebhookPayload struct {
	Entry []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	Messages []WebhookMessage `json:"messages"`
	Statuses []WebhookStatus  `json:"statuses"`
}

type WebhookMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Text        *WebhookText        `json:"text"`
	Interactive *WebhookInteractive `json:"interactive"`
}

type WebhookText struct {
	Body string `json:"body"`
}

type WebhookInteractive struct {
	Type        string            `json:"type"`
	ButtonReply *WebhookButtonRef `json:"button_reply"`
}

type WebhookButtonRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type WebhookStatus struct {
	ID        string `json:"id"`
	Status    string `json:"status"` // sent | delivered | read | failed
	Timestamp string `json:"timestamp"`
}

// InboundText is a normalized incoming message.
type InboundText struct {
	From              string
	Text              string
	ExternalMessageID string
}

// ParseInbound flattens a webhook payload into normalized text events and
// delivery statuses. Interactive button replies surface as their button title.
func ParseInbound(payload WebhookPayload) (texts []InboundText, statuses []WebhookStatus) {
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, msg := range change.Value.Messages {
				switch {
				case msg.Type == "text" && msg.Text != nil:
					texts = append(texts, InboundText{
						From:              msg.From,
						Text:              msg.Text.Body,
						ExternalMessageID: msg.ID,
					})
				case msg.Type == "interactive" && msg.Interactive != nil &&
					msg.Interactive.ButtonReply != nil:
					texts = append(texts, InboundText{
						From:              msg.From,
						Text:              msg.Interactive.ButtonReply.Title,
						ExternalMessageID: msg.ID,
					})
				}
			}
			statuses = append(statuses, change.Value.Statuses...)
		}
	}
	return texts, statuses
}
