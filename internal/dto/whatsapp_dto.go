package dto

// DeliveryStatusUpdate is the normalized delivery-status callback handed
// to the consumer service.
type DeliveryStatusUpdate struct {
	ExternalMessageId string `json:"external_message_id"`
	Status            string `json:"status"` // sent | delivered | read | failed
	Timestamp         int64  `json:"timestamp,omitempty"`
}

type SendWhatsAppTemplateRequest struct {
	To           string   `json:"to" validate:"required"`
	TemplateName string   `json:"template_name" validate:"required"`
	LanguageCode string   `json:"language_code" validate:"required"`
	Parameters   []string `json:"parameters,omitempty"`
}
