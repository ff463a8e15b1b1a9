package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-debtchat-be/pkg/language"
)

const (
	ChannelWeb      = "web"
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"

	SessionStatusActive      = "active"
	SessionStatusClosed      = "closed"
	SessionStatusTransferred = "transferred"

	SenderUser  = "user"
	SenderBot   = "bot"
	SenderAgent = "agent"

	MessageTypeText = "text"
)

// SessionTerminal reports whether the status is one the pipeline must stop
// processing against.
func SessionTerminal(status string) bool {
	return status == SessionStatusClosed || status == SessionStatusTransferred
}

type ChatSession struct {
	Id           uuid.UUID
	DebtorId     uuid.UUID
	SessionToken string
	Channel      string
	Language     language.Tag
	Status       string
	Metadata     map[string]interface{}
	StartedAt    time.Time
	EndedAt      *time.Time
}

// MessageMetadata is the schema'd metadata bag on a conversation message.
// Only these keys are ever persisted; ToMap drops empty values.
type MessageMetadata struct {
	Intent           string                 `json:"intent,omitempty"`
	Entities         map[string]interface{} `json:"entities,omitempty"`
	Confidence       float64                `json:"confidence,omitempty"`
	SuggestedActions []string               `json:"suggested_actions,omitempty"`
	DeliveryId       string                 `json:"delivery_id,omitempty"`
	Backend          string                 `json:"backend,omitempty"`
	Source           string                 `json:"source,omitempty"`
}

func (m MessageMetadata) ToMap() map[string]interface{} {
	out := map[string]interface{}{}
	if m.Intent != "" {
		out["intent"] = m.Intent
	}
	if len(m.Entities) > 0 {
		out["entities"] = m.Entities
	}
	if m.Confidence > 0 {
		out["confidence"] = m.Confidence
	}
	if len(m.SuggestedActions) > 0 {
		out["suggested_actions"] = m.SuggestedActions
	}
	if m.DeliveryId != "" {
		out["delivery_id"] = m.DeliveryId
	}
	if m.Backend != "" {
		out["backend"] = m.Backend
	}
	if m.Source != "" {
		out["source"] = m.Source
	}
	return out
}

type ConversationMessage struct {
	Id                uuid.UUID
	SessionId         uuid.UUID
	SenderType        string
	MessageType       string
	Content           string
	Language          language.Tag
	TranslatedContent *string
	Metadata          map[string]interface{}
	SentAt            time.Time
	DeliveredAt       *time.Time
	ReadAt            *time.Time
}

const (
	ComplianceActionOptOut      = "opt_out"
	ComplianceActionQuotaBlock  = "quota_block"
	ComplianceActionTimeBlock   = "time_window_block"
	ComplianceActionOptOutBlock = "opt_out_block"
)

type ComplianceEvent struct {
	Id          uuid.UUID
	DebtorId    uuid.UUID
	ActionType  string
	Description string
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}
