package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
	Channel       string `json:"channel" validate:"required,oneof=web whatsapp sms"`
}

type SessionResponse struct {
	Id           uuid.UUID  `json:"id"`
	SessionToken string     `json:"session_token"`
	Channel      string     `json:"channel"`
	Language     string     `json:"language"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

type SendMessageRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

type MessageResponse struct {
	Id               uuid.UUID              `json:"id"`
	SenderType       string                 `json:"sender_type"`
	Content          string                 `json:"content"`
	Language         string                 `json:"language"`
	Intent           string                 `json:"intent,omitempty"`
	Confidence       float64                `json:"confidence,omitempty"`
	SuggestedActions []string               `json:"suggested_actions,omitempty"`
	Entities         map[string]interface{} `json:"entities,omitempty"`
	SentAt           time.Time              `json:"sent_at"`
}

type SendMessageResponse struct {
	SessionId uuid.UUID        `json:"session_id"`
	Sent      *MessageResponse `json:"sent"`
	Reply     *MessageResponse `json:"reply,omitempty"`
	Blocked   bool             `json:"blocked,omitempty"`
	Reason    string           `json:"reason,omitempty"`
}

type ChatHistoryResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	Messages  []MessageResponse `json:"messages"`
}

type NegotiateLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=hi mr ta te en en-IN"`
}

type CloseSessionRequest struct {
	Reason string `json:"reason,omitempty"`
}
