package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationMessage struct {
	Id                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         uuid.UUID         `gorm:"type:uuid;not null;index"`
	SenderType        string            `gorm:"type:varchar(20);not null"`
	MessageType       string            `gorm:"type:varchar(20);not null;default:'text'"`
	Content           string            `gorm:"type:text;not null"`
	Language          string            `gorm:"type:varchar(10);not null"`
	TranslatedContent *string           `gorm:"type:text"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb"`
	SentAt            time.Time         `gorm:"autoCreateTime;index"`
	DeliveredAt       *time.Time
	ReadAt            *time.Time
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
