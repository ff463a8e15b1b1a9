package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatSession struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtorId     uuid.UUID         `gorm:"type:uuid;not null;index"` // Debtor ownership for data isolation
	SessionToken string            `gorm:"type:varchar(64);uniqueIndex;not null"`
	Channel      string            `gorm:"type:varchar(20);not null"`
	Language     string            `gorm:"type:varchar(10);not null;default:'hi'"`
	Status       string            `gorm:"type:varchar(20);not null;default:'active';index"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	StartedAt    time.Time         `gorm:"autoCreateTime"`
	EndedAt      *time.Time
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
