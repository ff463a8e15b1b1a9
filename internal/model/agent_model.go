package model

import (
	"time"

	"github.com/google/uuid"
)

type Agent struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'collector'"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Agent) TableName() string {
	return "agents"
}
