package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ComplianceEvent struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtorId    uuid.UUID         `gorm:"type:uuid;not null;index"`
	ActionType  string            `gorm:"type:varchar(30);not null;index"`
	Description string            `gorm:"type:text"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
}

func (ComplianceEvent) TableName() string {
	return "compliance_events"
}
