package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentTransaction struct {
	Id            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtAccountId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount        float64           `gorm:"type:numeric(15,2);not null"`
	Type          string            `gorm:"type:varchar(20);not null"`
	PaymentMethod *string           `gorm:"type:varchar(50)"`
	TransactionId *string           `gorm:"type:varchar(100);index"`
	Status        string            `gorm:"type:varchar(20);not null;default:'pending'"`
	ProcessedAt   *time.Time
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
