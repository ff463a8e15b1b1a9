package model

import (
	"time"

	"github.com/google/uuid"
)

type Debtor struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountNumber     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Phone             string    `gorm:"type:varchar(20);not null;index"`
	Email             *string   `gorm:"type:varchar(255)"`
	Address           *string   `gorm:"type:text"`
	PreferredLanguage string    `gorm:"type:varchar(10);not null;default:'hi'"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Debtor) TableName() string {
	return "debtors"
}

type DebtAccount struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtorId          uuid.UUID `gorm:"type:uuid;not null;index"`
	AccountNumber     string    `gorm:"type:varchar(50);not null"`
	OriginalAmount    float64   `gorm:"type:numeric(15,2);not null"`
	OutstandingAmount float64   `gorm:"type:numeric(15,2);not null"`
	DueDate           time.Time `gorm:"not null"`
	Status            string    `gorm:"type:varchar(20);not null;default:'active'"`
	InterestRate      *float64  `gorm:"type:numeric(5,2)"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (DebtAccount) TableName() string {
	return "debt_accounts"
}
