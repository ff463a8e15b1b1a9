package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-debtchat-be/pkg/language"
)

type Debtor struct {
	Id                uuid.UUID
	AccountNumber     string
	Name              string
	Phone             string
	Email             *string
	Address           *string
	PreferredLanguage language.Tag
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

const (
	DebtStatusActive  = "active"
	DebtStatusOverdue = "overdue"
	DebtStatusSettled = "settled"
	DebtStatusLegal   = "legal"
)

type DebtAccount struct {
	Id                uuid.UUID
	DebtorId          uuid.UUID
	AccountNumber     string
	OriginalAmount    float64
	OutstandingAmount float64
	DueDate           time.Time
	Status            string
	InterestRate      *float64
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
