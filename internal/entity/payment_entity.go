package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionTypePayment    = "payment"
	TransactionTypeSettlement = "settlement"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type PaymentTransaction struct {
	Id            uuid.UUID
	DebtAccountId uuid.UUID
	Amount        float64
	Type          string
	PaymentMethod *string
	TransactionId *string // external (gateway) id
	Status        string
	ProcessedAt   *time.Time
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}
