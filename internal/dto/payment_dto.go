package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentLinkRequest struct {
	DebtAccountId uuid.UUID `json:"debt_account_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Type          string    `json:"type,omitempty" validate:"omitempty,oneof=payment settlement"`
}

type PaymentLinkResponse struct {
	TransactionId uuid.UUID `json:"transaction_id"`
	OrderId       string    `json:"order_id"`
	PaymentURL    string    `json:"payment_url"`
	Amount        float64   `json:"amount"`
}

type PaymentTransactionResponse struct {
	Id          uuid.UUID  `json:"id"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MidtransNotification is the payment gateway's webhook payload.
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}
