package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDebtorRequest struct {
	AccountNumber     string  `json:"account_number" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	Phone             string  `json:"phone" validate:"required"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Address           *string `json:"address,omitempty"`
	PreferredLanguage string  `json:"preferred_language,omitempty" validate:"omitempty,oneof=hi mr ta te en en-IN"`
}

type DebtorResponse struct {
	Id                uuid.UUID `json:"id"`
	AccountNumber     string    `json:"account_number"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             *string   `json:"email,omitempty"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateDebtAccountRequest struct {
	DebtorId       uuid.UUID `json:"debtor_id" validate:"required"`
	AccountNumber  string    `json:"account_number" validate:"required"`
	OriginalAmount float64   `json:"original_amount" validate:"required,gt=0"`
	DueDate        time.Time `json:"due_date" validate:"required"`
	InterestRate   *float64  `json:"interest_rate,omitempty"`
}

type DebtAccountResponse struct {
	Id                uuid.UUID `json:"id"`
	AccountNumber     string    `json:"account_number"`
	OriginalAmount    float64   `json:"original_amount"`
	OutstandingAmount float64   `json:"outstanding_amount"`
	DueDate           time.Time `json:"due_date"`
	Status            string    `json:"status"`
}

type DebtorAnalyticsResponse struct {
	TotalSessions     int64            `json:"total_sessions"`
	ActiveSessions    int64            `json:"active_sessions"`
	TotalMessages     int64            `json:"total_messages"`
	ComplianceBlocks  int64            `json:"compliance_blocks"`
	OptedOut          bool             `json:"opted_out"`
	IntentBreakdown   map[string]int64 `json:"intent_breakdown,omitempty"`
	OutstandingAmount float64          `json:"outstanding_amount"`
}
