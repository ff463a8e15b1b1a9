package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPhone struct {
	Phone string
}

func (s ByPhone) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("phone = ?", s.Phone)
}

type ByAccountNumber struct {
	AccountNumber string
}

func (s ByAccountNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_number = ?", s.AccountNumber)
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByDebtAccountID struct {
	DebtAccountID uuid.UUID
}

func (s ByDebtAccountID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("debt_account_id = ?", s.DebtAccountID)
}

// ByExternalTransactionID matches payment transactions by the gateway order id.
type ByExternalTransactionID struct {
	TransactionID string
}

func (s ByExternalTransactionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transaction_id = ?", s.TransactionID)
}
