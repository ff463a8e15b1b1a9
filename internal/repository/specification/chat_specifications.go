package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type BySessionToken struct {
	Token string
}

func (s BySessionToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_token = ?", s.Token)
}

type ByDebtorID struct {
	DebtorID uuid.UUID
}

func (s ByDebtorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("debtor_id = ?", s.DebtorID)
}

type ByChannel struct {
	Channel string
}

func (s ByChannel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel = ?", s.Channel)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type BySenderType struct {
	SenderType string
}

func (s BySenderType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_type = ?", s.SenderType)
}

// ByDeliveryID matches messages by the channel delivery id stored in metadata.
type ByDeliveryID struct {
	DeliveryID string
}

func (s ByDeliveryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metadata->>'delivery_id' = ?", s.DeliveryID)
}

type BySentBetween struct {
	From time.Time
	To   time.Time
}

func (s BySentBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sent_at >= ? AND sent_at < ?", s.From, s.To)
}
