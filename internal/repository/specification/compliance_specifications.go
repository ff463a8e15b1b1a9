package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByActionType struct {
	ActionType string
}

func (s ByActionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action_type = ?", s.ActionType)
}

type ByCreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s ByCreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.From, s.To)
}
