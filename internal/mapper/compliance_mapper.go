package mapper

import (
	"gorm.io/datatypes"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/model"
)

type ComplianceMapper struct{}

func NewComplianceMapper() *ComplianceMapper {
	return &ComplianceMapper{}
}

func (m *ComplianceMapper) EventToEntity(e *model.ComplianceEvent) *entity.ComplianceEvent {
	if e == nil {
		return nil
	}

	return &entity.ComplianceEvent{
		Id:          e.Id,
		DebtorId:    e.DebtorId,
		ActionType:  e.ActionType,
		Description: e.Description,
		Metadata:    map[string]interface{}(e.Metadata),
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ComplianceMapper) EventToModel(e *entity.ComplianceEvent) *model.ComplianceEvent {
	if e == nil {
		return nil
	}

	return &model.ComplianceEvent{
		Id:          e.Id,
		DebtorId:    e.DebtorId,
		ActionType:  e.ActionType,
		Description: e.Description,
		Metadata:    datatypes.JSONMap(e.Metadata),
		CreatedAt:   e.CreatedAt,
	}
}
