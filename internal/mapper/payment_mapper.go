package mapper

import (
	"gorm.io/datatypes"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) TransactionToEntity(t *model.PaymentTransaction) *entity.PaymentTransaction {
	if t == nil {
		return nil
	}

	return &entity.PaymentTransaction{
		Id:            t.Id,
		DebtAccountId: t.DebtAccountId,
		Amount:        t.Amount,
		Type:          t.Type,
		PaymentMethod: t.PaymentMethod,
		TransactionId: t.TransactionId,
		Status:        t.Status,
		ProcessedAt:   t.ProcessedAt,
		Metadata:      map[string]interface{}(t.Metadata),
		CreatedAt:     t.CreatedAt,
	}
}

func (m *PaymentMapper) TransactionToModel(t *entity.PaymentTransaction) *model.PaymentTransaction {
	if t == nil {
		return nil
	}

	return &model.PaymentTransaction{
		Id:            t.Id,
		DebtAccountId: t.DebtAccountId,
		Amount:        t.Amount,
		Type:          t.Type,
		PaymentMethod: t.PaymentMethod,
		TransactionId: t.TransactionId,
		Status:        t.Status,
		ProcessedAt:   t.ProcessedAt,
		Metadata:      datatypes.JSONMap(t.Metadata),
		CreatedAt:     t.CreatedAt,
	}
}
