package mapper

import (
	"time"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/model"
	"ai-debtchat-be/pkg/language"
)

type DebtorMapper struct{}

func NewDebtorMapper() *DebtorMapper {
	return &DebtorMapper{}
}

func (m *DebtorMapper) DebtorToEntity(d *model.Debtor) *entity.Debtor {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Debtor{
		Id:                d.Id,
		AccountNumber:     d.AccountNumber,
		Name:              d.Name,
		Phone:             d.Phone,
		Email:             d.Email,
		Address:           d.Address,
		PreferredLanguage: language.Tag(d.PreferredLanguage),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *DebtorMapper) DebtorToModel(d *entity.Debtor) *model.Debtor {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Debtor{
		Id:                d.Id,
		AccountNumber:     d.AccountNumber,
		Name:              d.Name,
		Phone:             d.Phone,
		Email:             d.Email,
		Address:           d.Address,
		PreferredLanguage: string(d.PreferredLanguage),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *DebtorMapper) DebtAccountToEntity(a *model.DebtAccount) *entity.DebtAccount {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.DebtAccount{
		Id:                a.Id,
		DebtorId:          a.DebtorId,
		AccountNumber:     a.AccountNumber,
		OriginalAmount:    a.OriginalAmount,
		OutstandingAmount: a.OutstandingAmount,
		DueDate:           a.DueDate,
		Status:            a.Status,
		InterestRate:      a.InterestRate,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *DebtorMapper) DebtAccountToModel(a *entity.DebtAccount) *model.DebtAccount {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.DebtAccount{
		Id:                a.Id,
		DebtorId:          a.DebtorId,
		AccountNumber:     a.AccountNumber,
		OriginalAmount:    a.OriginalAmount,
		OutstandingAmount: a.OutstandingAmount,
		DueDate:           a.DueDate,
		Status:            a.Status,
		InterestRate:      a.InterestRate,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
