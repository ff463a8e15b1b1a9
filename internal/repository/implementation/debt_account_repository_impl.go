package implementation

import (
	"context"
	"errors"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/mapper"
	"ai-debtchat-be/internal/model"
	"ai-debtchat-be/internal/repository/contract"
	"ai-debtchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DebtAccountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DebtorMapper
}

func NewDebtAccountRepository(db *gorm.DB) contract.DebtAccountRepository {
	return &DebtAccountRepositoryImpl{
		db:     db,
		mapper: mapper.NewDebtorMapper(),
	}
}

func (r *DebtAccountRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DebtAccountRepositoryImpl) Create(ctx context.Context, account *entity.DebtAccount) error {
	m := r.mapper.DebtAccountToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.DebtAccountToEntity(m)
	return nil
}

func (r *DebtAccountRepositoryImpl) Update(ctx context.Context, account *entity.DebtAccount) error {
	m := r.mapper.DebtAccountToModel(account)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.DebtAccountToEntity(m)
	return nil
}

func (r *DebtAccountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DebtAccount, error) {
	var m model.DebtAccount
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DebtAccountToEntity(&m), nil
}

func (r *DebtAccountRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DebtAccount, error) {
	var models []*model.DebtAccount
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DebtAccount, len(models))
	for i, m := range models {
		entities[i] = r.mapper.DebtAccountToEntity(m)
	}
	return entities, nil
}
