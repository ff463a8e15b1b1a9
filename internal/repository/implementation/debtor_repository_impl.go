package implementation

import (
	"context"
	"errors"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/mapper"
	"ai-debtchat-be/internal/model"
	"ai-debtchat-be/internal/repository/contract"
	"ai-debtchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DebtorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DebtorMapper
}

func NewDebtorRepository(db *gorm.DB) contract.DebtorRepository {
	return &DebtorRepositoryImpl{
		db:     db,
		mapper: mapper.NewDebtorMapper(),
	}
}

func (r *DebtorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DebtorRepositoryImpl) Create(ctx context.Context, debtor *entity.Debtor) error {
	m := r.mapper.DebtorToModel(debtor)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*debtor = *r.mapper.DebtorToEntity(m)
	return nil
}

func (r *DebtorRepositoryImpl) Update(ctx context.Context, debtor *entity.Debtor) error {
	m := r.mapper.DebtorToModel(debtor)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*debtor = *r.mapper.DebtorToEntity(m)
	return nil
}

func (r *DebtorRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Debtor{}, id).Error
}

func (r *DebtorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Debtor, error) {
	var m model.Debtor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DebtorToEntity(&m), nil
}

func (r *DebtorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Debtor, error) {
	var models []*model.Debtor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Debtor, len(models))
	for i, m := range models {
		entities[i] = r.mapper.DebtorToEntity(m)
	}
	return entities, nil
}

func (r *DebtorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Debtor{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
