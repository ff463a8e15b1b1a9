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

type ComplianceEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ComplianceMapper
}

func NewComplianceEventRepository(db *gorm.DB) contract.ComplianceEventRepository {
	return &ComplianceEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewComplianceMapper(),
	}
}

func (r *ComplianceEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ComplianceEventRepositoryImpl) Create(ctx context.Context, event *entity.ComplianceEvent) error {
	m := r.mapper.EventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.EventToEntity(m)
	return nil
}

func (r *ComplianceEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ComplianceEvent, error) {
	var m model.ComplianceEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EventToEntity(&m), nil
}

func (r *ComplianceEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComplianceEvent, error) {
	var models []*model.ComplianceEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ComplianceEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.EventToEntity(m)
	}
	return entities, nil
}

func (r *ComplianceEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ComplianceEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
