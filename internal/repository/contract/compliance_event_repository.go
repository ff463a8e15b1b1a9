package contract

import (
	"context"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/specification"
)

type ComplianceEventRepository interface {
	Create(ctx context.Context, event *entity.ComplianceEvent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ComplianceEvent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComplianceEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
