package contract

import (
	"context"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DebtorRepository interface {
	Create(ctx context.Context, debtor *entity.Debtor) error
	Update(ctx context.Context, debtor *entity.Debtor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Debtor, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Debtor, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type DebtAccountRepository interface {
	Create(ctx context.Context, account *entity.DebtAccount) error
	Update(ctx context.Context, account *entity.DebtAccount) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DebtAccount, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DebtAccount, error)
}
