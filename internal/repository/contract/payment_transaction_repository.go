package contract

import (
	"context"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/specification"
)

type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	Update(ctx context.Context, tx *entity.PaymentTransaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error)
}
