package contract

import (
	"context"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CloseAllActiveByDebtorId marks every active session of the debtor
	// closed in a single statement.
	CloseAllActiveByDebtorId(ctx context.Context, debtorId uuid.UUID) error
}
