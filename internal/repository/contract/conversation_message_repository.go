package contract

import (
	"context"
	"time"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationMessageRepository interface {
	Create(ctx context.Context, message *entity.ConversationMessage) error
	Update(ctx context.Context, message *entity.ConversationMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Recent returns the latest messages of a session in chronological order.
	Recent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ConversationMessage, error)
	// CountBotMessagesSince counts outbound bot messages across the
	// debtor's sessions on one channel sent at or after the given instant.
	CountBotMessagesSince(ctx context.Context, debtorId uuid.UUID, channel string, since time.Time) (int64, error)
}
