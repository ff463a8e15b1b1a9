package contract

import (
	"context"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/specification"
)

type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Agent, error)
}
