package mapper

import (
	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/model"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) AgentToEntity(a *model.Agent) *entity.Agent {
	if a == nil {
		return nil
	}

	return &entity.Agent{
		Id:           a.Id,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AgentMapper) AgentToModel(a *entity.Agent) *model.Agent {
	if a == nil {
		return nil
	}

	return &model.Agent{
		Id:           a.Id,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
	}
}
