package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AgentRoleCollector  = "collector"
	AgentRoleSupervisor = "supervisor"
)

type Agent struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
