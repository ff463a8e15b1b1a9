package unitofwork

import (
	"context"

	"ai-debtchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DebtorRepository() contract.DebtorRepository
	DebtAccountRepository() contract.DebtAccountRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ConversationMessageRepository() contract.ConversationMessageRepository
	ComplianceEventRepository() contract.ComplianceEventRepository
	PaymentTransactionRepository() contract.PaymentTransactionRepository
	AgentRepository() contract.AgentRepository
}
