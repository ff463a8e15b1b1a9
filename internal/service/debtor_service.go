package service

import (
	"context"

	"github.com/google/uuid"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/implementation"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/pkg/language"
)

type IDebtorService interface {
	CreateDebtor(ctx context.Context, req *dto.CreateDebtorRequest) (*dto.DebtorResponse, error)
	GetDebtor(ctx context.Context, id uuid.UUID) (*dto.DebtorResponse, error)
	CreateDebtAccount(ctx context.Context, req *dto.CreateDebtAccountRequest) (*dto.DebtAccountResponse, error)
	GetAccounts(ctx context.Context, debtorId uuid.UUID) ([]*dto.DebtAccountResponse, error)
	GetAnalytics(ctx context.Context, debtorId uuid.UUID) (*dto.DebtorAnalyticsResponse, error)
}

type debtorService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDebtorService(uowFactory unitofwork.RepositoryFactory) IDebtorService {
	return &debtorService{
		uowFactory: uowFactory,
	}
}

func (s *debtorService) CreateDebtor(ctx context.Context, req *dto.CreateDebtorRequest) (*dto.DebtorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	preferred := language.Tag(req.PreferredLanguage)
	if preferred == "" {
		preferred = language.TagHindi
	}

	debtor := &entity.Debtor{
		AccountNumber:     req.AccountNumber,
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		PreferredLanguage: preferred,
	}
	if err := uow.DebtorRepository().Create(ctx, debtor); err != nil {
		if implementation.IsUniqueViolation(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return debtorToDTO(debtor), nil
}

func (s *debtorService) GetDebtor(ctx context.Context, id uuid.UUID) (*dto.DebtorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}
	return debtorToDTO(debtor), nil
}

func (s *debtorService) CreateDebtAccount(ctx context.Context, req *dto.CreateDebtAccountRequest) (*dto.DebtAccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: req.DebtorId})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}

	account := &entity.DebtAccount{
		DebtorId:          req.DebtorId,
		AccountNumber:     req.AccountNumber,
		OriginalAmount:    req.OriginalAmount,
		OutstandingAmount: req.OriginalAmount,
		DueDate:           req.DueDate,
		Status:            entity.DebtStatusActive,
		InterestRate:      req.InterestRate,
	}
	if err := uow.DebtAccountRepository().Create(ctx, account); err != nil {
		return nil, err
	}
	return accountToDTO(account), nil
}

func (s *debtorService) GetAccounts(ctx context.Context, debtorId uuid.UUID) ([]*dto.DebtAccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	accounts, err := uow.DebtAccountRepository().FindAll(ctx,
		specification.ByDebtorID{DebtorID: debtorId},
		specification.OrderBy{Field: "due_date"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DebtAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToDTO(a))
	}
	return out, nil
}

func (s *debtorService) GetAnalytics(ctx context.Context, debtorId uuid.UUID) (*dto.DebtorAnalyticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: debtorId})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}

	totalSessions, err := uow.ChatSessionRepository().Count(ctx, specification.ByDebtorID{DebtorID: debtorId})
	if err != nil {
		return nil, err
	}
	activeSessions, err := uow.ChatSessionRepository().Count(ctx,
		specification.ByDebtorID{DebtorID: debtorId},
		specification.ByStatus{Status: entity.SessionStatusActive},
	)
	if err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specification.ByDebtorID{DebtorID: debtorId})
	if err != nil {
		return nil, err
	}

	var totalMessages int64
	intentBreakdown := map[string]int64{}
	for _, sess := range sessions {
		msgs, err := uow.ConversationMessageRepository().FindAll(ctx, specification.BySessionID{SessionID: sess.Id})
		if err != nil {
			return nil, err
		}
		totalMessages += int64(len(msgs))
		for _, m := range msgs {
			if m.SenderType != entity.SenderUser || m.Metadata == nil {
				continue
			}
			if in, ok := m.Metadata["intent"].(string); ok && in != "" {
				intentBreakdown[in]++
			}
		}
	}

	blocks, err := uow.ComplianceEventRepository().Count(ctx, specification.ByDebtorID{DebtorID: debtorId})
	if err != nil {
		return nil, err
	}
	optOuts, err := uow.ComplianceEventRepository().Count(ctx,
		specification.ByDebtorID{DebtorID: debtorId},
		specification.ByActionType{ActionType: entity.ComplianceActionOptOut},
	)
	if err != nil {
		return nil, err
	}

	var outstanding float64
	accounts, err := uow.DebtAccountRepository().FindAll(ctx, specification.ByDebtorID{DebtorID: debtorId})
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		outstanding += a.OutstandingAmount
	}

	res := &dto.DebtorAnalyticsResponse{
		TotalSessions:     totalSessions,
		ActiveSessions:    activeSessions,
		TotalMessages:     totalMessages,
		ComplianceBlocks:  blocks - optOuts,
		OptedOut:          optOuts > 0,
		OutstandingAmount: outstanding,
	}
	if len(intentBreakdown) > 0 {
		res.IntentBreakdown = intentBreakdown
	}
	return res, nil
}

func debtorToDTO(d *entity.Debtor) *dto.DebtorResponse {
	return &dto.DebtorResponse{
		Id:                d.Id,
		AccountNumber:     d.AccountNumber,
		Name:              d.Name,
		Phone:             d.Phone,
		Email:             d.Email,
		PreferredLanguage: string(d.PreferredLanguage),
		CreatedAt:         d.CreatedAt,
	}
}

func accountToDTO(a *entity.DebtAccount) *dto.DebtAccountResponse {
	return &dto.DebtAccountResponse{
		Id:                a.Id,
		AccountNumber:     a.AccountNumber,
		OriginalAmount:    a.OriginalAmount,
		OutstandingAmount: a.OutstandingAmount,
		DueDate:           a.DueDate,
		Status:            a.Status,
	}
}
