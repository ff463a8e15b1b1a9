package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/contract"
	"ai-debtchat-be/internal/repository/memory"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/pkg/compliance"
	"ai-debtchat-be/pkg/language"
	"ai-debtchat-be/pkg/responder"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// memStore is a stateful in-memory backing shared by all fake repositories
// of one test, so uow instances observe each other's writes like they
// would against a real database.
type memStore struct {
	debtors  []*entity.Debtor
	accounts []*entity.DebtAccount
	sessions []*entity.ChatSession
	messages []*entity.ConversationMessage
	events   []*entity.ComplianceEvent

	botCount  int64
	debtorErr error
}

type memFactory struct {
	store *memStore
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) DebtorRepository() contract.DebtorRepository { return &memDebtorRepo{u.store} }
func (u *memUow) DebtAccountRepository() contract.DebtAccountRepository {
	return &memAccountRepo{u.store}
}
func (u *memUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &memSessionRepo{u.store}
}
func (u *memUow) ConversationMessageRepository() contract.ConversationMessageRepository {
	return &memMessageRepo{u.store}
}
func (u *memUow) ComplianceEventRepository() contract.ComplianceEventRepository {
	return &memEventRepo{u.store}
}
func (u *memUow) PaymentTransactionRepository() contract.PaymentTransactionRepository {
	return nil
}
func (u *memUow) AgentRepository() contract.AgentRepository { return nil }

type memDebtorRepo struct{ store *memStore }

func (r *memDebtorRepo) Create(ctx context.Context, d *entity.Debtor) error {
	if d.Id == uuid.Nil {
		d.Id = uuid.New()
	}
	r.store.debtors = append(r.store.debtors, d)
	return nil
}

func (r *memDebtorRepo) Update(ctx context.Context, d *entity.Debtor) error { return nil }
func (r *memDebtorRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

func (r *memDebtorRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Debtor, error) {
	if r.store.debtorErr != nil {
		return nil, r.store.debtorErr
	}
	for _, d := range r.store.debtors {
		if debtorMatches(d, specs) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDebtorRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Debtor, error) {
	var out []*entity.Debtor
	for _, d := range r.store.debtors {
		if debtorMatches(d, specs) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDebtorRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func debtorMatches(d *entity.Debtor, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if d.Id != sp.ID {
				return false
			}
		case specification.ByAccountNumber:
			if d.AccountNumber != sp.AccountNumber {
				return false
			}
		case specification.ByPhone:
			if d.Phone != sp.Phone {
				return false
			}
		}
	}
	return true
}

type memAccountRepo struct{ store *memStore }

func (r *memAccountRepo) Create(ctx context.Context, a *entity.DebtAccount) error {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	r.store.accounts = append(r.store.accounts, a)
	return nil
}

func (r *memAccountRepo) Update(ctx context.Context, a *entity.DebtAccount) error { return nil }

func (r *memAccountRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DebtAccount, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memAccountRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DebtAccount, error) {
	var out []*entity.DebtAccount
	for _, a := range r.store.accounts {
		ok := true
		for _, s := range specs {
			if sp, is := s.(specification.ByDebtorID); is && a.DebtorId != sp.DebtorID {
				ok = false
			}
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type memSessionRepo struct{ store *memStore }

func (r *memSessionRepo) Create(ctx context.Context, s *entity.ChatSession) error {
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	r.store.sessions = append(r.store.sessions, s)
	return nil
}

func (r *memSessionRepo) Update(ctx context.Context, s *entity.ChatSession) error { return nil }

func (r *memSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, sess := range r.store.sessions {
		if sessionMatches(sess, specs) {
			return sess, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, sess := range r.store.sessions {
		if sessionMatches(sess, specs) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (r *memSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *memSessionRepo) CloseAllActiveByDebtorId(ctx context.Context, debtorId uuid.UUID) error {
	now := time.Now().UTC()
	for _, sess := range r.store.sessions {
		if sess.DebtorId == debtorId && sess.Status == entity.SessionStatusActive {
			sess.Status = entity.SessionStatusClosed
			sess.EndedAt = &now
		}
	}
	return nil
}

func sessionMatches(sess *entity.ChatSession, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.BySessionToken:
			if sess.SessionToken != sp.Token {
				return false
			}
		case specification.ByDebtorID:
			if sess.DebtorId != sp.DebtorID {
				return false
			}
		case specification.ByChannel:
			if sess.Channel != sp.Channel {
				return false
			}
		case specification.ByStatus:
			if sess.Status != sp.Status {
				return false
			}
		}
	}
	return true
}

type memMessageRepo struct{ store *memStore }

func (r *memMessageRepo) Create(ctx context.Context, m *entity.ConversationMessage) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	r.store.messages = append(r.store.messages, m)
	return nil
}

func (r *memMessageRepo) Update(ctx context.Context, m *entity.ConversationMessage) error { return nil }

func (r *memMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationMessage, error) {
	for _, m := range r.store.messages {
		ok := true
		for _, s := range specs {
			switch sp := s.(type) {
			case specification.ByID:
				if m.Id != sp.ID {
					ok = false
				}
			case specification.ByDeliveryID:
				id, _ := m.Metadata["delivery_id"].(string)
				if id != sp.DeliveryID {
					ok = false
				}
			}
		}
		if ok {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	return r.store.messages, nil
}

func (r *memMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.messages)), nil
}

func (r *memMessageRepo) Recent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ConversationMessage, error) {
	var out []*entity.ConversationMessage
	for _, m := range r.store.messages {
		if m.SessionId == sessionId {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memMessageRepo) CountBotMessagesSince(ctx context.Context, debtorId uuid.UUID, channel string, since time.Time) (int64, error) {
	return r.store.botCount, nil
}

type memEventRepo struct{ store *memStore }

func (r *memEventRepo) Create(ctx context.Context, e *entity.ComplianceEvent) error {
	if e.Id == uuid.Nil {
		e.Id = uuid.New()
	}
	r.store.events = append(r.store.events, e)
	return nil
}

func (r *memEventRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ComplianceEvent, error) {
	return nil, nil
}

func (r *memEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ComplianceEvent, error) {
	return r.store.events, nil
}

func (r *memEventRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, e := range r.store.events {
		ok := true
		for _, s := range specs {
			switch sp := s.(type) {
			case specification.ByDebtorID:
				if e.DebtorId != sp.DebtorID {
					ok = false
				}
			case specification.ByActionType:
				if e.ActionType != sp.ActionType {
					ok = false
				}
			}
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func newTestService(t *testing.T, store *memStore) IChatService {
	t.Helper()

	factory := &memFactory{store: store}
	log := nopLogger{}

	// Fixed clock inside the contact window so time checks are stable.
	inWindow := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	gate := compliance.NewGate(factory, compliance.Config{
		MaxDailyMessages: 3,
		ContactStartHour: 0,
		ContactEndHour:   24,
		Timezone:         time.UTC,
	}, log).WithClock(func() time.Time { return inWindow })

	return NewChatService(
		factory,
		memory.NewRuntimeStore(),
		language.NewIdentifier(language.DefaultConfig()),
		responder.NewGenerator(nil, time.Second, log),
		gate,
		nil,
		nil,
		nil,
		"",
		log,
	)
}

func seedStore() (*memStore, *entity.Debtor, *entity.ChatSession) {
	debtor := &entity.Debtor{
		Id:                uuid.New(),
		AccountNumber:     "LN-1001",
		Name:              "Ramesh Kumar",
		Phone:             "919876543210",
		PreferredLanguage: language.TagHindi,
	}
	session := &entity.ChatSession{
		Id:           uuid.New(),
		DebtorId:     debtor.Id,
		SessionToken: "tok-1",
		Channel:      entity.ChannelWeb,
		Language:     language.TagEnglish,
		Status:       entity.SessionStatusActive,
	}
	account := &entity.DebtAccount{
		Id:                uuid.New(),
		DebtorId:          debtor.Id,
		AccountNumber:     "LN-1001",
		OriginalAmount:    50000,
		OutstandingAmount: 50000,
		DueDate:           time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:            entity.DebtStatusOverdue,
	}
	store := &memStore{
		debtors:  []*entity.Debtor{debtor},
		accounts: []*entity.DebtAccount{account},
		sessions: []*entity.ChatSession{session},
	}
	return store, debtor, session
}

func TestStartSessionReusesActiveSession(t *testing.T) {
	store, _, session := seedStore()
	svc := newTestService(t, store)

	res, err := svc.StartSession(context.Background(), &dto.StartSessionRequest{
		AccountNumber: "LN-1001",
		Channel:       entity.ChannelWeb,
	})
	require.NoError(t, err)
	assert.Equal(t, session.Id, res.Id)
	assert.Len(t, store.sessions, 1)
}

func TestStartSessionUnknownAccount(t *testing.T) {
	store, _, _ := seedStore()
	svc := newTestService(t, store)

	_, err := svc.StartSession(context.Background(), &dto.StartSessionRequest{
		AccountNumber: "LN-9999",
		Channel:       entity.ChannelWeb,
	})
	assert.ErrorIs(t, err, ErrDebtorNotFound)
}

func TestProcessMessagePersistsExchange(t *testing.T) {
	store, _, session := seedStore()
	svc := newTestService(t, store)

	res, err := svc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		SessionToken: "tok-1",
		Content:      "kitna baki hai?",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Reply)
	assert.False(t, res.Blocked)
	assert.Equal(t, session.Id, res.SessionId)
	assert.Equal(t, entity.SenderUser, res.Sent.SenderType)
	assert.Equal(t, entity.SenderBot, res.Reply.SenderType)
	assert.NotEmpty(t, res.Reply.Content)

	// Both sides of the exchange must exist in the store.
	assert.Len(t, store.messages, 2)
}

func TestProcessMessageBlockedOverQuota(t *testing.T) {
	store, _, _ := seedStore()
	store.botCount = 3
	svc := newTestService(t, store)

	res, err := svc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		SessionToken: "tok-1",
		Content:      "payment info please",
	})
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Nil(t, res.Reply)
	assert.Contains(t, res.Reason, compliance.ReasonQuota)

	// Inbound message is kept even when the reply is suppressed.
	require.Len(t, store.messages, 1)
	assert.Equal(t, entity.SenderUser, store.messages[0].SenderType)
}

func TestProcessMessageClosedSession(t *testing.T) {
	store, _, session := seedStore()
	session.Status = entity.SessionStatusClosed
	svc := newTestService(t, store)

	_, err := svc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		SessionToken: "tok-1",
		Content:      "hello",
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestOptOutClosesAllActiveSessions(t *testing.T) {
	store, debtor, session := seedStore()
	second := &entity.ChatSession{
		Id:           uuid.New(),
		DebtorId:     debtor.Id,
		SessionToken: "tok-2",
		Channel:      entity.ChannelWhatsApp,
		Language:     language.TagHindi,
		Status:       entity.SessionStatusActive,
	}
	store.sessions = append(store.sessions, second)
	svc := newTestService(t, store)

	res, err := svc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		SessionToken: "tok-1",
		Content:      "STOP, do not contact me",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Reply)

	assert.Equal(t, entity.SessionStatusClosed, session.Status)
	assert.Equal(t, entity.SessionStatusClosed, second.Status)

	var optOuts int
	for _, e := range store.events {
		if e.ActionType == entity.ComplianceActionOptOut {
			optOuts++
		}
	}
	assert.Equal(t, 1, optOuts)
}

func TestDisputeTransfersSession(t *testing.T) {
	store, _, session := seedStore()
	svc := newTestService(t, store)

	res, err := svc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		SessionToken: "tok-1",
		Content:      "this loan is not mine, there is a mistake",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Reply)

	assert.Equal(t, entity.SessionStatusTransferred, session.Status)
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, "dispute", session.Metadata["end_reason"])
}

func TestOptOutIsSticky(t *testing.T) {
	store, debtor, _ := seedStore()
	store.events = append(store.events, &entity.ComplianceEvent{
		Id:         uuid.New(),
		DebtorId:   debtor.Id,
		ActionType: entity.ComplianceActionOptOut,
	})
	svc := newTestService(t, store)

	res, err := svc.ProcessMessage(context.Background(), &dto.SendMessageRequest{
		SessionToken: "tok-1",
		Content:      "what is my due amount",
	})
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Equal(t, compliance.ReasonOptedOut, res.Reason)

	// The denial is audited under its own action type, distinct from the
	// sticky opt-out record itself.
	var blocks int
	for _, e := range store.events {
		if e.ActionType == entity.ComplianceActionOptOutBlock {
			blocks++
		}
	}
	assert.Equal(t, 1, blocks)
}

func TestProcessInboundCreatesSessionAndReplies(t *testing.T) {
	store, debtor, _ := seedStore()
	svc := newTestService(t, store)

	out, err := svc.ProcessInbound(context.Background(), InboundEvent{
		From:              debtor.Phone,
		Channel:           entity.ChannelWhatsApp,
		Text:              "I want to pay in installments",
		ExternalMessageId: "wamid.1",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEqual(t, uuid.Nil, out.MessageId)
	assert.NotEmpty(t, out.Content)

	// A whatsapp session was created alongside the seeded web one.
	var waSessions int
	for _, s := range store.sessions {
		if s.Channel == entity.ChannelWhatsApp {
			waSessions++
		}
	}
	assert.Equal(t, 1, waSessions)
}

func TestProcessInboundDeduplicatesDeliveries(t *testing.T) {
	store, debtor, _ := seedStore()
	svc := newTestService(t, store)

	ev := InboundEvent{
		From:              debtor.Phone,
		Channel:           entity.ChannelWhatsApp,
		Text:              "hello",
		ExternalMessageId: "wamid.dup",
	}
	first, err := svc.ProcessInbound(context.Background(), ev)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.ProcessInbound(context.Background(), ev)
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestProcessInboundRetryAfterFailure(t *testing.T) {
	store, debtor, _ := seedStore()
	store.debtorErr = errors.New("db down")
	svc := newTestService(t, store)

	ev := InboundEvent{
		From:              debtor.Phone,
		Channel:           entity.ChannelWhatsApp,
		Text:              "kitna baki hai",
		ExternalMessageId: "wamid.retry",
	}
	_, err := svc.ProcessInbound(context.Background(), ev)
	require.Error(t, err)
	assert.Empty(t, store.messages)

	// The channel retries the same message id once the store recovers; it
	// must be processed, not dropped as a duplicate.
	store.debtorErr = nil
	out, err := svc.ProcessInbound(context.Background(), ev)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Len(t, store.messages, 2)
}

func TestProcessInboundUnknownNumber(t *testing.T) {
	store, _, _ := seedStore()
	svc := newTestService(t, store)

	_, err := svc.ProcessInbound(context.Background(), InboundEvent{
		From:    "910000000000",
		Channel: entity.ChannelSMS,
		Text:    "hello",
	})
	assert.ErrorIs(t, err, ErrDebtorNotFound)
}

func TestHistorySuggestedActionsFromStoredMetadata(t *testing.T) {
	store, _, session := seedStore()
	// Metadata read back from JSONB carries []interface{}, not []string.
	store.messages = append(store.messages, &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  session.Id,
		SenderType: entity.SenderBot,
		Content:    "reply",
		SentAt:     time.Now().UTC(),
		Metadata: map[string]interface{}{
			"intent":            "emi_request",
			"suggested_actions": []interface{}{"calculate_emi", "payment_plan"},
		},
	})
	svc := newTestService(t, store)

	res, err := svc.GetHistory(context.Background(), "tok-1", 10)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, []string{"calculate_emi", "payment_plan"}, res.Messages[0].SuggestedActions)
}

func TestNegotiateLanguageUpdatesSession(t *testing.T) {
	store, _, session := seedStore()
	svc := newTestService(t, store)

	res, err := svc.NegotiateLanguage(context.Background(), "tok-1", &dto.NegotiateLanguageRequest{Language: "ta"})
	require.NoError(t, err)
	assert.Equal(t, "ta", res.Language)
	assert.Equal(t, language.TagTamil, session.Language)
}

func TestAttachDeliveryId(t *testing.T) {
	store, _, session := seedStore()
	msg := &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  session.Id,
		SenderType: entity.SenderBot,
		Content:    "reply",
	}
	store.messages = append(store.messages, msg)
	svc := newTestService(t, store)

	require.NoError(t, svc.AttachDeliveryId(context.Background(), msg.Id, "wamid.42"))
	assert.Equal(t, "wamid.42", msg.Metadata["delivery_id"])
}
