package compliance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/repository/contract"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeUow struct {
	botCount    int64
	botCountErr error
	optOuts     int64
	optOutsErr  error

	events        []*entity.ComplianceEvent
	closedDebtors []uuid.UUID

	began      bool
	committed  bool
	rolledBack bool
}

func (f *fakeUow) Begin(ctx context.Context) error { f.began = true; return nil }
func (f *fakeUow) Commit() error                   { f.committed = true; return nil }
func (f *fakeUow) Rollback() error                 { f.rolledBack = true; return nil }

func (f *fakeUow) DebtorRepository() contract.DebtorRepository           { return nil }
func (f *fakeUow) DebtAccountRepository() contract.DebtAccountRepository { return nil }
func (f *fakeUow) PaymentTransactionRepository() contract.PaymentTransactionRepository {
	return nil
}
func (f *fakeUow) AgentRepository() contract.AgentRepository { return nil }

func (f *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{uow: f}
}

func (f *fakeUow) ConversationMessageRepository() contract.ConversationMessageRepository {
	return &fakeMessageRepo{uow: f}
}

func (f *fakeUow) ComplianceEventRepository() contract.ComplianceEventRepository {
	return &fakeEventRepo{uow: f}
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeSessionRepo struct {
	uow *fakeUow
}

func (r *fakeSessionRepo) Create(context.Context, *entity.ChatSession) error { return nil }
func (r *fakeSessionRepo) Update(context.Context, *entity.ChatSession) error { return nil }
func (r *fakeSessionRepo) FindOne(context.Context, ...specification.Specification) (*entity.ChatSession, error) {
	return nil, nil
}
func (r *fakeSessionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}
func (r *fakeSessionRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeSessionRepo) CloseAllActiveByDebtorId(ctx context.Context, debtorId uuid.UUID) error {
	r.uow.closedDebtors = append(r.uow.closedDebtors, debtorId)
	return nil
}

type fakeMessageRepo struct {
	uow *fakeUow
}

func (r *fakeMessageRepo) Create(context.Context, *entity.ConversationMessage) error { return nil }
func (r *fakeMessageRepo) Update(context.Context, *entity.ConversationMessage) error { return nil }
func (r *fakeMessageRepo) FindOne(context.Context, ...specification.Specification) (*entity.ConversationMessage, error) {
	return nil, nil
}
func (r *fakeMessageRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ConversationMessage, error) {
	return nil, nil
}
func (r *fakeMessageRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeMessageRepo) Recent(context.Context, uuid.UUID, int) ([]*entity.ConversationMessage, error) {
	return nil, nil
}
func (r *fakeMessageRepo) CountBotMessagesSince(context.Context, uuid.UUID, string, time.Time) (int64, error) {
	return r.uow.botCount, r.uow.botCountErr
}

type fakeEventRepo struct {
	uow *fakeUow
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.ComplianceEvent) error {
	r.uow.events = append(r.uow.events, event)
	return nil
}
func (r *fakeEventRepo) FindOne(context.Context, ...specification.Specification) (*entity.ComplianceEvent, error) {
	return nil, nil
}
func (r *fakeEventRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ComplianceEvent, error) {
	return nil, nil
}
func (r *fakeEventRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return r.uow.optOuts, r.uow.optOutsErr
}

func newTestGate(uow *fakeUow, clock time.Time) *Gate {
	cfg := Config{
		MaxDailyMessages: 3,
		ContactStartHour: 8,
		ContactEndHour:   21,
		Timezone:         time.UTC,
	}
	g := NewGate(&fakeFactory{uow: uow}, cfg, nopLogger{})
	return g.WithClock(func() time.Time { return clock })
}

func withinWindow() time.Time {
	return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
}

func TestCheckAllowedUnderQuota(t *testing.T) {
	uow := &fakeUow{botCount: 2}
	g := newTestGate(uow, withinWindow())

	d := g.Check(context.Background(), uuid.New(), entity.ChannelWhatsApp)
	if !d.Allowed {
		t.Fatalf("expected allowed, got denial: %s", d.Reason)
	}
}

func TestCheckQuotaExceeded(t *testing.T) {
	uow := &fakeUow{botCount: 3}
	g := newTestGate(uow, withinWindow())

	d := g.Check(context.Background(), uuid.New(), entity.ChannelWhatsApp)
	if d.Allowed {
		t.Fatal("expected denial at quota")
	}
	if !strings.Contains(d.Reason, ReasonQuota) {
		t.Fatalf("reason should reference the quota, got %q", d.Reason)
	}
	if d.Count != 3 {
		t.Fatalf("expected measured count 3, got %d", d.Count)
	}
}

func TestCheckOutsideContactHours(t *testing.T) {
	uow := &fakeUow{botCount: 0}
	late := time.Date(2026, 8, 30, 22, 30, 0, 0, time.UTC)
	g := newTestGate(uow, late)

	d := g.Check(context.Background(), uuid.New(), entity.ChannelWhatsApp)
	if d.Allowed {
		t.Fatal("expected denial outside contact hours")
	}
	if !strings.Contains(d.Reason, ReasonOutsideWindow) {
		t.Fatalf("unexpected reason %q", d.Reason)
	}
}

func TestCheckWindowBoundaries(t *testing.T) {
	uow := &fakeUow{}
	cases := []struct {
		hour    int
		allowed bool
	}{
		{7, false},
		{8, true},
		{20, true},
		{21, false},
	}
	for _, tc := range cases {
		clock := time.Date(2026, 8, 30, tc.hour, 0, 0, 0, time.UTC)
		g := newTestGate(uow, clock)
		d := g.Check(context.Background(), uuid.New(), entity.ChannelWeb)
		if d.Allowed != tc.allowed {
			t.Errorf("hour %d: allowed=%v, want %v (reason %q)", tc.hour, d.Allowed, tc.allowed, d.Reason)
		}
	}
}

func TestCheckOptedOut(t *testing.T) {
	uow := &fakeUow{botCount: 0, optOuts: 1}
	g := newTestGate(uow, withinWindow())

	d := g.Check(context.Background(), uuid.New(), entity.ChannelWhatsApp)
	if d.Allowed {
		t.Fatal("opted-out debtor must be denied")
	}
	if d.Reason != ReasonOptedOut {
		t.Fatalf("unexpected reason %q", d.Reason)
	}
}

func TestCheckFailsClosedOnStoreError(t *testing.T) {
	uow := &fakeUow{botCountErr: errors.New("db down")}
	g := newTestGate(uow, withinWindow())

	d := g.Check(context.Background(), uuid.New(), entity.ChannelWhatsApp)
	if d.Allowed {
		t.Fatal("store failure must deny, not allow")
	}
	if d.Reason != ReasonCheckFailed {
		t.Fatalf("unexpected reason %q", d.Reason)
	}
}

func TestRecordOptOutClosesSessions(t *testing.T) {
	uow := &fakeUow{}
	g := newTestGate(uow, withinWindow())
	debtorId := uuid.New()

	if err := g.RecordOptOut(context.Background(), debtorId, "STOP received", map[string]interface{}{"source": "whatsapp"}); err != nil {
		t.Fatalf("RecordOptOut: %v", err)
	}
	if !uow.began || !uow.committed {
		t.Fatal("opt-out must run inside a committed transaction")
	}
	if len(uow.events) != 1 || uow.events[0].ActionType != entity.ComplianceActionOptOut {
		t.Fatalf("expected one opt-out event, got %+v", uow.events)
	}
	if len(uow.closedDebtors) != 1 || uow.closedDebtors[0] != debtorId {
		t.Fatalf("active sessions were not closed for %s", debtorId)
	}
}

func TestRecordBlockActionTypes(t *testing.T) {
	uow := &fakeUow{}
	g := newTestGate(uow, withinWindow())

	g.RecordBlock(context.Background(), uuid.New(), Decision{Reason: ReasonQuota + ": 3 of 3 messages sent today", Count: 3})
	g.RecordBlock(context.Background(), uuid.New(), Decision{Reason: ReasonOutsideWindow + ": contact allowed 08:00-21:00 UTC"})
	g.RecordBlock(context.Background(), uuid.New(), Decision{Reason: ReasonOptedOut})

	if len(uow.events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(uow.events))
	}
	if uow.events[0].ActionType != entity.ComplianceActionQuotaBlock {
		t.Errorf("first event should be a quota block, got %s", uow.events[0].ActionType)
	}
	if uow.events[1].ActionType != entity.ComplianceActionTimeBlock {
		t.Errorf("second event should be a time block, got %s", uow.events[1].ActionType)
	}
	if uow.events[2].ActionType != entity.ComplianceActionOptOutBlock {
		t.Errorf("third event should be an opt-out block, got %s", uow.events[2].ActionType)
	}
}

func TestDefaultConfigContactWindow(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContactStartHour != 9 || cfg.ContactEndHour != 19 {
		t.Fatalf("expected 09:00-19:00 contact window, got %02d:00-%02d:00", cfg.ContactStartHour, cfg.ContactEndHour)
	}
}
