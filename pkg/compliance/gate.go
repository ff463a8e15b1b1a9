package compliance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
)

// Decision is the gate's verdict on whether an outbound message to a
// debtor may be dispatched right now. A denied decision is a first-class
// outcome, not an error.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Count   int64  `json:"count,omitempty"`
}

const (
	ReasonQuota         = "daily_quota_exceeded"
	ReasonOutsideWindow = "outside_contact_hours"
	ReasonOptedOut      = "opted_out"
	ReasonCheckFailed   = "compliance_check_failed"
)

type Config struct {
	MaxDailyMessages int
	ContactStartHour int
	ContactEndHour   int
	Timezone         *time.Location
}

func DefaultConfig() Config {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}
	return Config{
		MaxDailyMessages: 3,
		ContactStartHour: 9,
		ContactEndHour:   19,
		Timezone:         loc,
	}
}

// Gate evaluates the regulatory checks that must pass before the pipeline
// is allowed to dispatch a bot reply to a debtor.
type Gate struct {
	factory unitofwork.RepositoryFactory
	cfg     Config
	log     logger.ILogger
	now     func() time.Time
}

func NewGate(factory unitofwork.RepositoryFactory, cfg Config, log logger.ILogger) *Gate {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	return &Gate{
		factory: factory,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// WithClock overrides the gate's clock source.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Check runs the three checks in fixed order, short-circuiting on the
// first denial: daily quota, contact-hours window, opt-out. A failed
// store read denies the dispatch rather than letting it through.
func (g *Gate) Check(ctx context.Context, debtorId uuid.UUID, channel string) Decision {
	uow := g.factory.NewUnitOfWork(ctx)
	localNow := g.now().In(g.cfg.Timezone)

	dayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, g.cfg.Timezone)
	count, err := uow.ConversationMessageRepository().CountBotMessagesSince(ctx, debtorId, channel, dayStart)
	if err != nil {
		g.log.Error("ComplianceGate", "quota count failed", map[string]interface{}{
			"debtor_id": debtorId.String(),
			"error":     err.Error(),
		})
		return Decision{Allowed: false, Reason: ReasonCheckFailed}
	}
	if count >= int64(g.cfg.MaxDailyMessages) {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("%s: %d of %d messages sent today", ReasonQuota, count, g.cfg.MaxDailyMessages),
			Count:   count,
		}
	}

	hour := localNow.Hour()
	if hour < g.cfg.ContactStartHour || hour >= g.cfg.ContactEndHour {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf("%s: contact allowed %02d:00-%02d:00 %s",
				ReasonOutsideWindow, g.cfg.ContactStartHour, g.cfg.ContactEndHour, g.cfg.Timezone.String()),
		}
	}

	optOuts, err := uow.ComplianceEventRepository().Count(ctx,
		specification.ByDebtorID{DebtorID: debtorId},
		specification.ByActionType{ActionType: entity.ComplianceActionOptOut},
	)
	if err != nil {
		g.log.Error("ComplianceGate", "opt-out lookup failed", map[string]interface{}{
			"debtor_id": debtorId.String(),
			"error":     err.Error(),
		})
		return Decision{Allowed: false, Reason: ReasonCheckFailed}
	}
	if optOuts > 0 {
		return Decision{Allowed: false, Reason: ReasonOptedOut}
	}

	return Decision{Allowed: true}
}

// RecordOptOut appends the opt-out audit event and closes every active
// session of the debtor in one transaction. Opt-out is sticky; there is
// no reversal path.
func (g *Gate) RecordOptOut(ctx context.Context, debtorId uuid.UUID, description string, metadata map[string]interface{}) error {
	uow := g.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	event := &entity.ComplianceEvent{
		DebtorId:    debtorId,
		ActionType:  entity.ComplianceActionOptOut,
		Description: description,
		Metadata:    metadata,
	}
	if err := uow.ComplianceEventRepository().Create(ctx, event); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.ChatSessionRepository().CloseAllActiveByDebtorId(ctx, debtorId); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	g.log.Info("ComplianceGate", "opt-out recorded", map[string]interface{}{
		"debtor_id": debtorId.String(),
	})
	return nil
}

// RecordBlock logs an audit event for a denied dispatch. Failures here
// are logged, not propagated; the denial itself already stands.
func (g *Gate) RecordBlock(ctx context.Context, debtorId uuid.UUID, decision Decision) {
	actionType := entity.ComplianceActionQuotaBlock
	switch {
	case strings.HasPrefix(decision.Reason, ReasonOutsideWindow):
		actionType = entity.ComplianceActionTimeBlock
	case decision.Reason == ReasonOptedOut:
		actionType = entity.ComplianceActionOptOutBlock
	}

	uow := g.factory.NewUnitOfWork(ctx)
	event := &entity.ComplianceEvent{
		DebtorId:    debtorId,
		ActionType:  actionType,
		Description: decision.Reason,
		Metadata:    map[string]interface{}{"count": decision.Count},
	}
	if err := uow.ComplianceEventRepository().Create(ctx, event); err != nil {
		g.log.Warn("ComplianceGate", "block audit write failed", map[string]interface{}{
			"debtor_id": debtorId.String(),
			"error":     err.Error(),
		})
	}
}
