package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/pkg/compliance"
	"ai-debtchat-be/pkg/events"
	pkgNats "ai-debtchat-be/pkg/nats"
	"ai-debtchat-be/pkg/responder"
	"ai-debtchat-be/pkg/whatsapp"
)

type ICampaignService interface {
	Start() error
	Stop()
	// RunRemindersOnce sends one reminder pass immediately, used by the
	// scheduler and exposed for manual triggering.
	RunRemindersOnce(ctx context.Context) error
}

// campaignService sends proactive payment reminders over WhatsApp on a
// schedule. Every send goes through the compliance gate.
type campaignService struct {
	uowFactory   unitofwork.RepositoryFactory
	gate         *compliance.Gate
	client       *whatsapp.Client
	publisher    *pkgNats.Publisher
	templateName string
	schedule     string
	cron         *cron.Cron
	log          logger.ILogger
}

func NewCampaignService(
	uowFactory unitofwork.RepositoryFactory,
	gate *compliance.Gate,
	client *whatsapp.Client,
	publisher *pkgNats.Publisher,
	templateName string,
	schedule string,
	log logger.ILogger,
) ICampaignService {
	if templateName == "" {
		templateName = "payment_reminder"
	}
	if schedule == "" {
		schedule = "0 10 * * *"
	}
	return &campaignService{
		uowFactory:   uowFactory,
		gate:         gate,
		client:       client,
		publisher:    publisher,
		templateName: templateName,
		schedule:     schedule,
		cron:         cron.New(),
		log:          log,
	}
}

func (s *campaignService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunRemindersOnce(context.Background()); err != nil {
			s.log.Error("CampaignService", "reminder pass failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("CampaignService", "reminder schedule started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *campaignService) Stop() {
	s.cron.Stop()
}

func (s *campaignService) RunRemindersOnce(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	overdue, err := uow.DebtAccountRepository().FindAll(ctx,
		specification.FilterBy{Field: "status", Value: entity.DebtStatusOverdue},
	)
	if err != nil {
		return err
	}

	sent, skipped := 0, 0
	for _, account := range overdue {
		debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: account.DebtorId})
		if err != nil {
			return err
		}
		if debtor == nil {
			continue
		}

		decision := s.gate.Check(ctx, debtor.Id, entity.ChannelWhatsApp)
		if !decision.Allowed {
			skipped++
			continue
		}

		params := []string{
			debtor.Name,
			responder.FormatAmount(account.OutstandingAmount),
			account.DueDate.Format("02 Jan 2006"),
		}
		if _, err := s.client.SendTemplate(ctx, whatsapp.FormatPhoneNumber(debtor.Phone), s.templateName, templateLanguage(debtor), params); err != nil {
			s.log.Warn("CampaignService", "reminder send failed", map[string]interface{}{
				"debtor_id": debtor.Id.String(),
				"error":     err.Error(),
			})
			continue
		}
		sent++

		if s.publisher != nil {
			evt := events.BaseEvent{
				Type: events.TypeCampaignReminder,
				Data: map[string]interface{}{
					"debtor_id":       debtor.Id.String(),
					"debt_account_id": account.Id.String(),
					"outstanding":     account.OutstandingAmount,
				},
				OccurredAt: time.Now().UTC(),
			}
			if err := s.publisher.Publish(ctx, evt); err != nil {
				s.log.Warn("CampaignService", "event publish failed", map[string]interface{}{
					"debtor_id": debtor.Id.String(),
					"error":     err.Error(),
				})
			}
		}
	}

	s.log.Info("CampaignService", "reminder pass complete", map[string]interface{}{
		"sent":    sent,
		"skipped": skipped,
	})
	return nil
}

func templateLanguage(debtor *entity.Debtor) string {
	switch debtor.PreferredLanguage {
	case "hi", "mr", "en-IN":
		return "hi"
	case "ta":
		return "ta"
	case "te":
		return "te"
	default:
		return "en"
	}
}
