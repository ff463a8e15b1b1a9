package service

import (
	"context"
	"errors"
	"strings"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/pkg/sms"
)

type ISMSService interface {
	// HandleInbound processes one inbound SMS and replies over the same
	// channel when the pipeline produced a reply.
	HandleInbound(ctx context.Context, from, body, externalMessageId string) error
}

type smsService struct {
	chat   IChatService
	sender *sms.Sender
	log    logger.ILogger
}

func NewSMSService(chat IChatService, sender *sms.Sender, log logger.ILogger) ISMSService {
	return &smsService{
		chat:   chat,
		sender: sender,
		log:    log,
	}
}

func (s *smsService) HandleInbound(ctx context.Context, from, body, externalMessageId string) error {
	out, err := s.chat.ProcessInbound(ctx, InboundEvent{
		From:              normalizeSMSNumber(from),
		Channel:           entity.ChannelSMS,
		Text:              body,
		ExternalMessageId: externalMessageId,
	})
	if err != nil {
		if errors.Is(err, ErrDebtorNotFound) {
			s.log.Warn("SMSService", "message from unknown number", map[string]interface{}{
				"from": from,
			})
			return nil
		}
		return err
	}
	if out == nil {
		return nil
	}

	sid, err := s.sender.Send(from, out.Content)
	if err != nil {
		s.log.Error("SMSService", "reply send failed", map[string]interface{}{
			"to":    from,
			"error": err.Error(),
		})
		return nil
	}
	return s.chat.AttachDeliveryId(ctx, out.MessageId, sid)
}

// normalizeSMSNumber strips the +91 country prefix variants down to the
// canonical 12-digit form used for debtor lookup.
func normalizeSMSNumber(number string) string {
	n := strings.TrimSpace(number)
	n = strings.TrimPrefix(n, "+")
	if len(n) == 10 {
		n = "91" + n
	}
	return n
}
