package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/pkg/whatsapp"
)

// DeliveryStatusTopic carries delivery-status callbacks from the webhook
// handler to the consumer that applies them to stored messages.
const DeliveryStatusTopic = "whatsapp.delivery-status"

type IWhatsAppService interface {
	VerifyWebhook(mode, token, challenge string) (string, bool)
	HandleWebhook(ctx context.Context, payload whatsapp.WebhookPayload) error
	SendTemplate(ctx context.Context, req *dto.SendWhatsAppTemplateRequest) error
}

type whatsAppService struct {
	chat        IChatService
	client      *whatsapp.Client
	pubSub      *gochannel.GoChannel
	verifyToken string
	log         logger.ILogger
}

func NewWhatsAppService(
	chat IChatService,
	client *whatsapp.Client,
	pubSub *gochannel.GoChannel,
	verifyToken string,
	log logger.ILogger,
) IWhatsAppService {
	return &whatsAppService{
		chat:        chat,
		client:      client,
		pubSub:      pubSub,
		verifyToken: verifyToken,
		log:         log,
	}
}

func (s *whatsAppService) VerifyWebhook(mode, token, challenge string) (string, bool) {
	return whatsapp.VerifyWebhook(mode, token, challenge, s.verifyToken)
}

func (s *whatsAppService) HandleWebhook(ctx context.Context, payload whatsapp.WebhookPayload) error {
	texts, statuses := whatsapp.ParseInbound(payload)

	for _, st := range statuses {
		s.publishStatus(st)
	}

	for _, t := range texts {
		out, err := s.chat.ProcessInbound(ctx, InboundEvent{
			From:              whatsapp.FormatPhoneNumber(t.From),
			Channel:           entity.ChannelWhatsApp,
			Text:              t.Text,
			ExternalMessageId: t.ExternalMessageID,
		})
		if err != nil {
			if errors.Is(err, ErrDebtorNotFound) {
				// Unknown senders are dropped, not errors.
				s.log.Warn("WhatsAppService", "message from unknown number", map[string]interface{}{
					"from": t.From,
				})
				continue
			}
			return err
		}
		if out == nil {
			continue
		}
		if err := s.dispatch(ctx, t.From, out); err != nil {
			s.log.Error("WhatsAppService", "dispatch failed", map[string]interface{}{
				"to":    t.From,
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (s *whatsAppService) dispatch(ctx context.Context, to string, out *OutboundPayload) error {
	var result *whatsapp.SendResult
	var err error

	if len(out.SuggestedActions) > 0 {
		buttons := make([]whatsapp.Button, 0, len(out.SuggestedActions))
		for _, a := range out.SuggestedActions {
			buttons = append(buttons, whatsapp.Button{ID: a, Title: actionTitle(a)})
		}
		result, err = s.client.SendInteractive(ctx, to, out.Content, buttons)
	} else {
		result, err = s.client.SendText(ctx, to, out.Content)
	}
	if err != nil {
		return err
	}

	return s.chat.AttachDeliveryId(ctx, out.MessageId, result.MessageID)
}

func (s *whatsAppService) SendTemplate(ctx context.Context, req *dto.SendWhatsAppTemplateRequest) error {
	_, err := s.client.SendTemplate(ctx, whatsapp.FormatPhoneNumber(req.To), req.TemplateName, req.LanguageCode, req.Parameters)
	return err
}

func (s *whatsAppService) publishStatus(st whatsapp.WebhookStatus) {
	ts, _ := strconv.ParseInt(st.Timestamp, 10, 64)
	update := dto.DeliveryStatusUpdate{
		ExternalMessageId: st.ID,
		Status:            st.Status,
		Timestamp:         ts,
	}
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(DeliveryStatusTopic, msg); err != nil {
		s.log.Warn("WhatsAppService", "status publish failed", map[string]interface{}{
			"external_message_id": st.ID,
			"error":               err.Error(),
		})
	}
}

// actionTitle turns an action code into a short button label. Button titles
// are capped at 20 characters by the channel.
var actionTitles = map[string]string{
	"show_payment_options": "Payment Options",
	"calculate_interest":   "Interest Details",
	"payment_history":      "Payment History",
	"schedule_followup":    "Schedule Followup",
	"send_payment_link":    "Pay Now",
	"confirm_amount":       "Confirm Amount",
	"escalate_to_agent":    "Talk to Agent",
	"request_documents":    "Send Documents",
	"schedule_call":        "Schedule a Call",
	"offer_emi_plan":       "EMI Plan",
	"discuss_settlement":   "Settlement",
	"financial_counseling": "Counseling",
	"calculate_settlement": "Settlement Offer",
	"get_approval":         "Get Approval",
	"generate_offer":       "View Offer",
	"calculate_emi":        "EMI Options",
	"show_emi_options":     "View Plans",
	"setup_autopay":        "Setup Autopay",
	"show_account_summary": "Account Summary",
	"general_assistance":   "Help",
}

func actionTitle(action string) string {
	if title, ok := actionTitles[action]; ok {
		return title
	}
	return action
}
