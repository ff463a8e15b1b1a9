package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/internal/pkg/mailer"
	"ai-debtchat-be/internal/repository/memory"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/pkg/compliance"
	"ai-debtchat-be/pkg/events"
	"ai-debtchat-be/pkg/intent"
	"ai-debtchat-be/pkg/language"
	"ai-debtchat-be/pkg/nats"
	"ai-debtchat-be/pkg/responder"
	"ai-debtchat-be/pkg/translate"
)

// InboundEvent is the normalized message a channel adapter hands to the
// pipeline.
type InboundEvent struct {
	From              string
	Channel           string
	Text              string
	ExternalMessageId string
}

// OutboundPayload is what the adapter dispatches back, nil when nothing
// should be sent. MessageId identifies the stored bot message so the
// adapter can attach the channel delivery id after a successful send.
type OutboundPayload struct {
	MessageId        uuid.UUID
	Content          string
	SuggestedActions []string
}

type IChatService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	ProcessMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ProcessInbound(ctx context.Context, in InboundEvent) (*OutboundPayload, error)
	GetHistory(ctx context.Context, sessionToken string, limit int) (*dto.ChatHistoryResponse, error)
	NegotiateLanguage(ctx context.Context, sessionToken string, req *dto.NegotiateLanguageRequest) (*dto.SessionResponse, error)
	CloseSession(ctx context.Context, sessionToken string, reason string) error
	TransferSession(ctx context.Context, sessionToken string, reason string) error
	AttachDeliveryId(ctx context.Context, messageId uuid.UUID, deliveryId string) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *memory.RuntimeStore
	identifier *language.Identifier
	generator  *responder.Generator
	gate       *compliance.Gate
	translator *translate.Client
	publisher  *nats.Publisher
	mail       mailer.IEmailService
	escalateTo string
	log        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	store *memory.RuntimeStore,
	identifier *language.Identifier,
	generator *responder.Generator,
	gate *compliance.Gate,
	translator *translate.Client,
	publisher *nats.Publisher,
	mail mailer.IEmailService,
	escalateTo string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		store:      store,
		identifier: identifier,
		generator:  generator,
		gate:       gate,
		translator: translator,
		publisher:  publisher,
		mail:       mail,
		escalateTo: escalateTo,
		log:        log,
	}
}

func newSessionToken() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}

func (s *chatService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByAccountNumber{AccountNumber: req.AccountNumber})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}

	session, err := s.resolveSession(ctx, uow, debtor, req.Channel)
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

// resolveSession reuses the debtor's active session for the channel or
// creates one. At most one active session may exist per (debtor, channel).
func (s *chatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, debtor *entity.Debtor, channel string) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByDebtorID{DebtorID: debtor.Id},
		specification.ByChannel{Channel: channel},
		specification.ByStatus{Status: entity.SessionStatusActive},
	)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &entity.ChatSession{
		DebtorId:     debtor.Id,
		SessionToken: newSessionToken(),
		Channel:      channel,
		Language:     debtor.PreferredLanguage,
		Status:       entity.SessionStatusActive,
		Metadata:     map[string]interface{}{},
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("ChatService", "session created", map[string]interface{}{
		"session_id": session.Id.String(),
		"debtor_id":  debtor.Id.String(),
		"channel":    channel,
	})
	return session, nil
}

func (s *chatService) ProcessMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionToken{Token: req.SessionToken})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if entity.SessionTerminal(session.Status) {
		return nil, ErrSessionClosed
	}

	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: session.DebtorId})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}

	return s.runPipeline(ctx, session, debtor, req.Content, "", "")
}

func (s *chatService) ProcessInbound(ctx context.Context, in InboundEvent) (*OutboundPayload, error) {
	if !s.store.MarkDelivery(in.ExternalMessageId) {
		s.log.Debug("ChatService", "duplicate delivery skipped", map[string]interface{}{
			"external_message_id": in.ExternalMessageId,
		})
		return nil, nil
	}
	// A failure before the message is persisted must not burn the delivery
	// id, or the channel's retry would be skipped as a duplicate.
	processed := false
	defer func() {
		if !processed {
			s.store.ForgetDelivery(in.ExternalMessageId)
		}
	}()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByPhone{Phone: in.From})
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, ErrDebtorNotFound
	}

	session, err := s.resolveSession(ctx, uow, debtor, in.Channel)
	if err != nil {
		return nil, err
	}

	res, err := s.runPipeline(ctx, session, debtor, in.Text, in.ExternalMessageId, in.Channel)
	if err != nil {
		return nil, err
	}
	processed = true
	if res.Reply == nil {
		return nil, nil
	}
	return &OutboundPayload{
		MessageId:        res.Reply.Id,
		Content:          res.Reply.Content,
		SuggestedActions: res.Reply.SuggestedActions,
	}, nil
}

// AttachDeliveryId stores the channel's message id on an already persisted
// bot message so delivery-status callbacks can find it later.
func (s *chatService) AttachDeliveryId(ctx context.Context, messageId uuid.UUID, deliveryId string) error {
	if deliveryId == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msg, err := uow.ConversationMessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if msg == nil {
		return nil
	}
	if msg.Metadata == nil {
		msg.Metadata = map[string]interface{}{}
	}
	msg.Metadata["delivery_id"] = deliveryId
	return uow.ConversationMessageRepository().Update(ctx, msg)
}

// runPipeline is the single unit of work for one inbound message. The gate
// decision is taken before the session lock so the lock is never held
// across the compliance store reads; the lock then covers identify,
// generate, and the transactional append so a session's messages are
// processed strictly in order.
func (s *chatService) runPipeline(ctx context.Context, session *entity.ChatSession, debtor *entity.Debtor, text, deliveryId, source string) (*dto.SendMessageResponse, error) {
	decision := s.gate.Check(ctx, debtor.Id, session.Channel)

	unlock := s.store.LockSession(session.Id.String())
	defer unlock()

	detectedLang := s.identifier.Identify(text)
	detectedIntent := intent.Classify(text)
	entities := intent.ExtractEntities(text)

	if detectedIntent == intent.OptOut {
		return s.handleOptOut(ctx, session, debtor, text, detectedLang, deliveryId, source, entities)
	}

	userMsg := &entity.ConversationMessage{
		SessionId:   session.Id,
		SenderType:  entity.SenderUser,
		MessageType: entity.MessageTypeText,
		Content:     text,
		Language:    detectedLang,
		Metadata: entity.MessageMetadata{
			Intent:     string(detectedIntent),
			Entities:   entities.ToMap(),
			DeliveryId: deliveryId,
			Source:     source,
		}.ToMap(),
	}

	if !decision.Allowed {
		// The inbound message is still persisted; only the outbound reply
		// is suppressed.
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ConversationMessageRepository().Create(ctx, userMsg); err != nil {
			return nil, err
		}
		s.gate.RecordBlock(ctx, debtor.Id, decision)
		blockType := events.TypeComplianceQuotaHit
		switch {
		case strings.HasPrefix(decision.Reason, compliance.ReasonOutsideWindow):
			blockType = events.TypeComplianceTimeBlock
		case decision.Reason == compliance.ReasonOptedOut:
			blockType = events.TypeComplianceOptOutBlock
		}
		s.publish(ctx, events.NewComplianceEvent(blockType, debtor.Id.String(), session.Channel, decision.Reason))
		return &dto.SendMessageResponse{
			SessionId: session.Id,
			Sent:      messageToDTO(userMsg),
			Blocked:   true,
			Reason:    decision.Reason,
		}, nil
	}

	account, err := s.primaryAccount(ctx, debtor.Id)
	if err != nil {
		return nil, err
	}

	history, err := s.recentHistory(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	reply := s.generator.Generate(ctx, responder.Input{
		Message:  text,
		Subject:  subjectContext(debtor, account),
		History:  history,
		Language: session.Language,
	})

	botMsg := &entity.ConversationMessage{
		SessionId:   session.Id,
		SenderType:  entity.SenderBot,
		MessageType: entity.MessageTypeText,
		Content:     reply.Content,
		Language:    session.Language,
		Metadata: entity.MessageMetadata{
			Intent:           string(reply.Intent),
			Entities:         reply.Entities.ToMap(),
			Confidence:       reply.Confidence,
			SuggestedActions: reply.SuggestedActions,
			Backend:          reply.Backend,
		}.ToMap(),
	}

	if s.translator != nil && detectedLang != session.Language {
		if tr := s.translator.Translate(ctx, reply.Content, session.Language, detectedLang); tr.Confidence > 0 && tr.Text != reply.Content {
			botMsg.TranslatedContent = &tr.Text
		}
	}

	// One transaction for the exchange: a half-written pair must never
	// survive a storage failure.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, userMsg); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, botMsg); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewMessageProcessed(session.Id.String(), debtor.Id.String(), session.Channel, string(reply.Intent), reply.Backend))

	// A dispute ends the bot's involvement: the session moves to an agent
	// after the acknowledgement reply above.
	if detectedIntent == intent.Dispute {
		s.escalateDispute(ctx, session, debtor)
	}

	return &dto.SendMessageResponse{
		SessionId: session.Id,
		Sent:      messageToDTO(userMsg),
		Reply:     messageToDTO(botMsg),
	}, nil
}

func (s *chatService) escalateDispute(ctx context.Context, session *entity.ChatSession, debtor *entity.Debtor) {
	now := time.Now().UTC()
	session.Status = entity.SessionStatusTransferred
	session.EndedAt = &now
	if session.Metadata == nil {
		session.Metadata = map[string]interface{}{}
	}
	session.Metadata["end_reason"] = "dispute"

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		s.log.Error("ChatService", "dispute transfer failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return
	}

	if s.mail != nil && s.escalateTo != "" {
		if err := s.mail.SendEscalationNotice(s.escalateTo, debtor.Name, debtor.AccountNumber, "dispute raised in chat"); err != nil {
			s.log.Warn("ChatService", "escalation mail failed", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}
	s.publish(ctx, events.NewComplianceEvent(events.TypeSessionTransferred, debtor.Id.String(), session.Channel, "dispute"))
}

func (s *chatService) handleOptOut(ctx context.Context, session *entity.ChatSession, debtor *entity.Debtor, text string, detectedLang language.Tag, deliveryId, source string, entities intent.Entities) (*dto.SendMessageResponse, error) {
	userMsg := &entity.ConversationMessage{
		SessionId:   session.Id,
		SenderType:  entity.SenderUser,
		MessageType: entity.MessageTypeText,
		Content:     text,
		Language:    detectedLang,
		Metadata: entity.MessageMetadata{
			Intent:     string(intent.OptOut),
			Entities:   entities.ToMap(),
			DeliveryId: deliveryId,
			Source:     source,
		}.ToMap(),
	}

	confirmation := optOutConfirmation(session.Language)
	botMsg := &entity.ConversationMessage{
		SessionId:   session.Id,
		SenderType:  entity.SenderBot,
		MessageType: entity.MessageTypeText,
		Content:     confirmation,
		Language:    session.Language,
		Metadata: entity.MessageMetadata{
			Intent:     string(intent.OptOut),
			Confidence: responder.ConfidenceFallback,
			Backend:    "fallback",
		}.ToMap(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, userMsg); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, botMsg); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Closes every active session of the debtor, this one included.
	if err := s.gate.RecordOptOut(ctx, debtor.Id, fmt.Sprintf("opt-out via %s", session.Channel), map[string]interface{}{
		"session_id": session.Id.String(),
		"text":       text,
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewComplianceEvent(events.TypeComplianceOptOut, debtor.Id.String(), session.Channel, "debtor opted out"))

	return &dto.SendMessageResponse{
		SessionId: session.Id,
		Sent:      messageToDTO(userMsg),
		Reply:     messageToDTO(botMsg),
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionToken string, limit int) (*dto.ChatHistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionToken{Token: sessionToken})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	msgs, err := uow.ConversationMessageRepository().Recent(ctx, session.Id, limit)
	if err != nil {
		return nil, err
	}

	out := &dto.ChatHistoryResponse{SessionId: session.Id, Messages: make([]dto.MessageResponse, 0, len(msgs))}
	for _, m := range msgs {
		out.Messages = append(out.Messages, *messageToDTO(m))
	}
	return out, nil
}

// NegotiateLanguage is the only path that changes a session's language; it
// is never switched silently per message.
func (s *chatService) NegotiateLanguage(ctx context.Context, sessionToken string, req *dto.NegotiateLanguageRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionToken{Token: sessionToken})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if entity.SessionTerminal(session.Status) {
		return nil, ErrSessionClosed
	}

	session.Language = language.Tag(req.Language)
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

func (s *chatService) CloseSession(ctx context.Context, sessionToken string, reason string) error {
	return s.endSession(ctx, sessionToken, entity.SessionStatusClosed, reason)
}

func (s *chatService) TransferSession(ctx context.Context, sessionToken string, reason string) error {
	if err := s.endSession(ctx, sessionToken, entity.SessionStatusTransferred, reason); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionToken{Token: sessionToken})
	if err != nil || session == nil {
		return err
	}
	debtor, err := uow.DebtorRepository().FindOne(ctx, specification.ByID{ID: session.DebtorId})
	if err != nil || debtor == nil {
		return err
	}

	if s.mail != nil && s.escalateTo != "" {
		if err := s.mail.SendEscalationNotice(s.escalateTo, debtor.Name, debtor.AccountNumber, reason); err != nil {
			s.log.Warn("ChatService", "escalation mail failed", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}
	s.publish(ctx, events.NewComplianceEvent(events.TypeSessionTransferred, debtor.Id.String(), session.Channel, reason))
	return nil
}

func (s *chatService) endSession(ctx context.Context, sessionToken, status, reason string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionToken{Token: sessionToken})
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if entity.SessionTerminal(session.Status) {
		return ErrSessionClosed
	}

	now := time.Now().UTC()
	session.Status = status
	session.EndedAt = &now
	if reason != "" {
		if session.Metadata == nil {
			session.Metadata = map[string]interface{}{}
		}
		session.Metadata["end_reason"] = reason
	}
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *chatService) primaryAccount(ctx context.Context, debtorId uuid.UUID) (*entity.DebtAccount, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	accounts, err := uow.DebtAccountRepository().FindAll(ctx,
		specification.ByDebtorID{DebtorID: debtorId},
		specification.OrderBy{Field: "due_date"},
	)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Status == entity.DebtStatusActive || a.Status == entity.DebtStatusOverdue {
			return a, nil
		}
	}
	if len(accounts) > 0 {
		return accounts[0], nil
	}
	return nil, nil
}

func (s *chatService) recentHistory(ctx context.Context, sessionId uuid.UUID) ([]responder.HistoryEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msgs, err := uow.ConversationMessageRepository().Recent(ctx, sessionId, 10)
	if err != nil {
		return nil, err
	}
	history := make([]responder.HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, responder.HistoryEntry{Sender: m.SenderType, Content: m.Content})
	}
	return history, nil
}

func (s *chatService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("ChatService", "event publish failed", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func subjectContext(debtor *entity.Debtor, account *entity.DebtAccount) responder.SubjectContext {
	sc := responder.SubjectContext{
		Name:          debtor.Name,
		AccountNumber: debtor.AccountNumber,
	}
	if account != nil {
		sc.AccountNumber = account.AccountNumber
		sc.Outstanding = account.OutstandingAmount
		sc.DueDate = account.DueDate.Format("02 Jan 2006")
		sc.Status = account.Status
	}
	return sc
}

func optOutConfirmation(tag language.Tag) string {
	switch tag {
	case language.TagHindi, language.TagMarathi:
		return "आपका अनुरोध दर्ज कर लिया गया है। अब आपको हमारी ओर से कोई संदेश नहीं भेजा जाएगा।"
	case language.TagHinglish:
		return "Aapka request record ho gaya hai. Ab aapko hamari taraf se koi message nahi bheja jayega."
	default:
		return "Your request has been recorded. You will not receive any further messages from us."
	}
}

func sessionToDTO(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:           s.Id,
		SessionToken: s.SessionToken,
		Channel:      s.Channel,
		Language:     string(s.Language),
		Status:       s.Status,
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}

func messageToDTO(m *entity.ConversationMessage) *dto.MessageResponse {
	out := &dto.MessageResponse{
		Id:         m.Id,
		SenderType: m.SenderType,
		Content:    m.Content,
		Language:   string(m.Language),
		SentAt:     m.SentAt,
	}
	if m.Metadata != nil {
		if v, ok := m.Metadata["intent"].(string); ok {
			out.Intent = v
		}
		if v, ok := m.Metadata["confidence"].(float64); ok {
			out.Confidence = v
		}
		if v, ok := m.Metadata["entities"].(map[string]interface{}); ok {
			out.Entities = v
		}
		// Fresh messages carry []string; rows loaded back from JSONB come
		// out as []interface{}.
		switch v := m.Metadata["suggested_actions"].(type) {
		case []string:
			out.SuggestedActions = v
		case []interface{}:
			for _, a := range v {
				if s, ok := a.(string); ok {
					out.SuggestedActions = append(out.SuggestedActions, s)
				}
			}
		}
	}
	return out
}
