package mapper

import (
	"gorm.io/datatypes"

	"ai-debtchat-be/internal/entity"
	"ai-debtchat-be/internal/model"
	"ai-debtchat-be/pkg/language"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:           s.Id,
		DebtorId:     s.DebtorId,
		SessionToken: s.SessionToken,
		Channel:      s.Channel,
		Language:     language.Tag(s.Language),
		Status:       s.Status,
		Metadata:     map[string]interface{}(s.Metadata),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:           s.Id,
		DebtorId:     s.DebtorId,
		SessionToken: s.SessionToken,
		Channel:      s.Channel,
		Language:     string(s.Language),
		Status:       s.Status,
		Metadata:     datatypes.JSONMap(s.Metadata),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	if msg == nil {
		return nil
	}

	return &entity.ConversationMessage{
		Id:                msg.Id,
		SessionId:         msg.SessionId,
		SenderType:        msg.SenderType,
		MessageType:       msg.MessageType,
		Content:           msg.Content,
		Language:          language.Tag(msg.Language),
		TranslatedContent: msg.TranslatedContent,
		Metadata:          map[string]interface{}(msg.Metadata),
		SentAt:            msg.SentAt,
		DeliveredAt:       msg.DeliveredAt,
		ReadAt:            msg.ReadAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	if msg == nil {
		return nil
	}

	return &model.ConversationMessage{
		Id:                msg.Id,
		SessionId:         msg.SessionId,
		SenderType:        msg.SenderType,
		MessageType:       msg.MessageType,
		Content:           msg.Content,
		Language:          string(msg.Language),
		TranslatedContent: msg.TranslatedContent,
		Metadata:          datatypes.JSONMap(msg.Metadata),
		SentAt:            msg.SentAt,
		DeliveredAt:       msg.DeliveredAt,
		ReadAt:            msg.ReadAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []model.ConversationMessage) []entity.ConversationMessage {
	out := make([]entity.ConversationMessage, 0, len(msgs))
	for i := range msgs {
		out = append(out, *m.MessageToEntity(&msgs[i]))
	}
	return out
}
