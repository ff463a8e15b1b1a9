package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/internal/repository/specification"
	"ai-debtchat-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService applies asynchronous delivery-status callbacks to the
// stored messages they refer to.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var update dto.DeliveryStatusUpdate
	if err := json.Unmarshal(msg.Payload, &update); err != nil {
		cs.log.Warn("ConsumerService", "invalid status payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.ConversationMessageRepository().FindOne(ctx, specification.ByDeliveryID{DeliveryID: update.ExternalMessageId})
	if err != nil {
		cs.log.Error("ConsumerService", "status lookup failed", map[string]interface{}{
			"external_message_id": update.ExternalMessageId,
			"error":               err.Error(),
		})
		msg.Nack()
		return
	}
	if stored == nil {
		// Unmatched ids are ignored, the channel also reports statuses for
		// messages we never stored (templates, campaign blasts).
		msg.Ack()
		return
	}

	at := time.Now().UTC()
	if update.Timestamp > 0 {
		at = time.Unix(update.Timestamp, 0).UTC()
	}

	changed := false
	switch update.Status {
	case "delivered":
		if stored.DeliveredAt == nil {
			stored.DeliveredAt = &at
			changed = true
		}
	case "read":
		if stored.DeliveredAt == nil {
			stored.DeliveredAt = &at
			changed = true
		}
		if stored.ReadAt == nil {
			stored.ReadAt = &at
			changed = true
		}
	case "failed":
		cs.log.Warn("ConsumerService", "delivery failed", map[string]interface{}{
			"message_id":          stored.Id.String(),
			"external_message_id": update.ExternalMessageId,
		})
	}

	if changed {
		if err := uow.ConversationMessageRepository().Update(ctx, stored); err != nil {
			cs.log.Error("ConsumerService", "status update failed", map[string]interface{}{
				"message_id": stored.Id.String(),
				"error":      err.Error(),
			})
			msg.Nack()
			return
		}
	}
	msg.Ack()
}
