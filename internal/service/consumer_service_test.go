package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-debtchat-be/internal/dto"
	"ai-debtchat-be/internal/entity"
)

func newConsumerFixture(t *testing.T) (*memStore, *gochannel.GoChannel) {
	t.Helper()

	store := &memStore{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ctx, cancel := context.WithCancel(context.Background())

	cs := NewConsumerService(pubSub, DeliveryStatusTopic, &memFactory{store: store}, nopLogger{})
	require.NoError(t, cs.Consume(ctx))

	t.Cleanup(func() {
		cancel()
		pubSub.Close()
	})
	return store, pubSub
}

func publishStatusUpdate(t *testing.T, pubSub *gochannel.GoChannel, update dto.DeliveryStatusUpdate) {
	t.Helper()
	payload, err := json.Marshal(update)
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(DeliveryStatusTopic, message.NewMessage(watermill.NewUUID(), payload)))
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestConsumerStampsDeliveredAt(t *testing.T) {
	store, pubSub := newConsumerFixture(t)

	msg := &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  uuid.New(),
		SenderType: entity.SenderBot,
		Content:    "reply",
		Metadata:   map[string]interface{}{"delivery_id": "wamid.10"},
	}
	store.messages = append(store.messages, msg)

	publishStatusUpdate(t, pubSub, dto.DeliveryStatusUpdate{
		ExternalMessageId: "wamid.10",
		Status:            "delivered",
		Timestamp:         time.Now().Unix(),
	})

	assert.True(t, waitFor(t, func() bool { return msg.DeliveredAt != nil }))
	assert.Nil(t, msg.ReadAt)
}

func TestConsumerReadStampsBothTimestamps(t *testing.T) {
	store, pubSub := newConsumerFixture(t)

	msg := &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  uuid.New(),
		SenderType: entity.SenderBot,
		Content:    "reply",
		Metadata:   map[string]interface{}{"delivery_id": "wamid.11"},
	}
	store.messages = append(store.messages, msg)

	publishStatusUpdate(t, pubSub, dto.DeliveryStatusUpdate{
		ExternalMessageId: "wamid.11",
		Status:            "read",
	})

	assert.True(t, waitFor(t, func() bool { return msg.ReadAt != nil }))
	assert.NotNil(t, msg.DeliveredAt)
}

func TestConsumerIgnoresUnknownDeliveryId(t *testing.T) {
	store, pubSub := newConsumerFixture(t)

	msg := &entity.ConversationMessage{
		Id:         uuid.New(),
		SessionId:  uuid.New(),
		SenderType: entity.SenderBot,
		Content:    "reply",
		Metadata:   map[string]interface{}{"delivery_id": "wamid.12"},
	}
	store.messages = append(store.messages, msg)

	publishStatusUpdate(t, pubSub, dto.DeliveryStatusUpdate{
		ExternalMessageId: "wamid.does-not-exist",
		Status:            "delivered",
	})

	// The unmatched update must be swallowed without touching stored rows.
	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, msg.DeliveredAt)
}
