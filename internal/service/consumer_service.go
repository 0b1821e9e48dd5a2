package service

import (
	"context"
	"encoding/json"
	"log"

	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/websocket"
	"research-assistant-be/pkg/events"
	pkgNats "research-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService moves events from the in-process bus onto the durable
// NATS stream. When NATS is unavailable the event goes straight to the
// local websocket hub so single-instance deployments still deliver.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	hub           *websocket.Hub
	natsPublisher *pkgNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	natsPublisher *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		hub:           hub,
		natsPublisher: natsPublisher,
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
	var envelope dto.EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Dispatching event %s", envelope.Type)

	if cs.natsPublisher != nil {
		evt := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}
		if err := cs.natsPublisher.Publish(ctx, evt); err == nil {
			msg.Ack()
			return
		} else {
			log.Printf("[WARN] NATS publish failed for event %s, delivering locally: %v", envelope.Type, err)
		}
	}

	if cs.hub != nil {
		cs.hub.Broadcast(envelope.Type, envelope.Data)
	}

	msg.Ack()
}
