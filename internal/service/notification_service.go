package service

import (
	"context"
	"strings"

	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/websocket"
	"research-assistant-be/pkg/events"
	pkgNats "research-assistant-be/pkg/nats"
)

const notificationDurableName = "research-assistant-events"

// NotificationService drains the durable NATS event stream and pushes
// each event to connected websocket clients.
type NotificationService struct {
	subscriber *pkgNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber *pkgNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// Start subscribes to all event subjects. Blocks only on setup, the
// consumption itself runs on NATS callbacks.
func (ns *NotificationService) Start() {
	err := ns.subscriber.Subscribe("events.>", notificationDurableName, func(ctx context.Context, event events.Event) error {
		eventType := strings.TrimPrefix(event.EventType(), "events.")
		ns.logger.Info("NotificationService", "Delivering event", map[string]interface{}{"type": eventType})
		ns.hub.Broadcast(eventType, event.Payload())
		return nil
	})
	if err != nil {
		ns.logger.Error("NotificationService", "Failed to subscribe to event stream", map[string]interface{}{"error": err.Error()})
	}
}
