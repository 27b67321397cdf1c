package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"toyblox/internal/models"
)

// Publisher hands an outbox event to whatever delivers it.
type Publisher interface {
	Publish(ctx context.Context, event models.OutboxEvent) error
}

// Handler processes a relayed event.
type Handler interface {
	Handle(ctx context.Context, event models.OutboxEvent) error
}

// InlinePublisher delivers events to a Handler in the relay's goroutine.
// It is used when no broker is configured.
type InlinePublisher struct {
	Handler Handler
}

func (p InlinePublisher) Publish(ctx context.Context, event models.OutboxEvent) error {
	return p.Handler.Handle(ctx, event)
}

// BrokerClient is the subset of the RabbitMQ client the relay needs.
type BrokerClient interface {
	Publish(ctx context.Context, messageID, eventType string, body []byte) error
}

// BrokerPublisher sends events to the notification queue as JSON.
type BrokerPublisher struct {
	Client BrokerClient
}

func (p BrokerPublisher) Publish(ctx context.Context, event models.OutboxEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox event %s: %w", event.ID, err)
	}
	return p.Client.Publish(ctx, event.ID, event.EventType, body)
}

// Decode reads an event published by BrokerPublisher.
func Decode(body []byte) (models.OutboxEvent, error) {
	var event models.OutboxEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode outbox event: %w", err)
	}
	return event, nil
}
