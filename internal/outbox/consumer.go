package outbox

import (
	"context"

	amqp "github.com/streadway/amqp"
)

// DeliveryHandler adapts a Handler to broker deliveries published by
// BrokerPublisher. ctx bounds every handled event.
func DeliveryHandler(ctx context.Context, h Handler) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		event, err := Decode(msg.Body)
		if err != nil {
			return err
		}
		return h.Handle(ctx, event)
	}
}
