package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"food-delivery/internal/domain"
	"food-delivery/internal/queue"
)

// Publisher forwards events to the order status queue for the worker.
type Publisher struct {
	broker queue.Broker
}

func NewPublisher(b queue.Broker) *Publisher {
	return &Publisher{broker: b}
}

func (p *Publisher) Notify(ctx context.Context, ev domain.OrderStatusEvent) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.broker.Publish(ctx, queue.QueueOrderStatus, msg)
}
