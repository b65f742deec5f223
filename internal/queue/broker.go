package queue

import "context"

// Broker moves opaque messages between processes by queue name.
type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	// Subscribe starts delivering messages to handler until ctx is done.
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueOrderStatus    = "order-status"
	QueueOrderStatusDLQ = "order-status-dlq"
)

// Queues is every queue declared on connect.
var Queues = []string{QueueOrderStatus, QueueOrderStatusDLQ}

func deadLetter(queueName string) string {
	return queueName + "-dlq"
}
