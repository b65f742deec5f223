package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RabbitMQBroker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     Config
	logger  *zap.SugaredLogger
	mu      sync.RWMutex
}

type Config struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func NewRabbitMQBroker(cfg Config, logger *zap.SugaredLogger) (*RabbitMQBroker, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	b := &RabbitMQBroker{conn: conn, channel: channel, cfg: cfg, logger: logger}
	for _, name := range Queues {
		if err := b.declareQueue(name); err != nil {
			b.Close()
			return nil, err
		}
	}
	logger.Infow("queue: connected", "queues", Queues)
	return b, nil
}

func (b *RabbitMQBroker) declareQueue(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	// durable, not auto-deleted, not exclusive
	if _, err := b.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

func (b *RabbitMQBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	return b.publish(ctx, queueName, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         message,
		Timestamp:    time.Now(),
	})
}

func (b *RabbitMQBroker) publish(ctx context.Context, queueName string, msg amqp.Publishing) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.channel.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", queueName, err)
	}
	return nil
}

func (b *RabbitMQBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.RLock()
	msgs, err := b.channel.Consume(queueName, "", false, false, false, false, nil)
	b.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("consume %s: %w", queueName, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				b.handle(ctx, queueName, msg, handler)
			}
		}
	}()
	return nil
}

// handle acks every delivery. A failed message is republished with an
// incremented x-retry-count after a linear delay, and moved to the
// dead-letter queue once MaxRetries is reached.
func (b *RabbitMQBroker) handle(ctx context.Context, queueName string, msg amqp.Delivery, handler MessageHandler) {
	defer msg.Ack(false)

	err := handler(ctx, msg.Body)
	if err == nil {
		return
	}

	retries := 0
	if n, ok := msg.Headers["x-retry-count"].(int32); ok {
		retries = int(n)
	}
	if retries < b.cfg.MaxRetries {
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(retries+1) * b.cfg.RetryDelay):
		}
		if perr := b.publish(ctx, queueName, amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  msg.ContentType,
			Body:         msg.Body,
			Headers:      amqp.Table{"x-retry-count": int32(retries + 1)},
			Timestamp:    time.Now(),
		}); perr != nil {
			b.logger.Errorw("queue: requeue failed", "queue", queueName, "error", perr)
		}
		return
	}

	if perr := b.publish(ctx, deadLetter(queueName), amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		Headers: amqp.Table{
			"x-original-queue": queueName,
			"x-retry-count":    int32(retries),
			"x-error":          err.Error(),
		},
		Timestamp: time.Now(),
	}); perr != nil {
		b.logger.Errorw("queue: dead-letter failed", "queue", queueName, "error", perr)
	}
}

func (b *RabbitMQBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
