package queue

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("queue: broker closed")

// MemoryBroker is an in-process Broker. Messages published before a
// subscriber exists are buffered per queue. Failed messages are dropped.
type MemoryBroker struct {
	mu       sync.Mutex
	closed   bool
	pending  map[string][][]byte
	handlers map[string]memorySub
}

type memorySub struct {
	ctx     context.Context
	handler MessageHandler
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		pending:  make(map[string][][]byte),
		handlers: make(map[string]memorySub),
	}
}

// Publish delivers synchronously when a subscriber is registered.
func (b *MemoryBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	sub, ok := b.handlers[queueName]
	if !ok || sub.ctx.Err() != nil {
		b.pending[queueName] = append(b.pending[queueName], append([]byte(nil), message...))
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()
	_ = sub.handler(sub.ctx, message)
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.handlers[queueName] = memorySub{ctx: ctx, handler: handler}
	backlog := b.pending[queueName]
	delete(b.pending, queueName)
	b.mu.Unlock()

	for _, msg := range backlog {
		_ = handler(ctx, msg)
	}
	return nil
}

// Pending reports how many messages wait for a subscriber on queueName.
func (b *MemoryBroker) Pending(queueName string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending[queueName])
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
