// Package notify fans committed order events out to side channels. Delivery
// is best-effort: notifiers run off the request path, failures are logged
// and never retried.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"food-delivery/internal/domain"
)

// Hook is called once an order write has committed.
type Hook interface {
	OrderStatusCommitted(ctx context.Context, ev domain.OrderStatusEvent)
}

// Notifier delivers one event to one channel.
type Notifier interface {
	Notify(ctx context.Context, ev domain.OrderStatusEvent) error
}

type NotifierFunc func(ctx context.Context, ev domain.OrderStatusEvent) error

func (f NotifierFunc) Notify(ctx context.Context, ev domain.OrderStatusEvent) error {
	return f(ctx, ev)
}

// Dispatcher is a Hook that runs every notifier in its own goroutine.
type Dispatcher struct {
	notifiers map[string]Notifier
	timeout   time.Duration
	logger    *zap.SugaredLogger
	wg        sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, logger *zap.SugaredLogger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{notifiers: make(map[string]Notifier), timeout: timeout, logger: logger}
}

// Register adds a named notifier. It is not safe to call once events flow.
func (d *Dispatcher) Register(name string, n Notifier) {
	d.notifiers[name] = n
}

func (d *Dispatcher) OrderStatusCommitted(ctx context.Context, ev domain.OrderStatusEvent) {
	// the request context ends with the response; keep its values only
	base := context.WithoutCancel(ctx)
	for name, n := range d.notifiers {
		d.wg.Add(1)
		go func(name string, n Notifier) {
			defer d.wg.Done()
			ctx, cancel := context.WithTimeout(base, d.timeout)
			defer cancel()
			if err := n.Notify(ctx, ev); err != nil {
				d.logger.Errorw("notify: delivery failed",
					"notifier", name,
					"order_id", ev.Order.ID,
					"event_type", ev.EventType,
					"error", err,
				)
			}
		}(name, n)
	}
}

// Wait blocks until every in-flight notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
