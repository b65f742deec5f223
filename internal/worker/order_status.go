// Package worker consumes committed order events off the queue.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"food-delivery/internal/domain"
	"food-delivery/internal/queue"
)

type AuditStore interface {
	Create(ctx context.Context, audit *domain.OrderStatusAudit) error
}

type Notifier interface {
	Notify(ctx context.Context, ev domain.OrderStatusEvent) error
}

// OrderStatusWorker records every event in the audit store and then posts
// it to the webhook.
type OrderStatusWorker struct {
	broker  queue.Broker
	audits  AuditStore
	webhook Notifier
	logger  *zap.SugaredLogger
}

// NewOrderStatusWorker accepts a nil audits or webhook to skip that step.
func NewOrderStatusWorker(broker queue.Broker, audits AuditStore, webhook Notifier, logger *zap.SugaredLogger) *OrderStatusWorker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &OrderStatusWorker{broker: broker, audits: audits, webhook: webhook, logger: logger}
}

// Start subscribes and returns; delivery stops when ctx is done.
func (w *OrderStatusWorker) Start(ctx context.Context) error {
	w.logger.Infow("worker: starting", "queue", queue.QueueOrderStatus)
	return w.broker.Subscribe(ctx, queue.QueueOrderStatus, w.handleMessage)
}

// handleMessage only fails when the audit write fails, so the broker
// retries before the webhook has been attempted. Undecodable messages are
// dropped.
func (w *OrderStatusWorker) handleMessage(ctx context.Context, message []byte) error {
	var ev domain.OrderStatusEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		w.logger.Errorw("worker: drop undecodable event", "error", err)
		return nil
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	w.logger.Infow("worker: processing event",
		"order_id", ev.Order.ID,
		"event_type", ev.EventType,
		"new_status", ev.NewStatus,
	)

	if w.audits != nil {
		if err := w.audits.Create(ctx, AuditFromEvent(ev)); err != nil {
			w.logger.Errorw("worker: audit write failed", "order_id", ev.Order.ID, "error", err)
			return err
		}
	}
	if w.webhook != nil {
		if err := w.webhook.Notify(ctx, ev); err != nil {
			w.logger.Errorw("worker: webhook failed", "order_id", ev.Order.ID, "error", err)
		}
	}
	return nil
}

func AuditFromEvent(ev domain.OrderStatusEvent) *domain.OrderStatusAudit {
	a := &domain.OrderStatusAudit{
		OrderID:       ev.Order.ID,
		CompanyID:     ev.Order.CompanyID,
		EventType:     ev.EventType,
		OldStatus:     string(ev.OldStatus),
		NewStatus:     string(ev.NewStatus),
		PaymentStatus: string(ev.Payment),
		Reason:        ev.Reason,
		UserID:        ev.UserID,
		Timestamp:     ev.Timestamp,
	}
	if ev.Order.DelivererID != nil {
		a.DelivererID = *ev.Order.DelivererID
	}
	return a
}
