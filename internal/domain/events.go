package domain

import "time"

const (
	EventOrderCreated              = "order.created"
	EventOrderStatusChanged        = "order.status_changed"
	EventOrderPaymentStatusChanged = "order.payment_status_changed"
)

// OrderStatusEvent is emitted after an order write commits.
type OrderStatusEvent struct {
	EventType string        `json:"event_type"`
	Order     Order         `json:"order"`
	OldStatus OrderStatus   `json:"old_status,omitempty"`
	NewStatus OrderStatus   `json:"new_status"`
	Payment   PaymentStatus `json:"payment_status"`
	Reason    string        `json:"reason,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
