package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusAudit is the document-store record of one committed status event.
type OrderStatusAudit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	CompanyID     string             `bson:"company_id" json:"company_id"`
	EventType     string             `bson:"event_type" json:"event_type"`
	OldStatus     string             `bson:"old_status" json:"old_status"`
	NewStatus     string             `bson:"new_status" json:"new_status"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"`
	Reason        string             `bson:"reason,omitempty" json:"reason,omitempty"`
	UserID        string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	DelivererID   string             `bson:"deliverer_id,omitempty" json:"deliverer_id,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}
