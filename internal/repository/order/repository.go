package order

import (
	"context"
	"time"

	"food-delivery/internal/domain"
)

// ListFilter narrows List. Zero fields are ignored. From and To bound
// created_at inclusively.
type ListFilter struct {
	From          *time.Time
	To            *time.Time
	Statuses      []domain.OrderStatus
	PaymentMethod domain.PaymentMethod
	PaymentStatus domain.PaymentStatus
	DelivererID   string
	Limit         int
}

// StatusUpdate is the set of columns a status change writes. When
// ExpectedUpdatedAt is set the write only succeeds if the row was not
// modified since.
type StatusUpdate struct {
	Status             domain.OrderStatus
	PaymentStatus      domain.PaymentStatus
	DelivererID        *string
	CancellationReason string
	DeliveredAt        *time.Time
	ExpectedUpdatedAt  *time.Time
}

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Order, error)
	List(ctx context.Context, companyID string, f ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, companyID, id string, u StatusUpdate) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, companyID, id string, status domain.PaymentStatus) (*domain.Order, error)
}
