package coupon

import (
	"context"

	"food-delivery/internal/domain"
)

type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]domain.Coupon, error)
	// GetActiveByCode matches the already upper-cased code among active coupons.
	GetActiveByCode(ctx context.Context, companyID, code string) (*domain.Coupon, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Coupon, error)
	Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	Delete(ctx context.Context, companyID, id string) error
	SetActive(ctx context.Context, companyID, id string, active bool) (*domain.Coupon, error)
}
