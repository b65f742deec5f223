package variation

import (
	"context"

	"food-delivery/internal/domain"
)

type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]domain.Variation, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Variation, error)
	Create(ctx context.Context, v domain.Variation) (*domain.Variation, error)
	Update(ctx context.Context, v domain.Variation) (*domain.Variation, error)
	Delete(ctx context.Context, companyID, id string) error
	SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.Variation, error)
}
