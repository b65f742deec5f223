package category

import (
	"context"

	"food-delivery/internal/domain"
)

type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]domain.Category, error)
	// Upsert inserts c when ID is empty, otherwise updates it in place.
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, companyID, id string) error
}
