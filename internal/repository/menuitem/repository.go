package menuitem

import (
	"context"

	"food-delivery/internal/domain"
)

type Repository interface {
	// ListByCompany returns every item, or only available ones when onlyAvailable is set.
	ListByCompany(ctx context.Context, companyID string, onlyAvailable bool) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, companyID, id string) error
	SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.MenuItem, error)
}
