package company

import (
	"context"

	"food-delivery/internal/domain"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	// CreateWithAdmin inserts the company and its first admin user atomically.
	CreateWithAdmin(ctx context.Context, c domain.Company, admin domain.User) (*domain.Company, *domain.User, error)
}
