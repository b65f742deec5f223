package user

import (
	"context"

	"food-delivery/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, companyID, email string) (*domain.User, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.User, error)
	ListByRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error)
	// UpdateProfile rewrites name, email, phone, plate and cpf.
	UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error)
	SetDelivererStatus(ctx context.Context, companyID, id string, status domain.DelivererStatus) (*domain.User, error)
	UpdatePassword(ctx context.Context, companyID, id, passwordHash string) error
}
