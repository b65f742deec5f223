package category

import (
	"context"
	"strings"

	"food-delivery/internal/domain"
	"food-delivery/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

// List is ordered by display order, then name.
func (s *Service) List(ctx context.Context, companyID string) ([]domain.Category, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *Service) Upsert(ctx context.Context, companyID string, c domain.Category) (*domain.Category, error) {
	c.CompanyID = companyID
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domain.Invalid("name", "nome da categoria é obrigatório")
	}
	if c.DisplayOrder < 0 {
		return nil, domain.Invalid("order", "ordem não pode ser negativa")
	}
	return s.repo.Upsert(ctx, c)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}
