// Package variation serves the variation catalog. Catalog reads are soft:
// a storage failure is logged and yields an empty catalog so menu and cart
// flows keep working without add-on details.
package variation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"food-delivery/internal/domain"
	variationrepo "food-delivery/internal/repository/variation"
)

type Service struct {
	repo   variationrepo.Repository
	logger *zap.SugaredLogger
}

func New(repo variationrepo.Repository, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{repo: repo, logger: logger}
}

// Variations returns every variation of the company. It never fails.
func (s *Service) Variations(ctx context.Context, companyID string) []domain.Variation {
	list, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Errorw("variation catalog: load failed", "company_id", companyID, "error", err)
		return []domain.Variation{}
	}
	if list == nil {
		return []domain.Variation{}
	}
	return list
}

// Available filters Variations down to the ones currently offered.
func (s *Service) Available(ctx context.Context, companyID string) []domain.Variation {
	all := s.Variations(ctx, companyID)
	out := make([]domain.Variation, 0, len(all))
	for _, v := range all {
		if v.Available {
			out = append(out, v)
		}
	}
	return out
}

// Lookup indexes Variations by id.
func (s *Service) Lookup(ctx context.Context, companyID string) map[string]domain.Variation {
	all := s.Variations(ctx, companyID)
	out := make(map[string]domain.Variation, len(all))
	for _, v := range all {
		out[v.ID] = v
	}
	return out
}

// List is the admin listing; unlike Variations it reports storage errors.
func (s *Service) List(ctx context.Context, companyID string) ([]domain.Variation, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *Service) Create(ctx context.Context, companyID string, v domain.Variation) (*domain.Variation, error) {
	v.CompanyID = companyID
	if err := validate(&v); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) Update(ctx context.Context, companyID, id string, v domain.Variation) (*domain.Variation, error) {
	v.CompanyID = companyID
	v.ID = id
	if err := validate(&v); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *Service) SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.Variation, error) {
	return s.repo.SetAvailable(ctx, companyID, id, available)
}

func validate(v *domain.Variation) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return domain.Invalid("name", "nome da variação é obrigatório")
	}
	if v.AdditionalPrice.IsNegative() {
		return domain.Invalid("additionalPrice", "preço adicional não pode ser negativo")
	}
	return nil
}
