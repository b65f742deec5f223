package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"food-delivery/internal/domain"
	menuitemrepo "food-delivery/internal/repository/menuitem"
)

type Service struct {
	repo       menuitemrepo.Repository
	categories categoryLister
	variations variationCatalog
}

type categoryLister interface {
	List(ctx context.Context, companyID string) ([]domain.Category, error)
}

type variationCatalog interface {
	Available(ctx context.Context, companyID string) []domain.Variation
}

func New(repo menuitemrepo.Repository, categories categoryLister, variations variationCatalog) *Service {
	return &Service{repo: repo, categories: categories, variations: variations}
}

// Menu is the public storefront view.
type Menu struct {
	Categories []domain.Category  `json:"categories"`
	Items      []domain.MenuItem  `json:"items"`
	Variations []domain.Variation `json:"variations"`
}

// Menu loads categories and available items concurrently. Variations come
// from the soft-failing catalog and may be empty.
func (s *Service) Menu(ctx context.Context, companyID string) (*Menu, error) {
	var m Menu
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.categories.List(gctx, companyID)
		m.Categories = cats
		return err
	})
	g.Go(func() error {
		items, err := s.repo.ListByCompany(gctx, companyID, true)
		m.Items = items
		return err
	})
	g.Go(func() error {
		m.Variations = s.variations.Available(gctx, companyID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if m.Categories == nil {
		m.Categories = []domain.Category{}
	}
	if m.Items == nil {
		m.Items = []domain.MenuItem{}
	}
	return &m, nil
}

func (s *Service) List(ctx context.Context, companyID string) ([]domain.MenuItem, error) {
	return s.repo.ListByCompany(ctx, companyID, false)
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*domain.MenuItem, error) {
	return s.repo.GetByID(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID string, m domain.MenuItem) (*domain.MenuItem, error) {
	m.CompanyID = companyID
	if err := Validate(&m); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Update(ctx context.Context, companyID, id string, m domain.MenuItem) (*domain.MenuItem, error) {
	m.CompanyID = companyID
	m.ID = id
	if err := Validate(&m); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *Service) SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.MenuItem, error) {
	return s.repo.SetAvailable(ctx, companyID, id, available)
}

// Validate normalizes m and checks its price and variation groups. Groups
// without an id get one.
func Validate(m *domain.MenuItem) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Invalid("name", "nome do item é obrigatório")
	}
	if m.Price.IsNegative() {
		return domain.Invalid("price", "preço não pode ser negativo")
	}
	m.CategoryID = strings.TrimSpace(m.CategoryID)

	seen := make(map[string]bool, len(m.VariationGroups))
	for i := range m.VariationGroups {
		g := &m.VariationGroups[i]
		g.Name = strings.TrimSpace(g.Name)
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		field := fmt.Sprintf("variationGroups[%d]", i)
		switch {
		case g.Name == "":
			return domain.Invalid(field+".name", "nome do grupo é obrigatório")
		case seen[g.ID]:
			return domain.Invalid(field+".id", "grupo duplicado")
		case g.MinRequired < 0:
			return domain.Invalid(field+".minRequired", "mínimo não pode ser negativo")
		case g.MaxAllowed < g.MinRequired:
			return domain.Invalid(field+".maxAllowed", "máximo deve ser maior ou igual ao mínimo")
		case len(g.VariationIDs) == 0:
			return domain.Invalid(field+".variations", "grupo precisa de ao menos uma variação")
		}
		seen[g.ID] = true
	}
	return nil
}
