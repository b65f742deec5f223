package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
)

type stubRepo struct {
	items         []domain.MenuItem
	onlyAvailable bool
	err           error
}

func (s *stubRepo) ListByCompany(_ context.Context, _ string, onlyAvailable bool) ([]domain.MenuItem, error) {
	s.onlyAvailable = onlyAvailable
	return s.items, s.err
}

func (s *stubRepo) GetByID(context.Context, string, string) (*domain.MenuItem, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	return &m, nil
}

func (s *stubRepo) Update(_ context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	return &m, nil
}

func (s *stubRepo) Delete(context.Context, string, string) error {
	return nil
}

func (s *stubRepo) SetAvailable(context.Context, string, string, bool) (*domain.MenuItem, error) {
	return nil, nil
}

type stubCategories struct{ err error }

func (s stubCategories) List(context.Context, string) ([]domain.Category, error) {
	return []domain.Category{{ID: "lanches", Name: "Lanches"}}, s.err
}

type stubVariations struct{}

func (stubVariations) Available(context.Context, string) []domain.Variation {
	return []domain.Variation{{ID: "bacon", Available: true}}
}

func TestMenu(t *testing.T) {
	repo := &stubRepo{items: []domain.MenuItem{{ID: "burger"}}}
	svc := New(repo, stubCategories{}, stubVariations{})

	m, err := svc.Menu(context.Background(), "c1")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if !repo.onlyAvailable {
		t.Fatalf("public menu must only list available items")
	}
	if len(m.Categories) != 1 || len(m.Items) != 1 || len(m.Variations) != 1 {
		t.Fatalf("unexpected menu %+v", m)
	}

	svc = New(&stubRepo{}, stubCategories{err: errors.New("boom")}, stubVariations{})
	if _, err := svc.Menu(context.Background(), "c1"); err == nil {
		t.Fatalf("category failure must surface")
	}
}

func TestValidate_Groups(t *testing.T) {
	valid := func() domain.MenuItem {
		return domain.MenuItem{
			Name:  "Hamburguer",
			Price: decimal.NewFromInt(25),
			VariationGroups: []domain.VariationGroup{
				{Name: "Adicionais", MinRequired: 0, MaxAllowed: 2, VariationIDs: []string{"bacon"}},
			},
		}
	}

	m := valid()
	if err := Validate(&m); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	if m.VariationGroups[0].ID == "" {
		t.Fatalf("group id must be assigned")
	}

	mutations := []func(*domain.MenuItem){
		func(m *domain.MenuItem) { m.Name = "" },
		func(m *domain.MenuItem) { m.Price = decimal.NewFromInt(-1) },
		func(m *domain.MenuItem) { m.VariationGroups[0].MinRequired = -1 },
		func(m *domain.MenuItem) { m.VariationGroups[0].MinRequired = 3 },
		func(m *domain.MenuItem) { m.VariationGroups[0].VariationIDs = nil },
		func(m *domain.MenuItem) { m.VariationGroups[0].Name = " " },
		func(m *domain.MenuItem) {
			m.VariationGroups[0].ID = "g"
			m.VariationGroups = append(m.VariationGroups, m.VariationGroups[0])
		},
	}
	for i, mutate := range mutations {
		m := valid()
		mutate(&m)
		var vErr *domain.ValidationError
		if err := Validate(&m); !errors.As(err, &vErr) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}
