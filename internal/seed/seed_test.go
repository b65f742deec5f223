package seed

import (
	"context"
	"errors"
	"testing"

	"food-delivery/internal/domain"
	authsvc "food-delivery/internal/service/auth"
)

type stubCompanies struct {
	existing *domain.Company
}

func (s *stubCompanies) GetBySlug(_ context.Context, _ string) (*domain.Company, error) {
	if s.existing == nil {
		return nil, domain.ErrNotFound
	}
	return s.existing, nil
}

type stubAccounts struct {
	calls int
}

func (s *stubAccounts) SignupAdmin(_ context.Context, in authsvc.AdminSignupInput) (*domain.Company, *domain.User, error) {
	s.calls++
	return &domain.Company{ID: "c1", Name: in.CompanyName, Slug: authsvc.Slugify(in.CompanyName)}, &domain.User{ID: "u1", Email: in.Email}, nil
}

type stubCatalog struct {
	categories []domain.Category
	variations []domain.Variation
	items      []domain.MenuItem
	itemErr    error
}

func (s *stubCatalog) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	c.ID = "cat-1"
	s.categories = append(s.categories, c)
	return &c, nil
}

type variations struct{ *stubCatalog }

func (s variations) Create(_ context.Context, v domain.Variation) (*domain.Variation, error) {
	v.ID = "var-" + v.Name
	s.variations = append(s.variations, v)
	return &v, nil
}

type items struct{ *stubCatalog }

func (s items) Create(_ context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	if s.itemErr != nil {
		return nil, s.itemErr
	}
	m.ID = "item-1"
	s.items = append(s.items, m)
	return &m, nil
}

func stores(companies *stubCompanies, accounts *stubAccounts, cat *stubCatalog) Stores {
	return Stores{
		Companies:  companies,
		Accounts:   accounts,
		Categories: cat,
		Variations: variations{cat},
		MenuItems:  items{cat},
	}
}

var opts = Options{CompanyName: "Demo", AdminName: "Admin", AdminEmail: "admin@demo.com", AdminPassword: "Abcdefg1"}

func TestApply_CreatesDemoMenu(t *testing.T) {
	cat := &stubCatalog{}
	created, err := Apply(context.Background(), stores(&stubCompanies{}, &stubAccounts{}, cat), opts, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !created {
		t.Fatalf("expected company to be created")
	}
	if len(cat.categories) != 1 || len(cat.variations) != 2 || len(cat.items) != 1 {
		t.Fatalf("unexpected rows: %d categories, %d variations, %d items", len(cat.categories), len(cat.variations), len(cat.items))
	}
	group := cat.items[0].VariationGroups[0]
	if group.MaxAllowed != 2 || len(group.VariationIDs) != 2 || group.VariationIDs[0] != "var-Bacon Crocante" {
		t.Fatalf("unexpected group %+v", group)
	}
	if cat.items[0].Price.StringFixed(2) != "25.00" || cat.items[0].CategoryID != "cat-1" {
		t.Fatalf("unexpected item %+v", cat.items[0])
	}
}

func TestApply_SkipsExistingCompany(t *testing.T) {
	accounts := &stubAccounts{}
	created, err := Apply(context.Background(), stores(&stubCompanies{existing: &domain.Company{ID: "c1"}}, accounts, &stubCatalog{}), opts, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if created || accounts.calls != 0 {
		t.Fatalf("expected skip, created=%v calls=%d", created, accounts.calls)
	}
}

func TestApply_StopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	cat := &stubCatalog{itemErr: boom}
	_, err := Apply(context.Background(), stores(&stubCompanies{}, &stubAccounts{}, cat), opts, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if len(cat.variations) != 2 {
		t.Fatalf("expected earlier writes to stay, got %d variations", len(cat.variations))
	}
}
