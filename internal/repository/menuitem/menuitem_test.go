package menuitem

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"food-delivery/internal/db/dbtest"
	"food-delivery/internal/domain"
)

func TestPostgres_CreateKeepsVariationGroups(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	companyID := dbtest.Company(t, pool, "demo")
	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.MenuItem{
		CompanyID: companyID,
		Name:      "Hamburguer Clássico",
		Price:     decimal.RequireFromString("25.00"),
		Available: true,
		VariationGroups: []domain.VariationGroup{{
			ID:           "adicionais",
			Name:         "Adicionais",
			MaxAllowed:   2,
			VariationIDs: []string{"a", "b"},
		}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, companyID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.VariationGroups) != 1 || got.VariationGroups[0].MaxAllowed != 2 || len(got.VariationGroups[0].VariationIDs) != 2 {
		t.Fatalf("unexpected groups %+v", got.VariationGroups)
	}
	if got.CategoryID != "" {
		t.Fatalf("expected no category, got %q", got.CategoryID)
	}
}

func TestPostgres_ListOnlyAvailable(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	companyID := dbtest.Company(t, pool, "demo")
	repo := NewPostgres(pool, nil)

	a, err := repo.Create(ctx, domain.MenuItem{CompanyID: companyID, Name: "A", Price: decimal.NewFromInt(1), Available: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, domain.MenuItem{CompanyID: companyID, Name: "B", Price: decimal.NewFromInt(1), Available: false}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.ListByCompany(ctx, companyID, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	available, err := repo.ListByCompany(ctx, companyID, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || len(available) != 1 || available[0].ID != a.ID {
		t.Fatalf("unexpected lists all=%d available=%+v", len(all), available)
	}

	if err := repo.Delete(ctx, companyID, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, companyID, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
