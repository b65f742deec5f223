// Package seed writes a small demo menu for manual testing.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"food-delivery/internal/domain"
	authsvc "food-delivery/internal/service/auth"
)

type companyLookup interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
}

type adminCreator interface {
	SignupAdmin(ctx context.Context, in authsvc.AdminSignupInput) (*domain.Company, *domain.User, error)
}

type categoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type variationWriter interface {
	Create(ctx context.Context, v domain.Variation) (*domain.Variation, error)
}

type menuItemWriter interface {
	Create(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error)
}

// Stores are the writers the seed goes through.
type Stores struct {
	Companies  companyLookup
	Accounts   adminCreator
	Categories categoryWriter
	Variations variationWriter
	MenuItems  menuItemWriter
}

type Options struct {
	CompanyName   string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Apply creates the demo company unless its slug already exists. The writes
// are sequential and not wrapped in a transaction: a failure halfway leaves
// the rows written so far, and the next run skips the company.
func Apply(ctx context.Context, s Stores, opts Options, logger *zap.SugaredLogger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	slug := authsvc.Slugify(opts.CompanyName)
	if _, err := s.Companies.GetBySlug(ctx, slug); err == nil {
		logger.Infow("seed: company exists, skipping", "slug", slug)
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("lookup company: %w", err)
	}

	company, admin, err := s.Accounts.SignupAdmin(ctx, authsvc.AdminSignupInput{
		CompanyName: opts.CompanyName,
		Name:        opts.AdminName,
		Email:       opts.AdminEmail,
		Password:    opts.AdminPassword,
	})
	if err != nil {
		return false, fmt.Errorf("create company: %w", err)
	}

	cat, err := s.Categories.Upsert(ctx, domain.Category{CompanyID: company.ID, Name: "Lanches", DisplayOrder: 1})
	if err != nil {
		return false, fmt.Errorf("create category: %w", err)
	}

	bacon, err := s.Variations.Create(ctx, domain.Variation{
		CompanyID:       company.ID,
		Name:            "Bacon Crocante",
		AdditionalPrice: decimal.RequireFromString("3.50"),
		Available:       true,
		CategoryIDs:     []string{cat.ID},
	})
	if err != nil {
		return false, fmt.Errorf("create variation: %w", err)
	}
	cheese, err := s.Variations.Create(ctx, domain.Variation{
		CompanyID:       company.ID,
		Name:            "Queijo Extra",
		AdditionalPrice: decimal.RequireFromString("2.00"),
		Available:       true,
		CategoryIDs:     []string{cat.ID},
	})
	if err != nil {
		return false, fmt.Errorf("create variation: %w", err)
	}

	item, err := s.MenuItems.Create(ctx, domain.MenuItem{
		CompanyID:   company.ID,
		Name:        "Hamburguer Clássico",
		Description: "Pão brioche, blend 180g, queijo e salada",
		Price:       decimal.RequireFromString("25.00"),
		CategoryID:  cat.ID,
		Popular:     true,
		Available:   true,
		VariationGroups: []domain.VariationGroup{{
			ID:            uuid.NewString(),
			Name:          "Adicionais",
			MinRequired:   0,
			MaxAllowed:    2,
			VariationIDs:  []string{bacon.ID, cheese.ID},
			CustomMessage: "Escolha seus adicionais ({count}/{max} selecionados)",
		}},
	})
	if err != nil {
		return false, fmt.Errorf("create menu item: %w", err)
	}

	logger.Infow("seed: demo company created", "slug", company.Slug, "admin", admin.Email, "item_id", item.ID)
	return true, nil
}
