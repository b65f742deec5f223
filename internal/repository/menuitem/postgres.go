package menuitem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"food-delivery/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.SugaredLogger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.SugaredLogger) Repository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const itemColumns = `id::text, company_id::text, name, COALESCE(description, ''), price, COALESCE(image, ''),
       COALESCE(category_id::text, ''), popular, available, price_from, variation_groups, created_at, updated_at`

func (r *postgresRepo) ListByCompany(ctx context.Context, companyID string, onlyAvailable bool) ([]domain.MenuItem, error) {
	q := `SELECT ` + itemColumns + `
FROM menu_items
WHERE company_id = $1 AND ($2 = false OR available)
ORDER BY popular DESC, name ASC`
	rows, err := r.pool.Query(ctx, q, companyID, onlyAvailable)
	if err != nil {
		r.logger.Errorw("menu item repo: list", "company_id", companyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Errorw("menu item repo: list rows", "company_id", companyID, "error", err)
		return nil, err
	}
	r.logger.Debugw("menu item repo: list", "company_id", companyID, "count", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, companyID, id string) (*domain.MenuItem, error) {
	q := `SELECT ` + itemColumns + ` FROM menu_items WHERE company_id = $1 AND id = $2`
	return scanItem(r.pool.QueryRow(ctx, q, companyID, id))
}

func (r *postgresRepo) Create(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	groups, err := marshalGroups(m.VariationGroups)
	if err != nil {
		return nil, err
	}
	q := `
INSERT INTO menu_items (company_id, name, description, price, image, category_id, popular, available, price_from, variation_groups)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, '')::uuid, $7, $8, $9, $10)
RETURNING ` + itemColumns
	return scanItem(r.pool.QueryRow(ctx, q,
		m.CompanyID, m.Name, m.Description, m.Price, m.Image, m.CategoryID, m.Popular, m.Available, m.PriceFrom, groups,
	))
}

func (r *postgresRepo) Update(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	groups, err := marshalGroups(m.VariationGroups)
	if err != nil {
		return nil, err
	}
	q := `
UPDATE menu_items
SET name = $3,
    description = NULLIF($4, ''),
    price = $5,
    image = NULLIF($6, ''),
    category_id = NULLIF($7, '')::uuid,
    popular = $8,
    available = $9,
    price_from = $10,
    variation_groups = $11,
    updated_at = now()
WHERE company_id = $1 AND id = $2
RETURNING ` + itemColumns
	return scanItem(r.pool.QueryRow(ctx, q,
		m.CompanyID, m.ID, m.Name, m.Description, m.Price, m.Image, m.CategoryID, m.Popular, m.Available, m.PriceFrom, groups,
	))
}

func (r *postgresRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.MenuItem, error) {
	q := `UPDATE menu_items SET available = $3, updated_at = now() WHERE company_id = $1 AND id = $2 RETURNING ` + itemColumns
	return scanItem(r.pool.QueryRow(ctx, q, companyID, id, available))
}

func marshalGroups(groups []domain.VariationGroup) ([]byte, error) {
	if groups == nil {
		groups = []domain.VariationGroup{}
	}
	b, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("encode variation groups: %w", err)
	}
	return b, nil
}

func scanItem(row pgx.Row) (*domain.MenuItem, error) {
	var m domain.MenuItem
	var groupsJSON []byte
	err := row.Scan(
		&m.ID,
		&m.CompanyID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.Image,
		&m.CategoryID,
		&m.Popular,
		&m.Available,
		&m.PriceFrom,
		&groupsJSON,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(groupsJSON) > 0 {
		if err := json.Unmarshal(groupsJSON, &m.VariationGroups); err != nil {
			return nil, fmt.Errorf("decode variation groups: %w", err)
		}
	}
	return &m, nil
}
