package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Category, error) {
	const q = `
SELECT id::text, company_id::text, name, display_order, created_at
FROM categories
WHERE company_id = $1
ORDER BY display_order ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	var row pgx.Row
	if c.ID == "" {
		row = r.pool.QueryRow(ctx, `
INSERT INTO categories (company_id, name, display_order)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`, c.CompanyID, c.Name, c.DisplayOrder)
	} else {
		row = r.pool.QueryRow(ctx, `
UPDATE categories
SET name = $3,
    display_order = $4
WHERE company_id = $1 AND id = $2
RETURNING id::text, created_at
`, c.CompanyID, c.ID, c.Name, c.DisplayOrder)
	}

	out := c
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
