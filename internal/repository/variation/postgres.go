package variation

import (
	"context"
	"errors"

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

const variationColumns = `id::text, company_id::text, name, COALESCE(description, ''), additional_price, available, category_ids, created_at`

func (r *postgresRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Variation, error) {
	q := `SELECT ` + variationColumns + `
FROM variations
WHERE company_id = $1
ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q, companyID)
	if err != nil {
		r.logger.Errorw("variation repo: list", "company_id", companyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Variation
	for rows.Next() {
		v, err := scanVariation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		r.logger.Errorw("variation repo: list rows", "company_id", companyID, "error", err)
		return nil, err
	}
	r.logger.Debugw("variation repo: list", "company_id", companyID, "count", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, companyID, id string) (*domain.Variation, error) {
	q := `SELECT ` + variationColumns + ` FROM variations WHERE company_id = $1 AND id = $2`
	return scanVariation(r.pool.QueryRow(ctx, q, companyID, id))
}

func (r *postgresRepo) Create(ctx context.Context, v domain.Variation) (*domain.Variation, error) {
	q := `
INSERT INTO variations (company_id, name, description, additional_price, available, category_ids)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
RETURNING ` + variationColumns
	return scanVariation(r.pool.QueryRow(ctx, q, v.CompanyID, v.Name, v.Description, v.AdditionalPrice, v.Available, nonNil(v.CategoryIDs)))
}

func (r *postgresRepo) Update(ctx context.Context, v domain.Variation) (*domain.Variation, error) {
	q := `
UPDATE variations
SET name = $3,
    description = NULLIF($4, ''),
    additional_price = $5,
    available = $6,
    category_ids = $7
WHERE company_id = $1 AND id = $2
RETURNING ` + variationColumns
	return scanVariation(r.pool.QueryRow(ctx, q, v.CompanyID, v.ID, v.Name, v.Description, v.AdditionalPrice, v.Available, nonNil(v.CategoryIDs)))
}

func (r *postgresRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM variations WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.Variation, error) {
	q := `UPDATE variations SET available = $3 WHERE company_id = $1 AND id = $2 RETURNING ` + variationColumns
	return scanVariation(r.pool.QueryRow(ctx, q, companyID, id, available))
}

func scanVariation(row pgx.Row) (*domain.Variation, error) {
	var v domain.Variation
	if err := row.Scan(&v.ID, &v.CompanyID, &v.Name, &v.Description, &v.AdditionalPrice, &v.Available, &v.CategoryIDs, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if v.CategoryIDs == nil {
		v.CategoryIDs = []string{}
	}
	return &v, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
