package coupon

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

const couponColumns = `id::text, company_id::text, code, type, value, expires_on, active, COALESCE(description, ''), created_at`

func (r *postgresRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Coupon, error) {
	q := `SELECT ` + couponColumns + `
FROM coupons
WHERE company_id = $1
ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetActiveByCode(ctx context.Context, companyID, code string) (*domain.Coupon, error) {
	q := `SELECT ` + couponColumns + `
FROM coupons
WHERE company_id = $1 AND code = $2 AND active
LIMIT 1`
	return scanCoupon(r.pool.QueryRow(ctx, q, companyID, code))
}

func (r *postgresRepo) GetByID(ctx context.Context, companyID, id string) (*domain.Coupon, error) {
	q := `SELECT ` + couponColumns + ` FROM coupons WHERE company_id = $1 AND id = $2`
	return scanCoupon(r.pool.QueryRow(ctx, q, companyID, id))
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	q := `
INSERT INTO coupons (company_id, code, type, value, expires_on, active, description)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, q, c.CompanyID, c.Code, c.Type, c.Value, c.ExpiresOn, c.Active, c.Description))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	q := `
UPDATE coupons
SET code = $3,
    type = $4,
    value = $5,
    expires_on = $6,
    active = $7,
    description = NULLIF($8, '')
WHERE company_id = $1 AND id = $2
RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, q, c.CompanyID, c.ID, c.Code, c.Type, c.Value, c.ExpiresOn, c.Active, c.Description))
}

func (r *postgresRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetActive(ctx context.Context, companyID, id string, active bool) (*domain.Coupon, error) {
	q := `UPDATE coupons SET active = $3 WHERE company_id = $1 AND id = $2 RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, q, companyID, id, active))
}

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(&c.ID, &c.CompanyID, &c.Code, &c.Type, &c.Value, &c.ExpiresOn, &c.Active, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}
