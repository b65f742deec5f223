package company

import (
	"context"
	"errors"
	"strings"

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

const companyColumns = `id::text, name, COALESCE(phone, ''), slug, COALESCE(admin_id::text, ''), created_at`

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	return scanCompany(r.pool.QueryRow(ctx, q, strings.ToLower(slug)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) CreateWithAdmin(ctx context.Context, c domain.Company, admin domain.User) (*domain.Company, *domain.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var out domain.Company
	err = tx.QueryRow(ctx, `
INSERT INTO companies (name, phone, slug)
VALUES ($1, NULLIF($2, ''), $3)
RETURNING id::text, created_at
`, c.Name, c.Phone, c.Slug).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, nil, mapErr(err)
	}

	user := admin
	user.CompanyID = out.ID
	user.Role = domain.RoleAdmin
	err = tx.QueryRow(ctx, `
INSERT INTO users (company_id, name, email, phone, password_hash, role)
VALUES ($1, $2, lower($3), NULLIF($4, ''), $5, $6)
RETURNING id::text, created_at
`, out.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.Role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, nil, mapErr(err)
	}
	user.Email = strings.ToLower(user.Email)

	if _, err := tx.Exec(ctx, `UPDATE companies SET admin_id = $1 WHERE id = $2`, user.ID, out.ID); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	out.Name = c.Name
	out.Phone = c.Phone
	out.Slug = c.Slug
	out.AdminID = user.ID
	return &out, &user, nil
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Slug, &c.AdminID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}
