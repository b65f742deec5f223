package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"food-delivery/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.SugaredLogger) Repository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `id::text, company_id::text, name, email, COALESCE(phone, ''), password_hash, role,
       COALESCE(plate, ''), COALESCE(cpf, ''), COALESCE(deliverer_status, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	q := `
INSERT INTO users (company_id, name, email, phone, password_hash, role, plate, cpf, deliverer_status)
VALUES ($1, $2, lower($3), NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
RETURNING ` + userColumns
	return r.scanUser(r.pool.QueryRow(ctx, q,
		u.CompanyID,
		u.Name,
		strings.TrimSpace(u.Email),
		u.Phone,
		u.PasswordHash,
		u.Role,
		u.Plate,
		u.CPF,
		u.DelivererStatus,
	))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, companyID, email string) (*domain.User, error) {
	q := `SELECT ` + userColumns + `
FROM users
WHERE company_id = $1 AND email = lower($2)
LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, q, companyID, strings.TrimSpace(email)))
}

func (r *postgresRepo) GetByID(ctx context.Context, companyID, id string) (*domain.User, error) {
	q := `SELECT ` + userColumns + `
FROM users
WHERE company_id = $1 AND id = $2
LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, q, companyID, id))
}

func (r *postgresRepo) ListByRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error) {
	q := `SELECT ` + userColumns + `
FROM users
WHERE company_id = $1 AND role = $2
ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q, companyID, role)
	if err != nil {
		r.logger.Errorw("user repo: list", "company_id", companyID, "role", role, "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error) {
	q := `
UPDATE users
SET name = $3,
    email = lower($4),
    phone = NULLIF($5, ''),
    plate = NULLIF($6, ''),
    cpf = NULLIF($7, '')
WHERE company_id = $1 AND id = $2
RETURNING ` + userColumns
	return r.scanUser(r.pool.QueryRow(ctx, q, u.CompanyID, u.ID, u.Name, strings.TrimSpace(u.Email), u.Phone, u.Plate, u.CPF))
}

func (r *postgresRepo) SetDelivererStatus(ctx context.Context, companyID, id string, status domain.DelivererStatus) (*domain.User, error) {
	q := `
UPDATE users
SET deliverer_status = $3
WHERE company_id = $1 AND id = $2 AND role = 'entregador'
RETURNING ` + userColumns
	return r.scanUser(r.pool.QueryRow(ctx, q, companyID, id, status))
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, companyID, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $3 WHERE company_id = $1 AND id = $2`, companyID, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.Plate,
		&u.CPF,
		&u.DelivererStatus,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Errorw("user repo: scan", "error", err)
		return nil, err
	}
	return &u, nil
}
