package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

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

const orderColumns = `id::text, company_id::text, customer_name, customer_phone, address, items, status,
       payment_method, payment_status, subtotal, discount_amount, total, COALESCE(observations, ''),
       coupon_code, coupon_type, coupon_value, deliverer_id::text, COALESCE(cancellation_reason, ''),
       created_at, updated_at, delivered_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	addrJSON, err := json.Marshal(o.Address)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	q := `
INSERT INTO orders (
    id, company_id, customer_name, customer_phone, address, items, status, payment_method, payment_status,
    subtotal, discount_amount, total, observations, coupon_code, coupon_type, coupon_value,
    deliverer_id, delivered_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, $17::uuid, $18)
RETURNING ` + orderColumns
	out, err := r.scanOrder(r.pool.QueryRow(ctx, q,
		o.ID,
		o.CompanyID,
		o.CustomerName,
		o.CustomerPhone,
		addrJSON,
		itemsJSON,
		o.Status,
		o.PaymentMethod,
		o.PaymentStatus,
		o.Subtotal,
		o.DiscountAmount,
		o.Total,
		o.Observations,
		o.CouponCode,
		o.CouponType,
		o.CouponValue,
		o.DelivererID,
		o.DeliveredAt,
	))
	if err != nil {
		r.logger.Errorw("order repo: create", "company_id", o.CompanyID, "error", err)
		return nil, err
	}
	r.logger.Infow("order repo: created", "company_id", out.CompanyID, "order_id", out.ID, "total", out.Total.StringFixed(2))
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, companyID, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1 AND id = $2`
	return r.scanOrder(r.pool.QueryRow(ctx, q, companyID, id))
}

func (r *postgresRepo) List(ctx context.Context, companyID string, f ListFilter) ([]domain.Order, error) {
	where := []string{"company_id = $1"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		add("status = ANY($%d)", statuses)
	}
	if f.PaymentMethod != "" {
		add("payment_method = $%d", f.PaymentMethod)
	}
	if f.PaymentStatus != "" {
		add("payment_status = $%d", f.PaymentStatus)
	}
	if f.DelivererID != "" {
		add("deliverer_id = $%d::uuid", f.DelivererID)
	}

	q := `SELECT ` + orderColumns + `
FROM orders
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Errorw("order repo: list", "company_id", companyID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, companyID, id string, u StatusUpdate) (*domain.Order, error) {
	q := `
UPDATE orders
SET status = $3,
    payment_status = $4,
    deliverer_id = $5::uuid,
    cancellation_reason = NULLIF($6, ''),
    delivered_at = $7,
    updated_at = now()
WHERE company_id = $1 AND id = $2 AND ($8::timestamptz IS NULL OR updated_at = $8)
RETURNING ` + orderColumns
	out, err := r.scanOrder(r.pool.QueryRow(ctx, q,
		companyID, id, u.Status, u.PaymentStatus, u.DelivererID, u.CancellationReason, u.DeliveredAt, u.ExpectedUpdatedAt,
	))
	if errors.Is(err, domain.ErrNotFound) && u.ExpectedUpdatedAt != nil {
		if _, getErr := r.GetByID(ctx, companyID, id); getErr == nil {
			return nil, domain.ErrConflict
		}
	}
	if err != nil {
		return nil, err
	}
	r.logger.Infow("order repo: status updated", "company_id", companyID, "order_id", id, "status", out.Status)
	return out, nil
}

func (r *postgresRepo) UpdatePaymentStatus(ctx context.Context, companyID, id string, status domain.PaymentStatus) (*domain.Order, error) {
	q := `
UPDATE orders
SET payment_status = $3,
    updated_at = now()
WHERE company_id = $1 AND id = $2
RETURNING ` + orderColumns
	return r.scanOrder(r.pool.QueryRow(ctx, q, companyID, id, status))
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var addrJSON, itemsJSON []byte
	err := row.Scan(
		&o.ID,
		&o.CompanyID,
		&o.CustomerName,
		&o.CustomerPhone,
		&addrJSON,
		&itemsJSON,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.Subtotal,
		&o.DiscountAmount,
		&o.Total,
		&o.Observations,
		&o.CouponCode,
		&o.CouponType,
		&o.CouponValue,
		&o.DelivererID,
		&o.CancellationReason,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Errorw("order repo: scan", "error", err)
		return nil, err
	}
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &o.Address); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	return &o, nil
}
