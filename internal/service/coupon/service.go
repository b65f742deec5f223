package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
	couponrepo "food-delivery/internal/repository/coupon"
)

var (
	ErrInvalidCoupon = errors.New("cupom inválido")
	ErrExpiredCoupon = errors.New("cupom expirado")
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	repo couponrepo.Repository
}

func New(repo couponrepo.Repository) *Service {
	return &Service{repo: repo}
}

// NormalizeCode is the canonical stored form of a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate resolves code to an active coupon of the company that has not
// expired as of asOf. The expiry day is valid through its end.
func (s *Service) Validate(ctx context.Context, code, companyID string, asOf time.Time) (*domain.Coupon, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrInvalidCoupon
	}
	c, err := s.repo.GetActiveByCode(ctx, companyID, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}
	if Expired(*c, asOf) {
		return nil, ErrExpiredCoupon
	}
	return c, nil
}

// Expired compares civil dates: the coupon is expired once asOf falls on a
// day after ExpiresOn. The expiry date carries no zone, so its calendar
// fields are read as-is and compared with asOf's local calendar day.
func Expired(c domain.Coupon, asOf time.Time) bool {
	ey, em, ed := c.ExpiresOn.Date()
	ay, am, ad := asOf.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	day := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return day.After(expiry)
}

func (s *Service) List(ctx context.Context, companyID string) ([]domain.Coupon, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *Service) Create(ctx context.Context, companyID string, c domain.Coupon) (*domain.Coupon, error) {
	c.CompanyID = companyID
	if err := validate(&c); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, companyID, id string, c domain.Coupon) (*domain.Coupon, error) {
	c.CompanyID = companyID
	c.ID = id
	if err := validate(&c); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *Service) SetActive(ctx context.Context, companyID, id string, active bool) (*domain.Coupon, error) {
	return s.repo.SetActive(ctx, companyID, id, active)
}

func validate(c *domain.Coupon) error {
	c.Code = NormalizeCode(c.Code)
	if c.Code == "" {
		return domain.Invalid("code", "código do cupom é obrigatório")
	}
	switch c.Type {
	case domain.CouponPercentage:
		if c.Value.GreaterThan(hundred) {
			return domain.Invalid("value", "percentual deve estar entre 0 e 100")
		}
	case domain.CouponFixed:
	default:
		return domain.Invalid("type", "tipo de cupom inválido")
	}
	if c.Value.IsNegative() || c.Value.IsZero() {
		return domain.Invalid("value", "valor do cupom deve ser positivo")
	}
	if c.ExpiresOn.IsZero() {
		return domain.Invalid("expiresOn", "data de validade é obrigatória")
	}
	return nil
}
