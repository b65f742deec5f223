package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponPercentage CouponType = "percentual"
	CouponFixed      CouponType = "fixo"
)

// Coupon is a company-scoped discount rule. ExpiresOn is a calendar day and
// stays valid through its end.
type Coupon struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"-"`
	Code        string          `json:"code"`
	Type        CouponType      `json:"type"`
	Value       decimal.Decimal `json:"value"`
	ExpiresOn   time.Time       `json:"expiresOn"`
	Active      bool            `json:"active"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
