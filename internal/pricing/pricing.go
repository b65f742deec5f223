// Package pricing computes line-item subtotals, cart totals and coupon
// discounts. Amounts accumulate at full precision; rounding happens only in
// Format.
package pricing

import (
	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PricedItem is the part of a menu item that drives its price.
type PricedItem struct {
	Price     decimal.Decimal
	PriceFrom bool
}

// ItemFromMenu extracts the pricing fields of a menu item.
func ItemFromMenu(m domain.MenuItem) PricedItem {
	return PricedItem{Price: m.Price, PriceFrom: m.PriceFrom}
}

// Line is one cart or order row.
type Line struct {
	Item       PricedItem
	Quantity   int
	Variations []domain.SelectedVariationGroup
}

// ItemSubtotal returns (base + Σ additionalPrice × variationQty) × quantity.
// A price-from item contributes no base price.
func ItemSubtotal(item PricedItem, quantity int, groups []domain.SelectedVariationGroup) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	base := item.Price
	if item.PriceFrom {
		base = decimal.Zero
	}
	return base.Add(VariationsUnitTotal(groups)).Mul(decimal.NewFromInt(int64(quantity)))
}

// VariationsUnitTotal sums the add-on cost of one unit.
func VariationsUnitTotal(groups []domain.SelectedVariationGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		for _, v := range g.Variations {
			if v.Quantity <= 0 {
				continue
			}
			total = total.Add(v.AdditionalPrice.Mul(decimal.NewFromInt(int64(v.Quantity))))
		}
	}
	return total
}

// CartTotal sums ItemSubtotal over all rows.
func CartTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(ItemSubtotal(l.Item, l.Quantity, l.Variations))
	}
	return total
}

// Discount is the outcome of applying a coupon to a subtotal.
// 0 <= Amount <= Subtotal and Final = Subtotal - Amount always hold.
type Discount struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Amount   decimal.Decimal `json:"discountAmount"`
	Final    decimal.Decimal `json:"finalTotal"`
}

// ApplyCoupon computes the discount of c against subtotal. A nil coupon
// yields no discount.
func ApplyCoupon(subtotal decimal.Decimal, c *domain.Coupon) Discount {
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	amount := decimal.Zero
	if c != nil {
		switch c.Type {
		case domain.CouponPercentage:
			amount = subtotal.Mul(c.Value).Div(hundred)
		case domain.CouponFixed:
			amount = c.Value
		}
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	amount = decimal.Min(amount, subtotal)
	final := subtotal.Sub(amount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return Discount{Subtotal: subtotal, Amount: amount, Final: final}
}

// Format renders an amount with two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
