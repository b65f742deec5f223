package cart

import (
	"github.com/shopspring/decimal"

	"food-delivery/internal/pricing"
)

// Totals is derived from a State and never stored.
type Totals struct {
	ItemCount      int             `json:"itemCount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeTotals prices every row and applies the cart coupon, if any.
func ComputeTotals(s State) Totals {
	d := pricing.ApplyCoupon(pricing.CartTotal(Lines(s)), s.AppliedCoupon)
	return Totals{
		ItemCount:      s.ItemCount(),
		Subtotal:       d.Subtotal,
		DiscountAmount: d.Amount,
		Total:          d.Final,
	}
}

// Lines adapts the cart rows for the pricing package.
func Lines(s State) []pricing.Line {
	lines := make([]pricing.Line, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, pricing.Line{
			Item:       pricing.PricedItem{Price: it.Price, PriceFrom: it.PriceFrom},
			Quantity:   it.Quantity,
			Variations: it.SelectedVariations,
		})
	}
	return lines
}

// LineSubtotal prices a single row.
func LineSubtotal(it Item) decimal.Decimal {
	return pricing.ItemSubtotal(pricing.PricedItem{Price: it.Price, PriceFrom: it.PriceFrom}, it.Quantity, it.SelectedVariations)
}
