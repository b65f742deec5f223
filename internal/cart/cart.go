// Package cart holds the pure cart state machine: a reducer over typed
// actions plus the derived totals. It performs no I/O.
package cart

import (
	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
)

// Item is one cart row. Rows with the same Key are merged.
type Item struct {
	Key                string                          `json:"key"`
	MenuItemID         string                          `json:"menuItemId"`
	Name               string                          `json:"name"`
	Price              decimal.Decimal                 `json:"price"`
	PriceFrom          bool                            `json:"priceFrom"`
	Image              string                          `json:"image,omitempty"`
	Quantity           int                             `json:"quantity"`
	Notes              string                          `json:"notes,omitempty"`
	SelectedVariations []domain.SelectedVariationGroup `json:"selectedVariations"`
}

// State is a cart snapshot. The zero value is an empty cart.
type State struct {
	Items         []Item         `json:"items"`
	AppliedCoupon *domain.Coupon `json:"appliedCoupon,omitempty"`
}

// Action is a cart mutation understood by Reduce.
type Action interface {
	isAction()
}

// AddItem appends a row or, when a row with the same merge key exists,
// increases its quantity. A non-positive Quantity counts as 1.
type AddItem struct {
	Item       domain.MenuItem
	Quantity   int
	Notes      string
	Selections []domain.SelectedVariationGroup
}

type RemoveItem struct{ Key string }

// ChangeQuantity sets a row quantity; values <= 0 remove the row.
type ChangeQuantity struct {
	Key      string
	Quantity int
}

type IncreaseQuantity struct{ Key string }

// DecreaseQuantity removes the row when it reaches zero.
type DecreaseQuantity struct{ Key string }

type Clear struct{}

type ApplyCoupon struct{ Coupon domain.Coupon }

type RemoveCoupon struct{}

func (AddItem) isAction()          {}
func (RemoveItem) isAction()       {}
func (ChangeQuantity) isAction()   {}
func (IncreaseQuantity) isAction() {}
func (DecreaseQuantity) isAction() {}
func (Clear) isAction()            {}
func (ApplyCoupon) isAction()      {}
func (RemoveCoupon) isAction()     {}

// Reduce returns the state that results from applying a to s. s is never
// modified. Every action that touches items also drops the applied coupon,
// so a discount is always re-validated against the cart it applies to.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case AddItem:
		return State{Items: addItem(s.Items, act)}
	case RemoveItem:
		return State{Items: withQuantity(s.Items, act.Key, func(int) int { return 0 })}
	case ChangeQuantity:
		return State{Items: withQuantity(s.Items, act.Key, func(int) int { return act.Quantity })}
	case IncreaseQuantity:
		return State{Items: withQuantity(s.Items, act.Key, func(q int) int { return q + 1 })}
	case DecreaseQuantity:
		return State{Items: withQuantity(s.Items, act.Key, func(q int) int { return q - 1 })}
	case Clear:
		return State{}
	case ApplyCoupon:
		c := act.Coupon
		return State{Items: copyItems(s.Items), AppliedCoupon: &c}
	case RemoveCoupon:
		return State{Items: copyItems(s.Items)}
	}
	return State{Items: copyItems(s.Items), AppliedCoupon: s.AppliedCoupon}
}

func addItem(items []Item, act AddItem) []Item {
	qty := act.Quantity
	if qty <= 0 {
		qty = 1
	}
	selections := NormalizeSelections(act.Selections)
	key := MergeKey(act.Item.ID, selections)

	out := copyItems(items)
	for i := range out {
		if out[i].Key == key {
			out[i].Quantity += qty
			return out
		}
	}
	return append(out, Item{
		Key:                key,
		MenuItemID:         act.Item.ID,
		Name:               act.Item.Name,
		Price:              act.Item.Price,
		PriceFrom:          act.Item.PriceFrom,
		Image:              act.Item.Image,
		Quantity:           qty,
		Notes:              act.Notes,
		SelectedVariations: selections,
	})
}

// Merge folds from into into, summing rows with the same key. When into
// already has items the result carries no coupon, as with any item change.
func Merge(into, from State) State {
	if len(into.Items) == 0 {
		return State{Items: copyItems(from.Items), AppliedCoupon: from.AppliedCoupon}
	}
	if len(from.Items) == 0 {
		return State{Items: copyItems(into.Items), AppliedCoupon: into.AppliedCoupon}
	}
	out := copyItems(into.Items)
	for _, it := range from.Items {
		merged := false
		for i := range out {
			if out[i].Key == it.Key {
				out[i].Quantity += it.Quantity
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, it)
		}
	}
	return State{Items: out}
}

func withQuantity(items []Item, key string, next func(int) int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Key == key {
			q := next(it.Quantity)
			if q <= 0 {
				continue
			}
			it.Quantity = q
		}
		out = append(out, it)
	}
	return out
}

func copyItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Find returns the row with the given key.
func (s State) Find(key string) (Item, bool) {
	for _, it := range s.Items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// ItemCount is the total number of units in the cart.
func (s State) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
