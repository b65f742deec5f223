package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
)

func burger() domain.MenuItem {
	return domain.MenuItem{
		ID:    "burger",
		Name:  "Hamburguer Clássico",
		Price: decimal.RequireFromString("25.00"),
		VariationGroups: []domain.VariationGroup{{
			ID:            "adicionais",
			Name:          "Adicionais",
			MinRequired:   0,
			MaxAllowed:    2,
			VariationIDs:  []string{"bacon", "queijo"},
			CustomMessage: "Escolha seus adicionais ({count}/{max} selecionados)",
		}},
	}
}

func selections(pairs ...any) []domain.SelectedVariationGroup {
	g := domain.SelectedVariationGroup{GroupID: "adicionais"}
	for i := 0; i+1 < len(pairs); i += 2 {
		g.Variations = append(g.Variations, domain.SelectedVariation{
			VariationID:     pairs[i].(string),
			Quantity:        pairs[i+1].(int),
			AdditionalPrice: decimal.RequireFromString("1.00"),
		})
	}
	return []domain.SelectedVariationGroup{g}
}

func TestReduce_AddMergesSameSelections(t *testing.T) {
	var s State
	s = Reduce(s, AddItem{Item: burger(), Selections: selections("bacon", 1, "queijo", 1)})
	s = Reduce(s, AddItem{Item: burger(), Quantity: 2, Selections: selections("queijo", 1, "bacon", 1, "bacon", 0)})

	if len(s.Items) != 1 {
		t.Fatalf("expected 1 row, got %d", len(s.Items))
	}
	if s.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", s.Items[0].Quantity)
	}
}

func TestReduce_DifferentSelectionsStaySeparate(t *testing.T) {
	var s State
	s = Reduce(s, AddItem{Item: burger()})
	s = Reduce(s, AddItem{Item: burger(), Selections: selections("bacon", 1)})
	s = Reduce(s, AddItem{Item: burger(), Selections: selections("bacon", 2)})
	if len(s.Items) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(s.Items))
	}
	if s.Items[0].Key != "burger" {
		t.Fatalf("expected plain key for no selections, got %q", s.Items[0].Key)
	}
}

func TestReduce_ItemMutationsClearCoupon(t *testing.T) {
	coupon := domain.Coupon{Code: "DEZ", Type: domain.CouponPercentage, Value: decimal.NewFromInt(10)}
	base := Reduce(State{}, AddItem{Item: burger()})
	key := base.Items[0].Key

	actions := map[string]Action{
		"add":      AddItem{Item: burger()},
		"remove":   RemoveItem{Key: key},
		"change":   ChangeQuantity{Key: key, Quantity: 5},
		"increase": IncreaseQuantity{Key: key},
		"decrease": DecreaseQuantity{Key: key},
		"clear":    Clear{},
	}
	for name, act := range actions {
		t.Run(name, func(t *testing.T) {
			s := Reduce(base, ApplyCoupon{Coupon: coupon})
			if s.AppliedCoupon == nil {
				t.Fatalf("expected coupon applied")
			}
			s = Reduce(s, act)
			if s.AppliedCoupon != nil {
				t.Fatalf("expected coupon cleared after %s", name)
			}
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: burger()})
	key := s.Items[0].Key
	_ = Reduce(s, IncreaseQuantity{Key: key})
	_ = Reduce(s, AddItem{Item: burger()})
	if s.Items[0].Quantity != 1 {
		t.Fatalf("input state changed: quantity=%d", s.Items[0].Quantity)
	}
}

func TestReduce_QuantityToZeroRemovesRow(t *testing.T) {
	s := Reduce(State{}, AddItem{Item: burger()})
	key := s.Items[0].Key

	if got := Reduce(s, DecreaseQuantity{Key: key}); len(got.Items) != 0 {
		t.Fatalf("decrease to zero should remove row")
	}
	if got := Reduce(s, ChangeQuantity{Key: key, Quantity: 0}); len(got.Items) != 0 {
		t.Fatalf("change to zero should remove row")
	}
	if got := Reduce(s, ChangeQuantity{Key: key, Quantity: 4}); got.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", got.Items[0].Quantity)
	}
}

func TestMerge(t *testing.T) {
	coupon := &domain.Coupon{Code: "DEZ"}
	taken := Reduce(State{}, AddItem{Item: burger(), Quantity: 2})
	taken.AppliedCoupon = coupon

	if got := Merge(State{}, taken); len(got.Items) != 1 || got.AppliedCoupon != coupon {
		t.Fatalf("empty target should take everything: %+v", got)
	}

	current := Reduce(State{}, AddItem{Item: burger()})
	current = Reduce(current, AddItem{Item: burger(), Selections: selections("bacon", 1)})
	got := Merge(current, taken)
	if len(got.Items) != 2 || got.Items[0].Quantity != 3 || got.Items[1].Quantity != 1 {
		t.Fatalf("unexpected merged rows %+v", got.Items)
	}
	if got.AppliedCoupon != nil {
		t.Fatalf("merging into a non-empty cart must drop the coupon")
	}
	if current.Items[0].Quantity != 1 {
		t.Fatalf("merge must not mutate its input")
	}
}

func TestMergeKey_OrderIndependent(t *testing.T) {
	a := []domain.SelectedVariationGroup{
		{GroupID: "g2", Variations: []domain.SelectedVariation{{VariationID: "x", Quantity: 1}}},
		{GroupID: "g1", Variations: []domain.SelectedVariation{{VariationID: "b", Quantity: 2}, {VariationID: "a", Quantity: 1}}},
	}
	b := []domain.SelectedVariationGroup{
		{GroupID: "g1", Variations: []domain.SelectedVariation{{VariationID: "a", Quantity: 1}, {VariationID: "c", Quantity: 0}, {VariationID: "b", Quantity: 2}}},
		{GroupID: "g2", Variations: []domain.SelectedVariation{{VariationID: "x", Quantity: 1}}},
	}
	ka, kb := MergeKey("item", a), MergeKey("item", b)
	if ka != kb {
		t.Fatalf("keys differ: %q vs %q", ka, kb)
	}
	if want := "item_g1:a-1.b-2_g2:x-1"; ka != want {
		t.Fatalf("expected %q, got %q", want, ka)
	}
}

func TestComputeTotals(t *testing.T) {
	item := burger()
	s := Reduce(State{}, AddItem{Item: item, Quantity: 2, Selections: []domain.SelectedVariationGroup{{
		GroupID:    "adicionais",
		Variations: []domain.SelectedVariation{{VariationID: "bacon", Quantity: 1, AdditionalPrice: decimal.RequireFromString("3.50")}},
	}}})

	totals := ComputeTotals(s)
	if totals.Subtotal.StringFixed(2) != "57.00" || totals.Total.StringFixed(2) != "57.00" {
		t.Fatalf("unexpected totals %+v", totals)
	}

	s = Reduce(s, ApplyCoupon{Coupon: domain.Coupon{Type: domain.CouponFixed, Value: decimal.NewFromInt(7)}})
	totals = ComputeTotals(s)
	if totals.DiscountAmount.StringFixed(2) != "7.00" || totals.Total.StringFixed(2) != "50.00" {
		t.Fatalf("unexpected discounted totals %+v", totals)
	}
	if totals.ItemCount != 2 {
		t.Fatalf("expected 2 units, got %d", totals.ItemCount)
	}
}
