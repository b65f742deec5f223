package cart

import (
	"errors"
	"testing"

	"food-delivery/internal/domain"
)

func TestValidateSelections_WithinBounds(t *testing.T) {
	if err := ValidateSelections(burger(), selections("bacon", 1, "queijo", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateSelections(burger(), nil); err != nil {
		t.Fatalf("optional group should accept no selection: %v", err)
	}
}

func TestValidateSelections_AboveMaxUsesCustomMessage(t *testing.T) {
	err := ValidateSelections(burger(), selections("bacon", 2, "queijo", 1))
	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected SelectionError, got %v", err)
	}
	if want := "Escolha seus adicionais (3/2 selecionados)"; selErr.Message != want {
		t.Fatalf("expected %q, got %q", want, selErr.Message)
	}
}

func TestValidateSelections_UnknownVariation(t *testing.T) {
	err := ValidateSelections(burger(), selections("picanha", 1))
	var selErr *SelectionError
	if !errors.As(err, &selErr) || selErr.GroupID != "adicionais" {
		t.Fatalf("expected SelectionError for adicionais, got %v", err)
	}
}

func TestValidateSelections_UnknownGroup(t *testing.T) {
	sel := []domain.SelectedVariationGroup{{GroupID: "molhos", Variations: []domain.SelectedVariation{{VariationID: "x", Quantity: 1}}}}
	if err := ValidateSelections(burger(), sel); err == nil {
		t.Fatalf("expected error for unknown group")
	}
}

func TestGroupMessage_Defaults(t *testing.T) {
	cases := []struct {
		group domain.VariationGroup
		count int
		want  string
	}{
		{domain.VariationGroup{Name: "Tamanho", MinRequired: 1, MaxAllowed: 1}, 0, "Selecione exatamente 1 unidades de tamanho (0/1 selecionadas)"},
		{domain.VariationGroup{Name: "Sabores", MinRequired: 1, MaxAllowed: 3}, 2, "Selecione de 1 a 3 unidades de sabores (2/3 selecionadas)"},
		{domain.VariationGroup{Name: "Molhos", MinRequired: 0, MaxAllowed: 2}, 1, "Selecione até 2 unidades de molhos (opcional) (1/2 selecionadas)"},
		{domain.VariationGroup{Name: "X", MinRequired: 2, MaxAllowed: 4, CustomMessage: "min {min} max {max} got {count}"}, 1, "min 2 max 4 got 1"},
	}
	for _, tc := range cases {
		if got := GroupMessage(tc.group, tc.count); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestValidateSelections_BelowMin(t *testing.T) {
	item := burger()
	item.VariationGroups[0].MinRequired = 1
	item.VariationGroups[0].CustomMessage = ""
	err := ValidateSelections(item, nil)
	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected SelectionError, got %v", err)
	}
	if want := "Selecione de 1 a 2 unidades de adicionais (0/2 selecionadas)"; selErr.Message != want {
		t.Fatalf("expected %q, got %q", want, selErr.Message)
	}
}
