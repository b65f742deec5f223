package cart

import (
	"fmt"
	"strconv"
	"strings"

	"food-delivery/internal/domain"
)

// SelectionError reports a variation group whose selected total falls
// outside its bounds, or a selection the item does not offer.
type SelectionError struct {
	GroupID string
	Message string
}

func (e *SelectionError) Error() string {
	return e.Message
}

// ValidateSelections checks every variation group of item against the
// selected quantities. Groups absent from selections count as zero.
func ValidateSelections(item domain.MenuItem, selections []domain.SelectedVariationGroup) error {
	groups := make(map[string]domain.VariationGroup, len(item.VariationGroups))
	for _, g := range item.VariationGroups {
		groups[g.ID] = g
	}

	counts := make(map[string]int, len(selections))
	for _, sel := range selections {
		g, ok := groups[sel.GroupID]
		if !ok {
			return &SelectionError{GroupID: sel.GroupID, Message: fmt.Sprintf("grupo de variações %q não pertence a %s", sel.GroupID, item.Name)}
		}
		for _, v := range sel.Variations {
			if v.Quantity < 0 {
				return &SelectionError{GroupID: g.ID, Message: "quantidade de variação inválida"}
			}
			if v.Quantity == 0 {
				continue
			}
			if !contains(g.VariationIDs, v.VariationID) {
				return &SelectionError{GroupID: g.ID, Message: fmt.Sprintf("variação %q não pertence ao grupo %s", v.VariationID, g.Name)}
			}
			counts[g.ID] += v.Quantity
		}
	}

	for _, g := range item.VariationGroups {
		total := counts[g.ID]
		if total < g.MinRequired || total > g.MaxAllowed {
			return &SelectionError{GroupID: g.ID, Message: GroupMessage(g, total)}
		}
	}
	return nil
}

// GroupMessage renders the hint shown for a group given the selected total.
func GroupMessage(g domain.VariationGroup, count int) string {
	lo, hi := g.MinRequired, g.MaxAllowed
	if g.CustomMessage != "" {
		msg := strings.Replace(g.CustomMessage, "{min}", strconv.Itoa(lo), 1)
		msg = strings.Replace(msg, "{max}", strconv.Itoa(hi), 1)
		return strings.Replace(msg, "{count}", strconv.Itoa(count), 1)
	}
	name := strings.ToLower(g.Name)
	switch {
	case lo == hi:
		return fmt.Sprintf("Selecione exatamente %d unidades de %s (%d/%d selecionadas)", lo, name, count, lo)
	case lo > 0:
		return fmt.Sprintf("Selecione de %d a %d unidades de %s (%d/%d selecionadas)", lo, hi, name, count, hi)
	default:
		return fmt.Sprintf("Selecione até %d unidades de %s (opcional) (%d/%d selecionadas)", hi, name, count, hi)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
