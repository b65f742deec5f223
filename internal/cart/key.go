package cart

import (
	"sort"
	"strconv"
	"strings"

	"food-delivery/internal/domain"
)

// MergeKey identifies a cart row by product and selection signature. Two
// additions of the same item with the same positive-quantity selections
// share a key regardless of the order the selections were given in.
func MergeKey(menuItemID string, groups []domain.SelectedVariationGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		vars := make([]string, 0, len(g.Variations))
		for _, v := range g.Variations {
			if v.Quantity <= 0 {
				continue
			}
			vars = append(vars, v.VariationID+"-"+strconv.Itoa(v.Quantity))
		}
		if len(vars) == 0 {
			continue
		}
		sort.Strings(vars)
		parts = append(parts, g.GroupID+":"+strings.Join(vars, "."))
	}
	if len(parts) == 0 {
		return menuItemID
	}
	sort.Strings(parts)
	return menuItemID + "_" + strings.Join(parts, "_")
}

// NormalizeSelections drops zero-quantity variations and groups left empty.
// Group order is preserved.
func NormalizeSelections(groups []domain.SelectedVariationGroup) []domain.SelectedVariationGroup {
	if len(groups) == 0 {
		return nil
	}
	out := make([]domain.SelectedVariationGroup, 0, len(groups))
	for _, g := range groups {
		vars := make([]domain.SelectedVariation, 0, len(g.Variations))
		for _, v := range g.Variations {
			if v.Quantity > 0 {
				vars = append(vars, v)
			}
		}
		if len(vars) == 0 {
			continue
		}
		g.Variations = vars
		out = append(out, g)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
