package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"-"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Variation is a paid add-on selectable for menu items.
type Variation struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"-"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
	Available       bool            `json:"available"`
	CategoryIDs     []string        `json:"categoryIds"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// VariationGroup bounds the total quantity selected across its variations.
// CustomMessage may use the {min}, {max} and {count} placeholders.
type VariationGroup struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MinRequired   int      `json:"minRequired"`
	MaxAllowed    int      `json:"maxAllowed"`
	VariationIDs  []string `json:"variations"`
	CustomMessage string   `json:"customMessage,omitempty"`
}

// MenuItem is a sellable product. When PriceFrom is set the nominal Price is
// indicative only and is never charged.
type MenuItem struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"-"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	Image           string           `json:"image,omitempty"`
	CategoryID      string           `json:"category"`
	Popular         bool             `json:"popular"`
	Available       bool             `json:"available"`
	PriceFrom       bool             `json:"priceFrom"`
	VariationGroups []VariationGroup `json:"variationGroups,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// SelectedVariation is a cart-time choice inside a group.
type SelectedVariation struct {
	VariationID     string          `json:"variationId"`
	Quantity        int             `json:"quantity"`
	Name            string          `json:"name,omitempty"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
}

type SelectedVariationGroup struct {
	GroupID    string              `json:"groupId"`
	GroupName  string              `json:"groupName,omitempty"`
	Variations []SelectedVariation `json:"variations"`
}
