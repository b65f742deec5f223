// Package cart keeps one cart per anonymous session in memory and applies
// mutations through the pure cart reducer.
package cart

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"food-delivery/internal/cart"
	"food-delivery/internal/domain"
)

var ErrItemUnavailable = errors.New("item indisponível")

type Service struct {
	menu       menuRepo
	variations variationCatalog
	coupons    couponValidator

	mu    sync.Mutex
	carts map[string]cartEntry
}

type menuRepo interface {
	GetByID(ctx context.Context, companyID, id string) (*domain.MenuItem, error)
}

type variationCatalog interface {
	Lookup(ctx context.Context, companyID string) map[string]domain.Variation
}

type couponValidator interface {
	Validate(ctx context.Context, code, companyID string, asOf time.Time) (*domain.Coupon, error)
}

type cartEntry struct {
	companyID string
	state     cart.State
}

func New(menu menuRepo, variations variationCatalog, coupons couponValidator) *Service {
	return &Service{
		menu:       menu,
		variations: variations,
		coupons:    coupons,
		carts:      make(map[string]cartEntry),
	}
}

// Quote is a cart snapshot with its derived totals.
type Quote struct {
	cart.State
	Totals cart.Totals `json:"totals"`
}

type AddInput struct {
	MenuItemID string                          `json:"menuItemId"`
	Quantity   int                             `json:"quantity"`
	Notes      string                          `json:"notes"`
	Selections []domain.SelectedVariationGroup `json:"selectedVariations"`
}

func (s *Service) Get(companyID, sessionID string) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(companyID, sessionID)
}

func (s *Service) Quote(companyID, sessionID string) Quote {
	st := s.Get(companyID, sessionID)
	return Quote{State: st, Totals: cart.ComputeTotals(st)}
}

// Add loads the menu item, fills names and prices of the selected
// variations from the catalog and validates the group bounds before the
// row is merged into the cart.
func (s *Service) Add(ctx context.Context, companyID, sessionID string, in AddInput) (Quote, error) {
	id := strings.TrimSpace(in.MenuItemID)
	if id == "" {
		return Quote{}, domain.Invalid("menuItemId", "item obrigatório")
	}
	item, err := s.menu.GetByID(ctx, companyID, id)
	if err != nil {
		return Quote{}, err
	}
	if !item.Available {
		return Quote{}, ErrItemUnavailable
	}

	selections, err := s.enrich(ctx, companyID, *item, in.Selections)
	if err != nil {
		return Quote{}, err
	}
	if err := cart.ValidateSelections(*item, selections); err != nil {
		return Quote{}, err
	}

	return s.dispatch(companyID, sessionID, cart.AddItem{
		Item:       *item,
		Quantity:   in.Quantity,
		Notes:      strings.TrimSpace(in.Notes),
		Selections: selections,
	}), nil
}

func (s *Service) enrich(ctx context.Context, companyID string, item domain.MenuItem, in []domain.SelectedVariationGroup) ([]domain.SelectedVariationGroup, error) {
	if len(in) == 0 {
		return nil, nil
	}
	catalog := s.variations.Lookup(ctx, companyID)
	groupNames := make(map[string]string, len(item.VariationGroups))
	for _, g := range item.VariationGroups {
		groupNames[g.ID] = g.Name
	}

	out := make([]domain.SelectedVariationGroup, 0, len(in))
	for _, g := range in {
		g.GroupName = groupNames[g.GroupID]
		vars := make([]domain.SelectedVariation, 0, len(g.Variations))
		for _, v := range g.Variations {
			cv, ok := catalog[v.VariationID]
			switch {
			case !ok && v.Quantity > 0:
				return nil, &cart.SelectionError{GroupID: g.GroupID, Message: "variação " + v.VariationID + " não existe"}
			case !ok:
				// Unselected rows are only echoed back.
				v.Name = ""
				v.AdditionalPrice = decimal.Zero
			case !cv.Available && v.Quantity > 0:
				return nil, &cart.SelectionError{GroupID: g.GroupID, Message: cv.Name + " está indisponível"}
			default:
				v.Name = cv.Name
				v.AdditionalPrice = cv.AdditionalPrice
			}
			vars = append(vars, v)
		}
		g.Variations = vars
		out = append(out, g)
	}
	return out, nil
}

func (s *Service) ChangeQuantity(companyID, sessionID, key string, quantity int) Quote {
	return s.dispatch(companyID, sessionID, cart.ChangeQuantity{Key: key, Quantity: quantity})
}

func (s *Service) Increase(companyID, sessionID, key string) Quote {
	return s.dispatch(companyID, sessionID, cart.IncreaseQuantity{Key: key})
}

func (s *Service) Decrease(companyID, sessionID, key string) Quote {
	return s.dispatch(companyID, sessionID, cart.DecreaseQuantity{Key: key})
}

func (s *Service) Remove(companyID, sessionID, key string) Quote {
	return s.dispatch(companyID, sessionID, cart.RemoveItem{Key: key})
}

func (s *Service) Clear(companyID, sessionID string) Quote {
	return s.dispatch(companyID, sessionID, cart.Clear{})
}

// ApplyCoupon validates code as of now and attaches it to the cart. An
// empty cart cannot take a coupon.
func (s *Service) ApplyCoupon(ctx context.Context, companyID, sessionID, code string, now time.Time) (Quote, error) {
	if len(s.Get(companyID, sessionID).Items) == 0 {
		return Quote{}, domain.Invalid("items", "carrinho vazio")
	}
	c, err := s.coupons.Validate(ctx, code, companyID, now)
	if err != nil {
		return Quote{}, err
	}
	return s.dispatch(companyID, sessionID, cart.ApplyCoupon{Coupon: *c}), nil
}

func (s *Service) RemoveCoupon(companyID, sessionID string) Quote {
	return s.dispatch(companyID, sessionID, cart.RemoveCoupon{})
}

// Take returns the cart and empties it, as done once an order is placed.
func (s *Service) Take(companyID, sessionID string) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(companyID, sessionID)
	delete(s.carts, sessionID)
	return st
}

// Restore puts st back, used when checkout fails after Take. Items added
// to the session in the meantime are kept.
func (s *Service) Restore(companyID, sessionID string, st cart.State) {
	if len(st.Items) == 0 && st.AppliedCoupon == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cartEntry{companyID: companyID, state: cart.Merge(s.load(companyID, sessionID), st)}
}

// Drop forgets carts of expired sessions.
func (s *Service) Drop(sessionIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sessionIDs {
		delete(s.carts, id)
	}
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

func (s *Service) dispatch(companyID, sessionID string, a cart.Action) Quote {
	s.mu.Lock()
	next := cart.Reduce(s.load(companyID, sessionID), a)
	if len(next.Items) == 0 && next.AppliedCoupon == nil {
		delete(s.carts, sessionID)
	} else {
		s.carts[sessionID] = cartEntry{companyID: companyID, state: next}
	}
	s.mu.Unlock()
	return Quote{State: next, Totals: cart.ComputeTotals(next)}
}

// load must be called with mu held. A session only ever sees carts of the
// company it was issued for.
func (s *Service) load(companyID, sessionID string) cart.State {
	e, ok := s.carts[sessionID]
	if !ok || e.companyID != companyID {
		return cart.State{}
	}
	return e.state
}
