package httpserver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"food-delivery/internal/cart"
	"food-delivery/internal/domain"
	authsvc "food-delivery/internal/service/auth"
	cartsvc "food-delivery/internal/service/cart"
	delivsvc "food-delivery/internal/service/deliverer"
	menusvc "food-delivery/internal/service/menu"
	ordersvc "food-delivery/internal/service/order"
	sessionsvc "food-delivery/internal/service/session"
)

func logDiscard() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

type stubCompanyRepo struct {
	company *domain.Company
	err     error
}

func (s *stubCompanyRepo) GetBySlug(_ context.Context, _ string) (*domain.Company, error) {
	return s.company, s.err
}

type stubAuthService struct {
	user     *domain.User
	session  *authsvc.Session
	loginErr error
	signErr  error
	meErr    error
}

func (s *stubAuthService) Signup(_ context.Context, _ string, _ authsvc.SignupInput) (*domain.User, error) {
	return s.user, s.signErr
}

func (s *stubAuthService) SignupAdmin(_ context.Context, _ authsvc.AdminSignupInput) (*domain.Company, *domain.User, error) {
	return &domain.Company{ID: "company-id", Slug: "demo"}, s.user, s.signErr
}

func (s *stubAuthService) CreateUser(_ context.Context, _ string, u domain.User, _ string) (*domain.User, error) {
	return &u, s.signErr
}

func (s *stubAuthService) Login(_ context.Context, _, _, _ string) (*authsvc.Session, error) {
	return s.session, s.loginErr
}

func (s *stubAuthService) Refresh(_ context.Context, _, _ string) (*authsvc.Session, error) {
	return s.session, s.loginErr
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) LookupByToken(_ context.Context, _, _ string) (*domain.User, error) {
	return s.user, s.meErr
}

func (s *stubAuthService) RequestPasswordReset(_ context.Context, _, _ string) (string, error) {
	return "reset-token", nil
}

func (s *stubAuthService) ResetPassword(_ context.Context, _, _, _ string) error { return nil }

type stubSessionService struct {
	err error
}

func (s *stubSessionService) Issue(_ context.Context, _ string) (*sessionsvc.Session, error) {
	return &sessionsvc.Session{Token: "cart-token", ID: "session-id", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *stubSessionService) Lookup(_ context.Context, _, token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "session-" + token, nil
}

// stubCartService holds a single cart whatever the session.
type stubCartService struct {
	state    cart.State
	addErr   error
	restored bool
}

func (s *stubCartService) quote() cartsvc.Quote {
	return cartsvc.Quote{State: s.state, Totals: cart.ComputeTotals(s.state)}
}

func (s *stubCartService) Quote(_, _ string) cartsvc.Quote { return s.quote() }

func (s *stubCartService) Add(_ context.Context, _, _ string, in cartsvc.AddInput) (cartsvc.Quote, error) {
	if s.addErr != nil {
		return cartsvc.Quote{}, s.addErr
	}
	s.state = cart.Reduce(s.state, cart.AddItem{Item: domain.MenuItem{ID: in.MenuItemID, Name: in.MenuItemID}, Quantity: in.Quantity})
	return s.quote(), nil
}

func (s *stubCartService) ChangeQuantity(_, _, _ string, _ int) cartsvc.Quote { return s.quote() }
func (s *stubCartService) Increase(_, _, _ string) cartsvc.Quote              { return s.quote() }
func (s *stubCartService) Decrease(_, _, _ string) cartsvc.Quote              { return s.quote() }
func (s *stubCartService) Remove(_, _, _ string) cartsvc.Quote                { return s.quote() }
func (s *stubCartService) Clear(_, _ string) cartsvc.Quote                    { return cartsvc.Quote{} }
func (s *stubCartService) RemoveCoupon(_, _ string) cartsvc.Quote             { return s.quote() }

func (s *stubCartService) ApplyCoupon(_ context.Context, _, _, _ string, _ time.Time) (cartsvc.Quote, error) {
	return s.quote(), nil
}

func (s *stubCartService) Take(_, _ string) cart.State {
	st := s.state
	s.state = cart.State{}
	return st
}

func (s *stubCartService) Restore(_, _ string, st cart.State) {
	s.state = st
	s.restored = true
}

type stubOrderService struct {
	order     *domain.Order
	err       error
	lastList  ordersvc.ListInput
	lastInput ordersvc.StatusInput
}

func (s *stubOrderService) Checkout(_ context.Context, _ string, _ cart.State, _ ordersvc.CheckoutInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) CreatePDV(_ context.Context, _ string, _ cart.State, _ ordersvc.PDVInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) List(_ context.Context, _ string, in ordersvc.ListInput) ([]domain.Order, error) {
	s.lastList = in
	if s.order == nil {
		return nil, s.err
	}
	return []domain.Order{*s.order}, s.err
}

func (s *stubOrderService) Options(_ context.Context, _, _ string) ([]domain.OrderStatus, error) {
	return []domain.OrderStatus{domain.StatusAccepted, domain.StatusCancelled}, s.err
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _, _ string, in ordersvc.StatusInput) (*domain.Order, error) {
	s.lastInput = in
	return s.order, s.err
}

func (s *stubOrderService) Correct(_ context.Context, _, _ string, in ordersvc.StatusInput) (*domain.Order, error) {
	s.lastInput = in
	return s.order, s.err
}

func (s *stubOrderService) Finalize(_ context.Context, _, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) UpdatePaymentStatus(_ context.Context, _, _ string, _ domain.PaymentStatus, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) CourierQueue(_ context.Context, _ string, _ *domain.User, _ time.Time) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) ConfirmDelivery(_ context.Context, _, _ string, _ *domain.User) (*domain.Order, error) {
	return s.order, s.err
}

type stubMenuService struct {
	menu *menusvc.Menu
}

func (s *stubMenuService) Menu(_ context.Context, _ string) (*menusvc.Menu, error) {
	if s.menu == nil {
		return &menusvc.Menu{}, nil
	}
	return s.menu, nil
}

func (s *stubMenuService) List(_ context.Context, _ string) ([]domain.MenuItem, error) {
	return nil, nil
}

func (s *stubMenuService) Get(_ context.Context, _, _ string) (*domain.MenuItem, error) {
	return nil, domain.ErrNotFound
}

func (s *stubMenuService) Create(_ context.Context, _ string, m domain.MenuItem) (*domain.MenuItem, error) {
	return &m, nil
}

func (s *stubMenuService) Update(_ context.Context, _, _ string, m domain.MenuItem) (*domain.MenuItem, error) {
	return &m, nil
}

func (s *stubMenuService) Delete(_ context.Context, _, _ string) error { return nil }

func (s *stubMenuService) SetAvailable(_ context.Context, _, _ string, _ bool) (*domain.MenuItem, error) {
	return &domain.MenuItem{}, nil
}

type stubCategoryService struct{}

func (stubCategoryService) List(_ context.Context, _ string) ([]domain.Category, error) {
	return nil, nil
}

func (stubCategoryService) Upsert(_ context.Context, _ string, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

func (stubCategoryService) Delete(_ context.Context, _, _ string) error { return nil }

type stubVariationService struct{}

func (stubVariationService) List(_ context.Context, _ string) ([]domain.Variation, error) {
	return nil, nil
}

func (stubVariationService) Create(_ context.Context, _ string, v domain.Variation) (*domain.Variation, error) {
	return &v, nil
}

func (stubVariationService) Update(_ context.Context, _, _ string, v domain.Variation) (*domain.Variation, error) {
	return &v, nil
}

func (stubVariationService) Delete(_ context.Context, _, _ string) error { return nil }

func (stubVariationService) SetAvailable(_ context.Context, _, _ string, _ bool) (*domain.Variation, error) {
	return &domain.Variation{}, nil
}

type stubCouponService struct{}

func (stubCouponService) List(_ context.Context, _ string) ([]domain.Coupon, error) {
	return nil, nil
}

func (stubCouponService) Create(_ context.Context, _ string, c domain.Coupon) (*domain.Coupon, error) {
	return &c, nil
}

func (stubCouponService) Update(_ context.Context, _, _ string, c domain.Coupon) (*domain.Coupon, error) {
	return &c, nil
}

func (stubCouponService) Delete(_ context.Context, _, _ string) error { return nil }

func (stubCouponService) SetActive(_ context.Context, _, _ string, _ bool) (*domain.Coupon, error) {
	return &domain.Coupon{}, nil
}

type stubDelivererService struct{}

func (stubDelivererService) List(_ context.Context, _ string) ([]domain.User, error) {
	return nil, nil
}

func (stubDelivererService) ListActive(_ context.Context, _ string) ([]domain.User, error) {
	return nil, nil
}

func (stubDelivererService) Create(_ context.Context, _ string, in delivsvc.Input) (*domain.User, error) {
	return &domain.User{Name: in.Name, Role: domain.RoleDeliverer}, nil
}

func (stubDelivererService) Update(_ context.Context, _, _ string, in delivsvc.Input) (*domain.User, error) {
	return &domain.User{Name: in.Name, Role: domain.RoleDeliverer}, nil
}

func (stubDelivererService) Toggle(_ context.Context, _, _ string) (*domain.User, error) {
	return &domain.User{Role: domain.RoleDeliverer}, nil
}

var demoCompany = &domain.Company{ID: "company-id", Slug: "demo", Name: "Demo"}

// testDeps returns a complete set of stubs. Tests overwrite what they need.
func testDeps() Deps {
	return Deps{
		CompanyRepo:  &stubCompanyRepo{company: demoCompany},
		AuthSvc:      &stubAuthService{},
		SessionSvc:   &stubSessionService{},
		CartSvc:      &stubCartService{},
		OrderSvc:     &stubOrderService{},
		MenuSvc:      &stubMenuService{},
		CategorySvc:  stubCategoryService{},
		VariationSvc: stubVariationService{},
		CouponSvc:    stubCouponService{},
		DelivererSvc: stubDelivererService{},
	}
}
