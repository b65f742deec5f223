// Package order places orders from carts and drives their status through
// the transition policy. Every committed write is reported to the hook.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"food-delivery/internal/cart"
	"food-delivery/internal/domain"
	"food-delivery/internal/orderstatus"
	orderrepo "food-delivery/internal/repository/order"
)

var ErrDelivererUnavailable = errors.New("entregador inexistente ou inativo")

type Service struct {
	repo       orderrepo.Repository
	coupons    couponValidator
	deliverers delivererLookup
	hook       hook
	logger     *zap.SugaredLogger
	now        func() time.Time
}

type couponValidator interface {
	Validate(ctx context.Context, code, companyID string, asOf time.Time) (*domain.Coupon, error)
}

type delivererLookup interface {
	GetByID(ctx context.Context, companyID, id string) (*domain.User, error)
}

type hook interface {
	OrderStatusCommitted(ctx context.Context, ev domain.OrderStatusEvent)
}

type Options struct {
	Coupons    couponValidator
	Deliverers delivererLookup
	Hook       hook
	Logger     *zap.SugaredLogger
	Now        func() time.Time
}

func New(repo orderrepo.Repository, opts Options) *Service {
	s := &Service{
		repo:       repo,
		coupons:    opts.Coupons,
		deliverers: opts.Deliverers,
		hook:       opts.Hook,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type CheckoutInput struct {
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	Address       domain.Address `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	Observations  string         `json:"observations"`
}

// PDVInput is a counter sale. The address is optional.
type PDVInput struct {
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Address       *domain.Address `json:"address,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Observations  string          `json:"observations"`
}

// Checkout places a delivery order from st. Prices and totals are computed
// here from the cart rows; the applied coupon is validated again as of now.
func (s *Service) Checkout(ctx context.Context, companyID string, st cart.State, in CheckoutInput) (*domain.Order, error) {
	if len(st.Items) == 0 {
		return nil, domain.Invalid("items", "carrinho vazio")
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, domain.Invalid("customerName", "nome é obrigatório")
	}
	phone := strings.TrimSpace(in.CustomerPhone)
	if phone == "" {
		return nil, domain.Invalid("customerPhone", "telefone é obrigatório")
	}
	addr := trimAddress(in.Address)
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	method, ok := domain.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, domain.Invalid("paymentMethod", "forma de pagamento inválida")
	}

	o, err := s.build(ctx, companyID, st)
	if err != nil {
		return nil, err
	}
	o.CustomerName = name
	o.CustomerPhone = phone
	o.Address = addr
	o.PaymentMethod = method
	o.Observations = strings.TrimSpace(in.Observations)
	o.Status = domain.StatusPending
	o.PaymentStatus = domain.PaymentPending
	return s.create(ctx, o)
}

// CreatePDV places a point-of-sale order. Card and pix are paid at the
// counter. Payroll discount sales are handed over immediately and settled
// later through the to_deduct flow.
func (s *Service) CreatePDV(ctx context.Context, companyID string, st cart.State, in PDVInput) (*domain.Order, error) {
	if len(st.Items) == 0 {
		return nil, domain.Invalid("items", "carrinho vazio")
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, domain.Invalid("customerName", "nome é obrigatório")
	}
	method, ok := domain.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, domain.Invalid("paymentMethod", "forma de pagamento inválida")
	}

	o, err := s.build(ctx, companyID, st)
	if err != nil {
		return nil, err
	}
	o.CustomerName = name
	o.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	if in.Address != nil {
		o.Address = trimAddress(*in.Address)
	}
	o.PaymentMethod = method
	o.Observations = strings.TrimSpace(in.Observations)
	o.Status = domain.StatusPending
	o.PaymentStatus = domain.PaymentPending
	switch method {
	case domain.PaymentCard, domain.PaymentPix:
		o.PaymentStatus = domain.PaymentReceived
	case domain.PaymentPayrollDiscount:
		at := s.now()
		o.Status = domain.StatusDelivered
		o.DeliveredAt = &at
	}
	return s.create(ctx, o)
}

func (s *Service) build(ctx context.Context, companyID string, st cart.State) (domain.Order, error) {
	if st.AppliedCoupon != nil {
		if s.coupons == nil {
			return domain.Order{}, errors.New("coupon validator unavailable")
		}
		c, err := s.coupons.Validate(ctx, st.AppliedCoupon.Code, companyID, s.now())
		if err != nil {
			return domain.Order{}, err
		}
		st.AppliedCoupon = c
	}

	totals := cart.ComputeTotals(st)
	items := make([]domain.OrderItem, 0, len(st.Items))
	for _, it := range st.Items {
		sel := it.SelectedVariations
		if sel == nil {
			sel = []domain.SelectedVariationGroup{}
		}
		items = append(items, domain.OrderItem{
			MenuItemID:         it.MenuItemID,
			Name:               it.Name,
			Price:              it.Price,
			Quantity:           it.Quantity,
			Notes:              it.Notes,
			PriceFrom:          it.PriceFrom,
			SelectedVariations: sel,
			Subtotal:           cart.LineSubtotal(it),
		})
	}

	o := domain.Order{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		Items:          items,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
	}
	if c := st.AppliedCoupon; c != nil {
		code, typ, val := c.Code, c.Type, c.Value
		o.CouponCode = &code
		o.CouponType = &typ
		o.CouponValue = &val
	}
	return o, nil
}

func (s *Service) create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	s.fire(ctx, domain.EventOrderCreated, "", *created, "")
	return created, nil
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, companyID, id)
}

// ListInput selects orders. From and To are calendar days; the range covers
// From's first instant through To's last.
type ListInput struct {
	From          *time.Time
	To            *time.Time
	Statuses      []domain.OrderStatus
	PaymentMethod domain.PaymentMethod
	PaymentStatus domain.PaymentStatus
	DelivererID   string
	// ToDeduct selects payroll orders whose payment is still pending.
	ToDeduct bool
	Limit    int
}

func (s *Service) List(ctx context.Context, companyID string, in ListInput) ([]domain.Order, error) {
	f := orderrepo.ListFilter{
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: in.PaymentStatus,
		DelivererID:   in.DelivererID,
		Limit:         in.Limit,
	}
	if in.From != nil {
		from := StartOfDay(*in.From)
		f.From = &from
	}
	if in.To != nil {
		to := EndOfDay(*in.To)
		f.To = &to
	}
	for _, st := range in.Statuses {
		// to_deduct is a filter alias as well as a status.
		if st == domain.StatusToDeduct && len(in.Statuses) == 1 {
			in.ToDeduct = true
			continue
		}
		f.Statuses = append(f.Statuses, st)
	}
	if in.ToDeduct {
		f.PaymentMethod = domain.PaymentPayrollDiscount
		f.PaymentStatus = domain.PaymentPending
	}
	return s.repo.List(ctx, companyID, f)
}

// StatusInput requests a status change. ExpectedUpdatedAt, when set, makes
// the write fail with domain.ErrConflict if the order changed meanwhile.
type StatusInput struct {
	To                domain.OrderStatus
	Reason            string
	DelivererID       string
	ExpectedUpdatedAt *time.Time
	UserID            string
}

// Options lists the statuses the order may move to next.
func (s *Service) Options(ctx context.Context, companyID, id string) ([]domain.OrderStatus, error) {
	o, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return orderstatus.OptionsFor(*o), nil
}

func (s *Service) UpdateStatus(ctx context.Context, companyID, id string, in StatusInput) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	ch, err := orderstatus.Plan(*o, orderstatus.Transition{To: in.To, Reason: in.Reason, DelivererID: in.DelivererID}, s.now())
	if err != nil {
		return nil, err
	}
	if ch.To == domain.StatusDelivering {
		if err := s.checkDeliverer(ctx, companyID, *ch.DelivererID); err != nil {
			return nil, err
		}
	}
	return s.commit(ctx, companyID, *o, ch, in.ExpectedUpdatedAt, in.UserID)
}

// Correct sets any known status regardless of the forward path. A cancel
// still needs in.Reason and delivering still needs a deliverer.
func (s *Service) Correct(ctx context.Context, companyID, id string, in StatusInput) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	ch, err := orderstatus.Correct(*o, orderstatus.Transition{To: in.To, Reason: in.Reason, DelivererID: in.DelivererID}, s.now())
	if err != nil {
		return nil, err
	}
	if ch.To == domain.StatusDelivering && strings.TrimSpace(in.DelivererID) != "" {
		if err := s.checkDeliverer(ctx, companyID, *ch.DelivererID); err != nil {
			return nil, err
		}
	}
	return s.commit(ctx, companyID, *o, ch, in.ExpectedUpdatedAt, in.UserID)
}

// Finalize closes a paid payroll order.
func (s *Service) Finalize(ctx context.Context, companyID, id, userID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	ch, err := orderstatus.Finalize(*o, s.now())
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, companyID, *o, ch, nil, userID)
}

func (s *Service) commit(ctx context.Context, companyID string, o domain.Order, ch orderstatus.Change, expected *time.Time, userID string) (*domain.Order, error) {
	updated, err := s.repo.UpdateStatus(ctx, companyID, o.ID, orderrepo.StatusUpdate{
		Status:             ch.To,
		PaymentStatus:      ch.PaymentStatus,
		DelivererID:        ch.DelivererID,
		CancellationReason: ch.CancellationReason,
		DeliveredAt:        ch.DeliveredAt,
		ExpectedUpdatedAt:  expected,
	})
	if err != nil {
		return nil, err
	}
	s.fire(ctx, domain.EventOrderStatusChanged, ch.From, *updated, userID)
	return updated, nil
}

func (s *Service) checkDeliverer(ctx context.Context, companyID, id string) error {
	if s.deliverers == nil {
		return nil
	}
	u, err := s.deliverers.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrDelivererUnavailable
		}
		return err
	}
	if u.Role != domain.RoleDeliverer || u.DelivererStatus != domain.DelivererActive {
		return ErrDelivererUnavailable
	}
	return nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, companyID, id string, status domain.PaymentStatus, userID string) (*domain.Order, error) {
	if _, ok := domain.ParsePaymentStatus(string(status)); !ok {
		return nil, domain.Invalid("paymentStatus", "status de pagamento inválido")
	}
	updated, err := s.repo.UpdatePaymentStatus(ctx, companyID, id, status)
	if err != nil {
		return nil, err
	}
	s.fire(ctx, domain.EventOrderPaymentStatusChanged, "", *updated, userID)
	return updated, nil
}

// CourierQueue lists the orders out for delivery on day. Couriers only see
// their own; admins see all of them.
func (s *Service) CourierQueue(ctx context.Context, companyID string, user *domain.User, day time.Time) ([]domain.Order, error) {
	in := ListInput{
		From:     &day,
		To:       &day,
		Statuses: []domain.OrderStatus{domain.StatusDelivering},
	}
	if user.Role != domain.RoleAdmin {
		in.DelivererID = user.ID
	}
	return s.List(ctx, companyID, in)
}

// ConfirmDelivery closes a delivering order: cash still to collect goes to
// received, everything else to delivered.
func (s *Service) ConfirmDelivery(ctx context.Context, companyID, id string, user *domain.User) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAdmin && (o.DelivererID == nil || *o.DelivererID != user.ID) {
		return nil, domain.ErrNotFound
	}
	ch, err := orderstatus.ConfirmDelivery(*o, s.now())
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, companyID, *o, ch, nil, user.ID)
}

func (s *Service) fire(ctx context.Context, eventType string, old domain.OrderStatus, o domain.Order, userID string) {
	if s.hook == nil {
		return
	}
	ev := domain.OrderStatusEvent{
		EventType: eventType,
		Order:     o,
		OldStatus: old,
		NewStatus: o.Status,
		Payment:   o.PaymentStatus,
		UserID:    userID,
		Timestamp: s.now(),
	}
	if o.Status == domain.StatusCancelled {
		ev.Reason = o.CancellationReason
	}
	s.hook.OrderStatusCommitted(ctx, ev)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func trimAddress(a domain.Address) domain.Address {
	a.Street = strings.TrimSpace(a.Street)
	a.Number = strings.TrimSpace(a.Number)
	a.Complement = strings.TrimSpace(a.Complement)
	a.Neighborhood = strings.TrimSpace(a.Neighborhood)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	return a
}

func validateAddress(a domain.Address) error {
	switch {
	case a.Street == "":
		return domain.Invalid("address.street", "rua é obrigatória")
	case a.Number == "":
		return domain.Invalid("address.number", "número é obrigatório")
	case a.Neighborhood == "":
		return domain.Invalid("address.neighborhood", "bairro é obrigatório")
	case a.City == "":
		return domain.Invalid("address.city", "cidade é obrigatória")
	}
	return nil
}
