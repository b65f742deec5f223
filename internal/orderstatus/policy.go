// Package orderstatus decides which status changes an order may take and
// what side fields a change implies.
package orderstatus

import (
	"errors"
	"strings"
	"time"

	"food-delivery/internal/domain"
)

var (
	ErrIllegalTransition = errors.New("transição de status não permitida")
	ErrReasonRequired    = errors.New("motivo do cancelamento é obrigatório")
	ErrDelivererRequired = errors.New("selecione um entregador")
)

// PaymentReceived reports whether the order is considered paid. Card and
// pix are collected up front.
func PaymentReceived(o domain.Order) bool {
	if o.PaymentStatus == domain.PaymentReceived {
		return true
	}
	return o.PaymentMethod == domain.PaymentCard || o.PaymentMethod == domain.PaymentPix
}

// IsTerminal reports whether no further transitions are offered.
func IsTerminal(s domain.OrderStatus) bool {
	return s == domain.StatusDelivered || s == domain.StatusCancelled
}

// NextOptions lists the statuses an operator may move an order to. It is
// total: unknown statuses yield an empty list.
func NextOptions(current domain.OrderStatus, paymentReceived bool, method domain.PaymentMethod) []domain.OrderStatus {
	if current == domain.StatusAccepted {
		current = domain.StatusConfirmed
	}
	var next domain.OrderStatus
	switch current {
	case domain.StatusPending:
		next = domain.StatusConfirmed
	case domain.StatusConfirmed:
		next = domain.StatusPreparing
	case domain.StatusPreparing:
		next = domain.StatusReady
	case domain.StatusReady:
		next = domain.StatusDelivering
	case domain.StatusDelivering:
		switch {
		case method == domain.PaymentPayrollDiscount:
			next = domain.StatusToDeduct
		case method == domain.PaymentCash && !paymentReceived:
			next = domain.StatusReceived
		default:
			next = domain.StatusDelivered
		}
	case domain.StatusReceived:
		next = domain.StatusDelivered
	case domain.StatusToDeduct:
		if method != domain.PaymentPayrollDiscount {
			return nil
		}
		next = domain.StatusPaid
	case domain.StatusPaid:
		if method != domain.PaymentPayrollDiscount {
			return nil
		}
		return []domain.OrderStatus{domain.StatusCancelled}
	default:
		return nil
	}
	return []domain.OrderStatus{next, domain.StatusCancelled}
}

// OptionsFor is NextOptions evaluated against an order.
func OptionsFor(o domain.Order) []domain.OrderStatus {
	return NextOptions(o.Status, PaymentReceived(o), o.PaymentMethod)
}

// Transition is a requested status change.
type Transition struct {
	To          domain.OrderStatus
	Reason      string
	DelivererID string
}

// Change is the full set of fields to write for an accepted transition.
type Change struct {
	From               domain.OrderStatus
	To                 domain.OrderStatus
	PaymentStatus      domain.PaymentStatus
	DeliveredAt        *time.Time
	DelivererID        *string
	CancellationReason string
}

// Plan validates t against o and returns the resulting change.
func Plan(o domain.Order, t Transition, now time.Time) (Change, error) {
	to := t.To
	if to == domain.StatusAccepted {
		to = domain.StatusConfirmed
	}
	if !allowed(o, to) {
		return Change{}, ErrIllegalTransition
	}

	ch := base(o, to, now)
	switch to {
	case domain.StatusCancelled:
		reason := strings.TrimSpace(t.Reason)
		if reason == "" {
			return Change{}, ErrReasonRequired
		}
		ch.CancellationReason = reason
	case domain.StatusDelivering:
		id := strings.TrimSpace(t.DelivererID)
		if id == "" {
			return Change{}, ErrDelivererRequired
		}
		ch.DelivererID = &id
	case domain.StatusReceived, domain.StatusPaid:
		ch.PaymentStatus = domain.PaymentReceived
	}
	return ch, nil
}

// Finalize plans the payroll edge from paid to delivered.
func Finalize(o domain.Order, now time.Time) (Change, error) {
	if o.PaymentMethod != domain.PaymentPayrollDiscount || o.Status != domain.StatusPaid {
		return Change{}, ErrIllegalTransition
	}
	return base(o, domain.StatusDelivered, now), nil
}

// Correct is the administrative override: any known status may be set.
// Cancelling still needs a reason and delivering still needs a deliverer,
// either already on the order or supplied in t.
func Correct(o domain.Order, t Transition, now time.Time) (Change, error) {
	to := t.To
	if _, ok := domain.ParseOrderStatus(string(to)); !ok {
		return Change{}, ErrIllegalTransition
	}
	if to == domain.StatusAccepted {
		to = domain.StatusConfirmed
	}
	ch := base(o, to, now)
	switch to {
	case domain.StatusCancelled:
		reason := strings.TrimSpace(t.Reason)
		if reason == "" {
			return Change{}, ErrReasonRequired
		}
		ch.CancellationReason = reason
	case domain.StatusDelivering:
		if id := strings.TrimSpace(t.DelivererID); id != "" {
			ch.DelivererID = &id
		}
		if ch.DelivererID == nil || *ch.DelivererID == "" {
			return Change{}, ErrDelivererRequired
		}
	}
	return ch, nil
}

// ConfirmDelivery plans the courier hand-over of a delivering order. Cash
// still to collect goes to received; everything else is delivered. Payroll
// orders skip to_deduct here and keep paymentStatus a_receber, so they stay
// in the to_deduct listing until the deduction is booked.
func ConfirmDelivery(o domain.Order, now time.Time) (Change, error) {
	if o.Status != domain.StatusDelivering {
		return Change{}, ErrIllegalTransition
	}
	if o.PaymentMethod == domain.PaymentCash && !PaymentReceived(o) {
		return Plan(o, Transition{To: domain.StatusReceived}, now)
	}
	return base(o, domain.StatusDelivered, now), nil
}

func allowed(o domain.Order, to domain.OrderStatus) bool {
	for _, s := range OptionsFor(o) {
		if s == to {
			return true
		}
	}
	return false
}

func base(o domain.Order, to domain.OrderStatus, now time.Time) Change {
	ch := Change{
		From:          o.Status,
		To:            to,
		PaymentStatus: o.PaymentStatus,
		DelivererID:   o.DelivererID,
	}
	if to == domain.StatusCancelled {
		ch.CancellationReason = o.CancellationReason
	}
	switch {
	case to == domain.StatusDelivered && o.Status == domain.StatusDelivered && o.DeliveredAt != nil:
		ch.DeliveredAt = o.DeliveredAt
	case to == domain.StatusDelivered:
		at := now
		ch.DeliveredAt = &at
	default:
		ch.DeliveredAt = nil
	}
	return ch
}

// Apply returns o with ch written onto it.
func Apply(o domain.Order, ch Change) domain.Order {
	o.Status = ch.To
	o.PaymentStatus = ch.PaymentStatus
	o.DeliveredAt = ch.DeliveredAt
	o.DelivererID = ch.DelivererID
	o.CancellationReason = ch.CancellationReason
	return o
}
