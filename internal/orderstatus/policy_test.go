package orderstatus

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"food-delivery/internal/domain"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestNextOptions_TerminalStatesOfferNothing(t *testing.T) {
	methods := []domain.PaymentMethod{domain.PaymentCard, domain.PaymentCash, domain.PaymentPix, domain.PaymentPayrollDiscount}
	for _, s := range []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled} {
		for _, m := range methods {
			for _, paid := range []bool{true, false} {
				if got := NextOptions(s, paid, m); len(got) != 0 {
					t.Fatalf("%s/%s/%v: expected no options, got %v", s, m, paid, got)
				}
			}
		}
	}
}

func TestNextOptions_Table(t *testing.T) {
	c, cash, payroll := domain.PaymentCard, domain.PaymentCash, domain.PaymentPayrollDiscount
	cases := []struct {
		current domain.OrderStatus
		paid    bool
		method  domain.PaymentMethod
		want    []domain.OrderStatus
	}{
		{domain.StatusPending, true, c, []domain.OrderStatus{domain.StatusConfirmed, domain.StatusCancelled}},
		{domain.StatusAccepted, true, c, []domain.OrderStatus{domain.StatusPreparing, domain.StatusCancelled}},
		{domain.StatusReady, false, cash, []domain.OrderStatus{domain.StatusDelivering, domain.StatusCancelled}},
		{domain.StatusDelivering, false, cash, []domain.OrderStatus{domain.StatusReceived, domain.StatusCancelled}},
		{domain.StatusDelivering, true, cash, []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled}},
		{domain.StatusDelivering, true, c, []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled}},
		{domain.StatusReceived, true, cash, []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled}},
		{domain.StatusDelivering, false, payroll, []domain.OrderStatus{domain.StatusToDeduct, domain.StatusCancelled}},
		{domain.StatusToDeduct, false, payroll, []domain.OrderStatus{domain.StatusPaid, domain.StatusCancelled}},
		{domain.StatusPaid, true, payroll, []domain.OrderStatus{domain.StatusCancelled}},
		{domain.StatusToDeduct, false, cash, nil},
		{"bogus", false, cash, nil},
	}
	for _, tc := range cases {
		got := NextOptions(tc.current, tc.paid, tc.method)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s/%v/%s: expected %v, got %v", tc.current, tc.paid, tc.method, tc.want, got)
		}
	}
}

func TestPlan_PayrollScenario(t *testing.T) {
	o := domain.Order{Status: domain.StatusReady, PaymentMethod: domain.PaymentPayrollDiscount, PaymentStatus: domain.PaymentPending}

	ch, err := Plan(o, Transition{To: domain.StatusDelivering, DelivererID: "d1"}, now)
	if err != nil {
		t.Fatalf("delivering: %v", err)
	}
	o = Apply(o, ch)
	if o.DelivererID == nil || *o.DelivererID != "d1" {
		t.Fatalf("expected deliverer d1")
	}

	ch, err = Plan(o, Transition{To: domain.StatusToDeduct}, now)
	if err != nil {
		t.Fatalf("to_deduct: %v", err)
	}
	o = Apply(o, ch)
	if o.PaymentStatus != domain.PaymentPending {
		t.Fatalf("to_deduct must keep payment pending")
	}

	ch, err = Plan(o, Transition{To: domain.StatusPaid}, now)
	if err != nil {
		t.Fatalf("paid: %v", err)
	}
	o = Apply(o, ch)
	if o.PaymentStatus != domain.PaymentReceived {
		t.Fatalf("paid must mark payment received, got %s", o.PaymentStatus)
	}

	ch, err = Finalize(o, now)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	o = Apply(o, ch)
	if o.Status != domain.StatusDelivered || o.DeliveredAt == nil || !o.DeliveredAt.Equal(now) {
		t.Fatalf("expected delivered at %s, got %+v", now, o)
	}
}

func TestPlan_CashReceivedSetsPayment(t *testing.T) {
	o := domain.Order{Status: domain.StatusDelivering, PaymentMethod: domain.PaymentCash, PaymentStatus: domain.PaymentPending}
	ch, err := Plan(o, Transition{To: domain.StatusReceived}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.PaymentStatus != domain.PaymentReceived {
		t.Fatalf("expected recebido, got %s", ch.PaymentStatus)
	}
	if ch.DeliveredAt != nil {
		t.Fatalf("received must not stamp deliveredAt")
	}
}

func TestPlan_Rejections(t *testing.T) {
	pending := domain.Order{Status: domain.StatusPending, PaymentMethod: domain.PaymentPix}
	ready := domain.Order{Status: domain.StatusReady, PaymentMethod: domain.PaymentPix}
	delivered := domain.Order{Status: domain.StatusDelivered, PaymentMethod: domain.PaymentPix}

	cases := []struct {
		name  string
		order domain.Order
		tr    Transition
		want  error
	}{
		{"skip ahead", pending, Transition{To: domain.StatusReady}, ErrIllegalTransition},
		{"cancel without reason", pending, Transition{To: domain.StatusCancelled, Reason: "   "}, ErrReasonRequired},
		{"delivering without deliverer", ready, Transition{To: domain.StatusDelivering}, ErrDelivererRequired},
		{"from terminal", delivered, Transition{To: domain.StatusCancelled, Reason: "x"}, ErrIllegalTransition},
		{"finalize non payroll", domain.Order{Status: domain.StatusPaid, PaymentMethod: domain.PaymentCash}, Transition{To: domain.StatusDelivered}, ErrIllegalTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Plan(tc.order, tc.tr, now); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPlan_CancelKeepsTrimmedReason(t *testing.T) {
	o := domain.Order{Status: domain.StatusPreparing, PaymentMethod: domain.PaymentCard}
	ch, err := Plan(o, Transition{To: domain.StatusCancelled, Reason: "  cliente desistiu "}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.CancellationReason != "cliente desistiu" {
		t.Fatalf("unexpected reason %q", ch.CancellationReason)
	}
}

func TestCorrect_ClearsAndKeepsDeliveredAt(t *testing.T) {
	earlier := now.Add(-time.Hour)
	courier := "d1"
	o := domain.Order{Status: domain.StatusDelivered, DeliveredAt: &earlier, DelivererID: &courier}

	ch, err := Correct(o, Transition{To: domain.StatusDelivering}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.DeliveredAt != nil {
		t.Fatalf("leaving delivered must clear deliveredAt")
	}
	if ch.DelivererID == nil || *ch.DelivererID != "d1" {
		t.Fatalf("expected existing deliverer to be kept, got %v", ch.DelivererID)
	}

	ch, err = Correct(o, Transition{To: domain.StatusDelivered}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.DeliveredAt == nil || !ch.DeliveredAt.Equal(earlier) {
		t.Fatalf("re-setting delivered must keep the first timestamp")
	}

	if _, err := Correct(o, Transition{To: "bogus"}, now); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestCorrect_KeepsCancelAndDeliveringRules(t *testing.T) {
	o := domain.Order{Status: domain.StatusReady, PaymentMethod: domain.PaymentCard}

	if _, err := Correct(o, Transition{To: domain.StatusCancelled, Reason: "  "}, now); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("cancel without reason: expected ErrReasonRequired, got %v", err)
	}
	ch, err := Correct(o, Transition{To: domain.StatusCancelled, Reason: " cliente desistiu "}, now)
	if err != nil || ch.CancellationReason != "cliente desistiu" {
		t.Fatalf("expected trimmed reason, got %q %v", ch.CancellationReason, err)
	}

	if _, err := Correct(o, Transition{To: domain.StatusDelivering}, now); !errors.Is(err, ErrDelivererRequired) {
		t.Fatalf("delivering without deliverer: expected ErrDelivererRequired, got %v", err)
	}
	ch, err = Correct(o, Transition{To: domain.StatusDelivering, DelivererID: "d2"}, now)
	if err != nil || ch.DelivererID == nil || *ch.DelivererID != "d2" {
		t.Fatalf("expected supplied deliverer, got %v %v", ch.DelivererID, err)
	}
}

func TestCorrect_RevertingCancelledClearsReason(t *testing.T) {
	o := domain.Order{Status: domain.StatusCancelled, CancellationReason: "x"}

	ch, err := Correct(o, Transition{To: domain.StatusPending}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.CancellationReason != "" {
		t.Fatalf("expected reason cleared, got %q", ch.CancellationReason)
	}
	if got := Apply(o, ch); got.CancellationReason != "" || got.Status != domain.StatusPending {
		t.Fatalf("unexpected applied order %+v", got)
	}
}

func TestConfirmDelivery(t *testing.T) {
	courier := "d1"
	cases := []struct {
		method  domain.PaymentMethod
		payment domain.PaymentStatus
		want    domain.OrderStatus
		paid    domain.PaymentStatus
	}{
		{domain.PaymentCash, domain.PaymentPending, domain.StatusReceived, domain.PaymentReceived},
		{domain.PaymentCash, domain.PaymentReceived, domain.StatusDelivered, domain.PaymentReceived},
		{domain.PaymentCard, domain.PaymentPending, domain.StatusDelivered, domain.PaymentPending},
		{domain.PaymentPayrollDiscount, domain.PaymentPending, domain.StatusDelivered, domain.PaymentPending},
	}
	for _, tc := range cases {
		o := domain.Order{Status: domain.StatusDelivering, PaymentMethod: tc.method, PaymentStatus: tc.payment, DelivererID: &courier}
		ch, err := ConfirmDelivery(o, now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.method, err)
		}
		if ch.To != tc.want || ch.PaymentStatus != tc.paid {
			t.Fatalf("%s/%s: expected %s/%s, got %s/%s", tc.method, tc.payment, tc.want, tc.paid, ch.To, ch.PaymentStatus)
		}
		if tc.want == domain.StatusDelivered && ch.DeliveredAt == nil {
			t.Fatalf("%s: expected deliveredAt to be set", tc.method)
		}
	}

	if _, err := ConfirmDelivery(domain.Order{Status: domain.StatusReady}, now); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestPaymentReceived(t *testing.T) {
	cases := []struct {
		order domain.Order
		want  bool
	}{
		{domain.Order{PaymentMethod: domain.PaymentCard, PaymentStatus: domain.PaymentPending}, true},
		{domain.Order{PaymentMethod: domain.PaymentPix}, true},
		{domain.Order{PaymentMethod: domain.PaymentCash, PaymentStatus: domain.PaymentPending}, false},
		{domain.Order{PaymentMethod: domain.PaymentCash, PaymentStatus: domain.PaymentReceived}, true},
		{domain.Order{PaymentMethod: domain.PaymentPayrollDiscount, PaymentStatus: domain.PaymentPending}, false},
	}
	for _, tc := range cases {
		if got := PaymentReceived(tc.order); got != tc.want {
			t.Fatalf("%+v: expected %v, got %v", tc.order, tc.want, got)
		}
	}
}
