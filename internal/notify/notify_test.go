package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"food-delivery/internal/domain"
	"food-delivery/internal/queue"
)

func event(companyID string, status domain.OrderStatus) domain.OrderStatusEvent {
	return domain.OrderStatusEvent{
		EventType: domain.EventOrderStatusChanged,
		Order:     domain.Order{ID: "o1", CompanyID: companyID, Status: status},
		OldStatus: domain.StatusPending,
		NewStatus: status,
	}
}

func TestDispatcher_FailuresDoNotReachCaller(t *testing.T) {
	d := NewDispatcher(time.Second, nil)
	var mu sync.Mutex
	var delivered []string
	d.Register("broken", NotifierFunc(func(context.Context, domain.OrderStatusEvent) error {
		return errors.New("down")
	}))
	d.Register("ok", NotifierFunc(func(_ context.Context, ev domain.OrderStatusEvent) error {
		mu.Lock()
		delivered = append(delivered, ev.Order.ID)
		mu.Unlock()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	d.OrderStatusCommitted(ctx, event("c1", domain.StatusConfirmed))
	cancel()
	d.Wait()

	if len(delivered) != 1 || delivered[0] != "o1" {
		t.Fatalf("unexpected deliveries %v", delivered)
	}
}

func TestWebhook_PostsOrderWithReason(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ev := event("c1", domain.StatusCancelled)
	ev.Reason = "cliente desistiu"
	if err := NewWebhook(srv.URL, srv.Client()).Notify(context.Background(), ev); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got["id"] != "o1" || got["status"] != "cancelled" || got["cancellationReason"] != "cliente desistiu" || got["previousStatus"] != "pending" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestWebhook_NonSuccessIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	if err := NewWebhook(srv.URL, nil).Notify(context.Background(), event("c1", domain.StatusReady)); err == nil {
		t.Fatalf("expected error for 502")
	}
}

func TestPublisher_WritesToOrderStatusQueue(t *testing.T) {
	b := queue.NewMemoryBroker()
	if err := NewPublisher(b).Notify(context.Background(), event("c1", domain.StatusReady)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if b.Pending(queue.QueueOrderStatus) != 1 {
		t.Fatalf("expected a queued message")
	}
}

func TestHub_ScopesByCompany(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe("c1")
	other, cancelOther := h.Subscribe("c2")
	defer cancelOther()

	_ = h.Notify(context.Background(), event("c1", domain.StatusReady))
	// buffer is full; this one is dropped instead of blocking
	_ = h.Notify(context.Background(), event("c1", domain.StatusDelivering))

	if ev := <-ch; ev.NewStatus != domain.StatusReady {
		t.Fatalf("unexpected event %+v", ev)
	}
	select {
	case ev := <-other:
		t.Fatalf("other company received %+v", ev)
	default:
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel must be closed")
	}
	if h.Subscribers("c1") != 0 {
		t.Fatalf("subscriber not removed")
	}
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe("c1")
	h.Close()
	if _, ok := <-ch; ok {
		t.Fatalf("channel must be closed")
	}
	cancel()

	late, _ := h.Subscribe("c1")
	if _, ok := <-late; ok {
		t.Fatalf("subscribing after close yields a closed channel")
	}
	if err := h.Notify(context.Background(), event("c1", domain.StatusReady)); err != nil {
		t.Fatalf("notify after close: %v", err)
	}
}
