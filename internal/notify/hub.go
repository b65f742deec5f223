package notify

import (
	"context"
	"sync"

	"food-delivery/internal/domain"
)

// Hub fans events out to live subscribers of a company, such as the admin
// order board. Slow subscribers miss events rather than block publishers.
type Hub struct {
	mu     sync.RWMutex
	closed bool
	nextID int
	subs   map[string]map[int]chan domain.OrderStatusEvent
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: make(map[string]map[int]chan domain.OrderStatusEvent), buffer: buffer}
}

// Subscribe returns a channel of the company's events and a func that
// unsubscribes and closes it.
func (h *Hub) Subscribe(companyID string) (<-chan domain.OrderStatusEvent, func()) {
	ch := make(chan domain.OrderStatusEvent, h.buffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	if h.subs[companyID] == nil {
		h.subs[companyID] = make(map[int]chan domain.OrderStatusEvent)
	}
	h.subs[companyID][id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[companyID][id]; !ok {
				return
			}
			delete(h.subs[companyID], id)
			if len(h.subs[companyID]) == 0 {
				delete(h.subs, companyID)
			}
			close(ch)
		})
	}
}

func (h *Hub) Notify(_ context.Context, ev domain.OrderStatusEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[ev.Order.CompanyID] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (h *Hub) Subscribers(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[companyID])
}

// Close ends every subscription. Later subscribers get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for companyID, subs := range h.subs {
		for _, ch := range subs {
			close(ch)
		}
		delete(h.subs, companyID)
	}
}
