package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"food-delivery/internal/domain"
)

// WebhookPayload is the order as stored plus the event that produced it.
type WebhookPayload struct {
	domain.Order
	Event          string             `json:"event"`
	PreviousStatus domain.OrderStatus `json:"previousStatus,omitempty"`
}

func NewWebhookPayload(ev domain.OrderStatusEvent) WebhookPayload {
	p := WebhookPayload{Order: ev.Order, Event: ev.EventType, PreviousStatus: ev.OldStatus}
	if ev.Order.Status == domain.StatusCancelled && p.CancellationReason == "" {
		p.CancellationReason = ev.Reason
	}
	return p
}

// Webhook POSTs the payload as JSON to a fixed URL.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{url: url, client: client}
}

func (w *Webhook) Notify(ctx context.Context, ev domain.OrderStatusEvent) error {
	body, err := json.Marshal(NewWebhookPayload(ev))
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
