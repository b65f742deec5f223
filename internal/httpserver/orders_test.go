package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"food-delivery/internal/domain"
	"food-delivery/internal/orderstatus"
	ordersvc "food-delivery/internal/service/order"
)

func adminRouter(t *testing.T, orders *stubOrderService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.AuthSvc = &stubAuthService{user: &domain.User{ID: "admin-id", Role: domain.RoleAdmin}}
	deps.OrderSvc = orders
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestListOrders_ParsesFilters(t *testing.T) {
	orders := &stubOrderService{}
	router := adminRouter(t, orders)

	req := httptest.NewRequest(http.MethodGet, "/demo/admin/orders?from=2024-05-01&to=2024-05-02&status=pending,ready&paymentMethod=pix&limit=10", nil)
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := orders.lastList
	if in.From == nil || in.From.Day() != 1 || in.To == nil || in.To.Day() != 2 {
		t.Fatalf("unexpected range %+v", in)
	}
	if len(in.Statuses) != 2 || in.Statuses[1] != domain.StatusReady {
		t.Fatalf("unexpected statuses %v", in.Statuses)
	}
	if in.PaymentMethod != domain.PaymentPix || in.Limit != 10 {
		t.Fatalf("unexpected filters %+v", in)
	}
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Fatalf("expected empty results array: %s", rec.Body.String())
	}
}

func TestListOrders_RejectsBadDate(t *testing.T) {
	router := adminRouter(t, &stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/demo/admin/orders?from=05/01/2024", nil)
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"illegal", orderstatus.ErrIllegalTransition, http.StatusUnprocessableEntity},
		{"reason", orderstatus.ErrReasonRequired, http.StatusUnprocessableEntity},
		{"deliverer", ordersvc.ErrDelivererUnavailable, http.StatusUnprocessableEntity},
		{"stale", domain.ErrConflict, http.StatusConflict},
		{"missing", domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := adminRouter(t, &stubOrderService{err: tc.err})

			req := httptest.NewRequest(http.MethodPatch, "/demo/admin/orders/o1/status", strings.NewReader(`{"status":"cancelled"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer access")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateOrderStatus_PassesInput(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{ID: "o1", Status: domain.StatusDelivering}}
	router := adminRouter(t, orders)

	body := `{"status":"delivering","delivererId":"d1","updatedAt":"2024-05-01T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPatch, "/demo/admin/orders/o1/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := orders.lastInput
	if in.To != domain.StatusDelivering || in.DelivererID != "d1" || in.UserID != "admin-id" || in.ExpectedUpdatedAt == nil {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	router := adminRouter(t, &stubOrderService{})

	req := httptest.NewRequest(http.MethodPatch, "/demo/admin/orders/o1/status", strings.NewReader(`{"status":"teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCorrectOrder_PassesReasonAndDeliverer(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{ID: "o1", Status: domain.StatusCancelled}}
	router := adminRouter(t, orders)

	body := `{"status":" Cancelled ","reason":"duplicado","delivererId":"d1"}`
	req := httptest.NewRequest(http.MethodPost, "/demo/admin/orders/o1/correct", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	in := orders.lastInput
	if in.To != domain.StatusCancelled || in.Reason != "duplicado" || in.DelivererID != "d1" || in.UserID != "admin-id" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestCorrectOrder_ErrorMapping(t *testing.T) {
	for _, err := range []error{orderstatus.ErrReasonRequired, orderstatus.ErrDelivererRequired} {
		router := adminRouter(t, &stubOrderService{err: err})

		req := httptest.NewRequest(http.MethodPost, "/demo/admin/orders/o1/correct", strings.NewReader(`{"status":"cancelled"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer access")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%v: expected 422, got %d", err, rec.Code)
		}
	}
}

func TestOrderOptions(t *testing.T) {
	router := adminRouter(t, &stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/demo/admin/orders/o1/options", nil)
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"options":["accepted","cancelled"]`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestOrderHistory_NotMountedWithoutAudits(t *testing.T) {
	router := adminRouter(t, &stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/demo/admin/orders/o1/history", nil)
	req.Header.Set("Authorization", "Bearer access")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
