package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scholarmarket/internal/domain"
)

func TestOrderStatusUpdateForbiddenForWrongModerator(t *testing.T) {
	app := testApp()
	app.Orders = &stubOrders{updateStatusOwned: func(_ context.Context, id, email string, _ domain.OrderStatus) (*domain.Order, error) {
		// m2 is not the stored moderator; the single-statement gate matches
		// zero rows whether the order is foreign or absent.
		return nil, domain.ErrForbidden
	}}

	for _, orderID := range []string{"order-1", "no-such-order"} {
		req := authedRequest("PATCH", "/v1/orders/"+orderID+"/status", strings.NewReader(`{"status":"cancelled"}`), "m2@example.com", "")
		req = withURLParam(req, "id", orderID)
		rr := httptest.NewRecorder()
		app.OrderStatusUpdate(rr, req)
		if rr.Code != 403 {
			t.Fatalf("order %q: status = %d, want 403", orderID, rr.Code)
		}
	}
}

func TestOrderStatusUpdateHappyPath(t *testing.T) {
	app := testApp()
	var gotID, gotEmail string
	var gotStatus domain.OrderStatus
	app.Orders = &stubOrders{updateStatusOwned: func(_ context.Context, id, email string, status domain.OrderStatus) (*domain.Order, error) {
		gotID, gotEmail, gotStatus = id, email, status
		return &domain.Order{ID: id, ModeratorEmail: email, Status: status}, nil
	}}

	req := authedRequest("PATCH", "/v1/orders/order-1/status", strings.NewReader(`{"status":"completed"}`), "m1@example.com", "")
	req = withURLParam(req, "id", "order-1")
	rr := httptest.NewRecorder()
	app.OrderStatusUpdate(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if gotID != "order-1" || gotEmail != "m1@example.com" || gotStatus != domain.OrderCompleted {
		t.Fatalf("gate called with (%q, %q, %q)", gotID, gotEmail, gotStatus)
	}
	var dto orderDTO
	if err := json.NewDecoder(rr.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Status != "completed" {
		t.Fatalf("Status = %q, want completed", dto.Status)
	}
}

func TestOrderStatusUpdateRejectsInvalidTarget(t *testing.T) {
	app := testApp()
	for _, status := range []string{"pending", "shipped", ""} {
		req := authedRequest("PATCH", "/v1/orders/order-1/status", strings.NewReader(`{"status":"`+status+`"}`), "m1@example.com", "")
		req = withURLParam(req, "id", "order-1")
		rr := httptest.NewRecorder()
		app.OrderStatusUpdate(rr, req)
		if rr.Code != 400 {
			t.Fatalf("status %q: code = %d, want 400", status, rr.Code)
		}
	}
}

func TestOrderDeleteForbiddenForWrongModerator(t *testing.T) {
	app := testApp()
	app.Orders = &stubOrders{deleteOwned: func(_ context.Context, id, email string) error {
		return domain.ErrForbidden
	}}
	req := authedRequest("DELETE", "/v1/orders/order-1", nil, "m2@example.com", "")
	req = withURLParam(req, "id", "order-1")
	rr := httptest.NewRecorder()
	app.OrderDelete(rr, req)
	if rr.Code != 403 {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
}

func TestOrdersMineScopedToCaller(t *testing.T) {
	app := testApp()
	newest := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	app.Orders = &stubOrders{listByStudent: func(_ context.Context, email string) ([]domain.Order, error) {
		if email != "student@example.com" {
			t.Fatalf("listByStudent called with %q", email)
		}
		return []domain.Order{
			{ID: "order-2", StudentEmail: email, CreatedAt: newest},
			{ID: "order-1", StudentEmail: email, CreatedAt: newest.Add(-24 * time.Hour)},
		}, nil
	}}

	req := authedRequest("GET", "/v1/orders/mine", nil, "student@example.com", "")
	rr := httptest.NewRecorder()
	app.OrdersMine(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Items []orderDTO `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 2 || payload.Items[0].ID != "order-2" {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
}

func TestOrdersMineRequiresAuth(t *testing.T) {
	app := testApp()
	req := httptest.NewRequest("GET", "/v1/orders/mine", nil)
	rr := httptest.NewRecorder()
	app.OrdersMine(rr, req)
	if rr.Code != 401 {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}
