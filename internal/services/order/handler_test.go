package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-order-system/internal/config"
	"food-order-system/internal/httputil"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
	"food-order-system/internal/services/auth"
)

func newTestMux(repo Repository) (*http.ServeMux, *auth.TokenManager) {
	log := logger.New("order-handler-test")
	tokens := auth.NewTokenManager(config.AuthConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTTLMins:   15,
		RefreshTTLHours: 168,
	})
	mw := auth.NewMiddleware(tokens)
	handler := NewHandler(NewService(repo, nil, log), log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/orders", mw.RequireRole(models.RoleCustomer, handler.Create))
	mux.HandleFunc("GET /api/v1/orders", mw.Authenticate(handler.List))
	mux.HandleFunc("GET /api/v1/orders/{id}", mw.Authenticate(handler.Get))
	mux.HandleFunc("PATCH /api/v1/orders/status", mw.RequireRole(models.RoleAdmin, handler.UpdateStatus))
	return mux, tokens
}

func bearer(t *testing.T, tokens *auth.TokenManager, userID int64, role models.Role) string {
	t.Helper()
	token, err := tokens.NewAccessToken(&models.User{ID: userID, Email: "u@example.com", Role: role})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderEndpoint(t *testing.T) {
	repo := newMockRepo()
	repo.setCart(7,
		models.CartLine{MenuID: 1, MenuName: "Burger", Price: price(25000), Quantity: 2},
		models.CartLine{MenuID: 2, MenuName: "Fries", Price: price(10000), Quantity: 1},
	)
	mux, tokens := newTestMux(repo)

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/orders",
		bearer(t, tokens, 7, models.RoleCustomer), `{"address":"Jl. Sudirman 12"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Number     string `json:"order_number"`
			Status     string `json:"status"`
			TotalPrice string `json:"total_price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Data.Status != "PENDING" {
		t.Errorf("expected status PENDING, got %s", resp.Data.Status)
	}
	if resp.Data.TotalPrice != "60000" {
		t.Errorf("expected total 60000, got %s", resp.Data.TotalPrice)
	}
	if !strings.HasPrefix(resp.Data.Number, "ORD-") {
		t.Errorf("unexpected order number %q", resp.Data.Number)
	}
}

func TestCreateOrderEndpoint_NoToken(t *testing.T) {
	mux, _ := newTestMux(newMockRepo())

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/orders", "", `{"address":"Jl. A"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateOrderEndpoint_EmptyCart(t *testing.T) {
	repo := newMockRepo()
	repo.setCart(7)
	mux, tokens := newTestMux(repo)

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/orders",
		bearer(t, tokens, 7, models.RoleCustomer), `{"address":"Jl. A"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp httputil.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected error envelope")
	}
	if resp.Error != "cart is empty" {
		t.Errorf("expected message %q, got %q", "cart is empty", resp.Error)
	}
}

func TestUpdateStatusEndpoint_CustomerForbidden(t *testing.T) {
	mux, tokens := newTestMux(newMockRepo())

	rec := doRequest(t, mux, http.MethodPatch, "/api/v1/orders/status",
		bearer(t, tokens, 7, models.RoleCustomer),
		`{"order_number":"ORD-X","status":"CONFIRMED"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUpdateStatusEndpoint_Admin(t *testing.T) {
	repo := newMockRepo()
	repo.setCart(7, models.CartLine{MenuID: 1, MenuName: "Burger", Price: price(25000), Quantity: 1})
	mux, tokens := newTestMux(repo)

	created := doRequest(t, mux, http.MethodPost, "/api/v1/orders",
		bearer(t, tokens, 7, models.RoleCustomer), `{"address":"Jl. A"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("failed to place order: %d", created.Code)
	}
	var placed struct {
		Data struct {
			Number string `json:"order_number"`
		} `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &placed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	rec := doRequest(t, mux, http.MethodPatch, "/api/v1/orders/status",
		bearer(t, tokens, 1, models.RoleAdmin),
		`{"order_number":"`+placed.Data.Number+`","status":"CONFIRMED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != "CONFIRMED" {
		t.Errorf("expected CONFIRMED, got %s", resp.Data.Status)
	}
}

func TestGetOrderEndpoint_OtherCustomer(t *testing.T) {
	repo := newMockRepo()
	repo.setCart(7, models.CartLine{MenuID: 1, MenuName: "Burger", Price: price(25000), Quantity: 1})
	mux, tokens := newTestMux(repo)

	created := doRequest(t, mux, http.MethodPost, "/api/v1/orders",
		bearer(t, tokens, 7, models.RoleCustomer), `{"address":"Jl. A"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("failed to place order: %d", created.Code)
	}

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/orders/1",
		bearer(t, tokens, 8, models.RoleCustomer), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another customer's order, got %d", rec.Code)
	}
}
