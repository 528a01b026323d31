package order

import (
	"net/http"
	"strconv"

	"food-order-system/internal/errs"
	"food-order-system/internal/httputil"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
	"food-order-system/internal/services/auth"
)

// Handler handles HTTP requests for order placement and the status workflow.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	var req models.CreateOrderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), claims.UserID, &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, "order placed", order)
}

// List handles GET /orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "orders", orders)
}

// Get handles GET /orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, h.logger, requestID, errs.E(errs.InvalidInput, "id must be a positive integer"))
		return
	}

	order, err := h.service.GetOrder(r.Context(), id, claims.UserID, claims.Role)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "order", order)
}

// UpdateStatus handles PATCH /orders/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	var req models.UpdateOrderStatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "order status updated", order)
}
