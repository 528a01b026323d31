package cart

import (
	"net/http"
	"strconv"

	"food-order-system/internal/errs"
	"food-order-system/internal/httputil"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
	"food-order-system/internal/services/auth"
)

// Handler handles HTTP requests for cart operations.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new cart handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Get handles GET /cart.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	view, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "cart", view)
}

// AddItem handles POST /cart/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	var req models.AddCartItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	view, err := h.service.AddItem(r.Context(), claims.UserID, &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, "item added to cart", view)
}

// UpdateItem handles PUT /cart/items/{menuId}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	menuID, err := pathMenuID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	var req models.UpdateCartItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	view, err := h.service.UpdateItem(r.Context(), claims.UserID, menuID, req.Quantity, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "cart updated", view)
}

// RemoveItem handles DELETE /cart/items/{menuId}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	menuID, err := pathMenuID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	view, err := h.service.RemoveItem(r.Context(), claims.UserID, menuID, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "item removed from cart", view)
}

// Clear handles DELETE /cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	view, err := h.service.Clear(r.Context(), claims.UserID, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "cart cleared", view)
}

func pathMenuID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("menuId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.E(errs.InvalidInput, "menuId must be a positive integer")
	}
	return id, nil
}
