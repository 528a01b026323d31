package auth

import (
	"net/http"

	"food-order-system/internal/errs"
	"food-order-system/internal/httputil"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
)

// Handler handles HTTP requests for the identity layer.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	resp, err := h.service.Register(r.Context(), &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, "account created", resp)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "login successful", resp)
}

// Refresh handles POST /auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}
	if req.RefreshToken == "" {
		httputil.WriteError(w, h.logger, requestID, errs.E(errs.InvalidInput, "refresh_token is required"))
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "token refreshed", pair)
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token", requestID)
		return
	}

	user, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "profile", user)
}
