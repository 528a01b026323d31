package catalog

import (
	"net/http"
	"strconv"

	"food-order-system/internal/errs"
	"food-order-system/internal/httputil"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
)

// Handler handles HTTP requests for category and menu management.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	var req models.CreateCategoryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, "category created", category)
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "categories", categories)
}

// GetCategory handles GET /categories/{id}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "category", category)
}

// UpdateCategory handles PUT /categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	var patch models.CategoryPatch
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &patch)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "category updated", category)
}

// DeleteCategory handles DELETE /categories/{id}.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id, requestID); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "category deleted", nil)
}

// CreateMenu handles POST /menus.
func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	var req models.CreateMenuRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	menu, err := h.service.CreateMenu(r.Context(), &req, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, "menu created", menu)
}

// ListMenus handles GET /menus with optional filters.
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	filter := models.MenuFilter{
		Search: r.URL.Query().Get("search"),
	}

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, h.logger, requestID, errs.E(errs.InvalidInput, "category_id must be an integer"))
			return
		}
		filter.CategoryID = &id
	}

	if raw := r.URL.Query().Get("is_available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, h.logger, requestID, errs.E(errs.InvalidInput, "is_available must be a boolean"))
			return
		}
		filter.IsAvailable = &available
	}

	menus, err := h.service.ListMenus(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "menus", menus)
}

// GetMenu handles GET /menus/{id}.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	menu, err := h.service.GetMenu(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "menu", menu)
}

// UpdateMenu handles PUT /menus/{id}.
func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	var patch models.MenuPatch
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	menu, err := h.service.UpdateMenu(r.Context(), id, &patch, requestID)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "menu updated", menu)
}

// DeleteMenu handles DELETE /menus/{id}.
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httputil.RequestID(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	if err := h.service.DeleteMenu(r.Context(), id, requestID); err != nil {
		httputil.WriteError(w, h.logger, requestID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, "menu deleted", nil)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.E(errs.InvalidInput, "id must be a positive integer")
	}
	return id, nil
}
