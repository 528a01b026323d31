package catalog

import (
	"context"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
)

// Service implements menu and category management.
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates the catalog service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// CreateCategory creates a category.
func (s *Service) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest, requestID string) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category_created", "Category created", requestID, map[string]any{
		"category_id": category.ID,
	})
	return category, nil
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// UpdateCategory applies a partial update.
func (s *Service) UpdateCategory(ctx context.Context, id int64, patch *models.CategoryPatch) (*models.Category, error) {
	if err := patch.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}
	return s.repo.UpdateCategory(ctx, id, patch)
}

// DeleteCategory removes a category. Menu items referencing it block the
// deletion; they are never cascade-deleted.
func (s *Service) DeleteCategory(ctx context.Context, id int64, requestID string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category_deleted", "Category deleted", requestID, map[string]any{
		"category_id": id,
	})
	return nil
}

// CreateMenu creates a menu item.
func (s *Service) CreateMenu(ctx context.Context, req *models.CreateMenuRequest, requestID string) (*models.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	menu := &models.Menu{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		IsAvailable: available,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}

	s.logger.Info("menu_created", "Menu item created", requestID, map[string]any{
		"menu_id": menu.ID,
	})
	return menu, nil
}

// ListMenus returns active menu items matching the filter.
func (s *Service) ListMenus(ctx context.Context, filter models.MenuFilter) ([]models.Menu, error) {
	return s.repo.ListMenus(ctx, filter)
}

// GetMenu returns one active menu item.
func (s *Service) GetMenu(ctx context.Context, id int64) (*models.Menu, error) {
	return s.repo.GetMenu(ctx, id)
}

// UpdateMenu applies a partial update to an active menu item.
func (s *Service) UpdateMenu(ctx context.Context, id int64, patch *models.MenuPatch, requestID string) (*models.Menu, error) {
	if err := patch.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	menu, err := s.repo.UpdateMenu(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu_updated", "Menu item updated", requestID, map[string]any{
		"menu_id": id,
	})
	return menu, nil
}

// DeleteMenu soft-deletes a menu item.
func (s *Service) DeleteMenu(ctx context.Context, id int64, requestID string) error {
	if err := s.repo.SoftDeleteMenu(ctx, id); err != nil {
		return err
	}
	s.logger.Info("menu_deleted", "Menu item soft-deleted", requestID, map[string]any{
		"menu_id": id,
	})
	return nil
}
