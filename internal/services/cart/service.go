package cart

import (
	"context"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
)

// Service implements cart operations. Every mutation returns the recomputed
// cart view at live menu prices.
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates the cart service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// Get returns the customer's cart view.
func (s *Service) Get(ctx context.Context, userID int64) (*models.CartView, error) {
	cartID, err := s.repo.GetCartID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cartID, userID)
}

// AddItem adds quantity of a menu item to the cart. An existing line for the
// same menu item is incremented, never duplicated.
func (s *Service) AddItem(ctx context.Context, userID int64, req *models.AddCartItemRequest, requestID string) (*models.CartView, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	cartID, err := s.repo.GetCartID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orderable, err := s.repo.MenuOrderable(ctx, req.MenuID)
	if err != nil {
		return nil, err
	}
	if !orderable {
		return nil, errs.E(errs.InvalidInput, "menu item is not available")
	}

	if err := s.repo.UpsertLine(ctx, cartID, req.MenuID, req.Quantity); err != nil {
		return nil, err
	}

	s.logger.Debug("cart_item_added", "Item added to cart", requestID, map[string]any{
		"user_id":  userID,
		"menu_id":  req.MenuID,
		"quantity": req.Quantity,
	})

	return s.view(ctx, cartID, userID)
}

// UpdateItem sets a line's quantity. A quantity of zero or less removes the
// line; zero-quantity lines never persist.
func (s *Service) UpdateItem(ctx context.Context, userID, menuID int64, quantity int, requestID string) (*models.CartView, error) {
	cartID, err := s.repo.GetCartID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		err = s.repo.DeleteLine(ctx, cartID, menuID)
	} else {
		err = s.repo.SetLineQuantity(ctx, cartID, menuID, quantity)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cart_item_updated", "Cart line updated", requestID, map[string]any{
		"user_id":  userID,
		"menu_id":  menuID,
		"quantity": quantity,
	})

	return s.view(ctx, cartID, userID)
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID, menuID int64, requestID string) (*models.CartView, error) {
	cartID, err := s.repo.GetCartID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteLine(ctx, cartID, menuID); err != nil {
		return nil, err
	}

	s.logger.Debug("cart_item_removed", "Cart line removed", requestID, map[string]any{
		"user_id": userID,
		"menu_id": menuID,
	})

	return s.view(ctx, cartID, userID)
}

// Clear removes every line from the cart.
func (s *Service) Clear(ctx context.Context, userID int64, requestID string) (*models.CartView, error) {
	cartID, err := s.repo.GetCartID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Clear(ctx, cartID); err != nil {
		return nil, err
	}

	s.logger.Debug("cart_cleared", "Cart cleared", requestID, map[string]any{
		"user_id": userID,
	})

	return s.view(ctx, cartID, userID)
}

func (s *Service) view(ctx context.Context, cartID, userID int64) (*models.CartView, error) {
	lines, err := s.repo.GetLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return models.BuildCartView(cartID, userID, lines), nil
}
