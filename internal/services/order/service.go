package order

import (
	"context"
	"errors"
	"time"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
	"food-order-system/internal/messaging"
	"food-order-system/internal/models"
)

// numberAttempts bounds retries on an order-number collision. Each attempt
// carries fresh UUID entropy, so exhausting this means something is wrong
// with the clock or the entropy source.
const numberAttempts = 3

// EventPublisher publishes order lifecycle events. A nil publisher disables
// event publishing.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg messaging.OrderCreatedMessage) error
}

// Service implements cart-to-order conversion, the status workflow and the
// order read paths. It is stateless; all coordination is delegated to the
// store's transaction guarantees.
type Service struct {
	repo   Repository
	events EventPublisher
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates the order service.
func NewService(repo Repository, events EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// PlaceOrder converts the customer's cart into an immutable order. The cart
// is snapshot at live menu prices and cleared in the same transaction; on
// failure the cart is untouched and no partial order is visible.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	var order *models.Order
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number := models.NewOrderNumber(s.now())
		order, err = s.repo.CreateFromCart(ctx, userID, number, req.Address)
		if !errors.Is(err, ErrNumberTaken) {
			break
		}
		s.logger.Debug("order_number_collision", "Order number collided, regenerating", requestID, map[string]any{
			"number":  number,
			"attempt": attempt + 1,
		})
	}
	if errors.Is(err, ErrNumberTaken) {
		return nil, errs.Wrap(errs.Internal, "failed to generate a unique order number", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "Order placed", requestID, map[string]any{
		"order_number": order.Number,
		"user_id":      userID,
		"total_price":  order.TotalPrice.String(),
		"items":        len(order.Items),
	})

	s.publishCreated(ctx, order, requestID)

	return order, nil
}

// publishCreated notifies the kitchen. The order is already committed, so a
// publish failure is logged and swallowed.
func (s *Service) publishCreated(ctx context.Context, order *models.Order, requestID string) {
	if s.events == nil {
		return
	}

	msg := messaging.OrderCreatedMessage{
		OrderNumber: order.Number,
		UserID:      order.UserID,
		TotalPrice:  order.TotalPrice,
		ItemCount:   len(order.Items),
		Address:     order.Address,
		CreatedAt:   order.CreatedAt,
	}
	if err := s.events.PublishOrderCreated(ctx, msg); err != nil {
		s.logger.Error("order_event_failed", "Failed to publish order.created", requestID, err, map[string]any{
			"order_number": order.Number,
		})
	}
}

// GetOrder returns one order. Customers may only read their own orders;
// admins may read any.
func (s *Service) GetOrder(ctx context.Context, id, callerID int64, callerRole models.Role) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole != models.RoleAdmin && order.UserID != callerID {
		// Don't reveal that the order exists.
		return nil, errs.E(errs.NotFound, "order not found")
	}
	return order, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus advances an order along the fulfillment state machine.
// Illegal transitions are rejected and mutate nothing.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateOrderStatusRequest, requestID string) (*models.Order, error) {
	target, err := req.Validate()
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err.Error(), err)
	}

	order, err := s.repo.UpdateStatus(ctx, req.OrderNumber, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated", "Order status updated", requestID, map[string]any{
		"order_number": order.Number,
		"status":       string(order.Status),
	})
	return order, nil
}
