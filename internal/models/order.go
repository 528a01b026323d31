package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusPreparing  OrderStatus = "PREPARING"
	StatusDelivering OrderStatus = "DELIVERING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusDelivering, StatusCompleted, StatusCancelled:
		return OrderStatus(raw), nil
	default:
		return "", fmt.Errorf("status must be one of: PENDING, CONFIRMED, PREPARING, DELIVERING, COMPLETED, CANCELLED")
	}
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// next holds the single forward step of the fulfillment sequence.
var next = map[OrderStatus]OrderStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusPreparing,
	StatusPreparing:  StatusDelivering,
	StatusDelivering: StatusCompleted,
}

// CanTransitionTo reports whether moving from s to target is legal:
// one forward step along the fulfillment sequence, or CANCELLED from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	return next[s] == target
}

// OrderLine is an immutable order line. UnitPrice and Subtotal are captured
// at conversion time and are independent of later menu price changes.
type OrderLine struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"-" db:"order_id"`
	MenuID    int64           `json:"menu_id" db:"menu_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
	Menu      *MenuSummary    `json:"menu,omitempty"`
}

// Order is the immutable conversion result. Only Status and UpdatedAt change
// after creation.
type Order struct {
	ID         int64           `json:"id" db:"id"`
	Number     string          `json:"order_number" db:"number"`
	UserID     int64           `json:"user_id" db:"user_id"`
	Status     OrderStatus     `json:"status" db:"status"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	Address    string          `json:"address" db:"address"`
	Items      []OrderLine     `json:"items"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateOrderRequest is the payload for cart-to-order conversion.
type CreateOrderRequest struct {
	Address string `json:"address"`
}

// Validate checks the create order request.
func (req *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("address is required")
	}
	if len(req.Address) > 500 {
		return fmt.Errorf("address must not exceed 500 characters")
	}
	return nil
}

// UpdateOrderStatusRequest is the payload for the admin status transition.
type UpdateOrderStatusRequest struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

// Validate checks the status update request.
func (req *UpdateOrderStatusRequest) Validate() (OrderStatus, error) {
	if req.OrderNumber == "" {
		return "", fmt.Errorf("order_number is required")
	}
	return ParseOrderStatus(req.Status)
}

// NewOrderNumber generates a human-readable order number: a UTC timestamp
// for operators plus eight hex characters of UUID entropy so concurrent
// placements do not collide. The orders table additionally enforces
// uniqueness, and the conversion engine retries on that constraint.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102-150405"), suffix)
}
