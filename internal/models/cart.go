package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is a cart row joined with the live menu data needed for display
// and for order conversion. At most one line exists per (cart, menu) pair.
type CartLine struct {
	ID       int64           `json:"id" db:"id"`
	CartID   int64           `json:"-" db:"cart_id"`
	MenuID   int64           `json:"menu_id" db:"menu_id"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"-"`
	MenuName string          `json:"-"`
	ImageURL *string         `json:"-"`
}

// CartLineView is one line of the recomputed cart view.
type CartLineView struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Menu     CartMenuView    `json:"menu"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartMenuView is the live menu projection inside a cart line.
type CartMenuView struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url,omitempty"`
}

// CartView is the response shape of every cart read and mutation. Totals are
// recomputed from the lines on every call, never cached.
type CartView struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Items         []CartLineView  `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalQuantity int             `json:"total_quantity"`
}

// BuildCartView assembles the view for a cart's lines, summing per-line
// subtotals at the live menu price.
func BuildCartView(cartID, userID int64, lines []CartLine) *CartView {
	view := &CartView{
		ID:         cartID,
		UserID:     userID,
		Items:      make([]CartLineView, 0, len(lines)),
		TotalPrice: decimal.Zero,
	}

	for _, line := range lines {
		subtotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, CartLineView{
			ID:       line.ID,
			Quantity: line.Quantity,
			Menu: CartMenuView{
				ID:       line.MenuID,
				Name:     line.MenuName,
				Price:    line.Price,
				ImageURL: line.ImageURL,
			},
			Subtotal: subtotal,
		})
		view.TotalPrice = view.TotalPrice.Add(subtotal)
		view.TotalQuantity += line.Quantity
	}

	return view
}

// AddCartItemRequest is the payload for adding a menu item to the cart.
type AddCartItemRequest struct {
	MenuID   int64 `json:"menu_id"`
	Quantity int   `json:"quantity"`
}

// Validate checks the add request. Quantity must be at least 1.
func (req *AddCartItemRequest) Validate() error {
	if req.MenuID <= 0 {
		return fmt.Errorf("menu_id is required")
	}
	if req.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

// UpdateCartItemRequest is the payload for setting a line's quantity.
// Quantity of zero or less removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
