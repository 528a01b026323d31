package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Menu represents a sellable menu item. Price is fixed-point decimal; order
// lines capture it by value at conversion time and never re-read it.
type Menu struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CategoryID  int64           `json:"category_id" db:"category_id"`
	IsAvailable bool            `json:"is_available" db:"is_available"`
	Stock       *int            `json:"stock,omitempty" db:"stock"`
	ImageURL    *string         `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time      `json:"-" db:"deleted_at"`
}

// MenuSummary is the display projection embedded in cart and order lines.
type MenuSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

// CreateMenuRequest is the payload for menu creation.
type CreateMenuRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
	IsAvailable *bool           `json:"is_available,omitempty"`
	Stock       *int            `json:"stock,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

// Validate checks the create menu request.
func (req *CreateMenuRequest) Validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 150 {
		return fmt.Errorf("name must not exceed 150 characters")
	}
	if !req.Price.IsPositive() {
		return fmt.Errorf("price must be greater than zero")
	}
	if req.CategoryID <= 0 {
		return fmt.Errorf("category_id is required")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// MenuPatch carries a partial menu update. Nil fields are left untouched;
// set fields are applied. This replaces ad hoc conditional patch maps so
// "absent" and "set to empty" are never conflated.
type MenuPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// Validate checks the patch fields that are present.
func (p *MenuPatch) Validate() error {
	if p.Name == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.IsAvailable == nil && p.Stock == nil && p.ImageURL == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if p.Price != nil && !p.Price.IsPositive() {
		return fmt.Errorf("price must be greater than zero")
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return fmt.Errorf("category_id must be positive")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// MenuFilter narrows menu listings. Soft-deleted rows are always excluded.
type MenuFilter struct {
	CategoryID  *int64
	IsAvailable *bool
	Search      string
}
