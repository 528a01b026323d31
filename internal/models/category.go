package models

import (
	"fmt"
	"time"
)

// Category groups menu items. Deleting a category does not cascade to its
// menu items; the foreign key restricts deletion while items reference it.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategoryRequest is the payload for category creation.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Validate checks the create category request.
func (req *CreateCategoryRequest) Validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// CategoryPatch carries a partial category update. Nil fields are left
// untouched; set fields are applied.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks the patch and reports whether it changes anything.
func (p *CategoryPatch) Validate() error {
	if p.Name == nil && p.Description == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}
