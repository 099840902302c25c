package request

import "github.com/google/uuid"

// SizePriceRequest is one priced size for a menu item. Price travels as a
// string so it decodes into an exact decimal, never a float.
type SizePriceRequest struct {
	Size  string `json:"size" binding:"required,oneof=S M L"`
	Price string `json:"price" binding:"required"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	IsActive bool   `json:"is_active"`
}

// CreateItemRequest represents a menu item creation request
type CreateItemRequest struct {
	CategoryID  uuid.UUID          `json:"category_id" binding:"required"`
	Name        string             `json:"name" binding:"required,min=2,max=150"`
	Description string             `json:"description" binding:"omitempty,max=1000"`
	Station     string             `json:"station" binding:"required,oneof=KITCHEN BARISTA"`
	Sizes       []SizePriceRequest `json:"sizes" binding:"required,min=1,dive"`
}

// UpdateItemRequest represents a menu item update request
type UpdateItemRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=150"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Station     string `json:"station" binding:"required,oneof=KITCHEN BARISTA"`
	IsAvailable bool   `json:"is_available"`
}

// SetSizePriceRequest sets the price of one (item, size) pair
type SetSizePriceRequest struct {
	Size  string `json:"size" binding:"required,oneof=S M L"`
	Price string `json:"price" binding:"required"`
}
