package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
)

// CatalogService manages the menu: categories, items and per-size prices.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// CreateCategory creates a new menu category
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	category := &entity.Category{
		Name:     name,
		IsActive: true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists menu categories
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

// UpdateCategory updates a category's name and active flag
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string, isActive bool) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	category.IsActive = isActive
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// SizePriceInput is one priced size for an item
type SizePriceInput struct {
	Size  enum.Size
	Price decimal.Decimal
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Station     enum.Station
	Sizes       []SizePriceInput
}

// CreateItem creates a menu item with its size prices
func (s *CatalogService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	if !input.Station.Valid() {
		return nil, apperror.NewBadRequestError("Invalid station")
	}
	if len(input.Sizes) == 0 {
		return nil, apperror.NewBadRequestError("Item needs at least one priced size")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	item := &entity.Item{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Station:     input.Station,
		IsAvailable: true,
	}
	for _, sp := range input.Sizes {
		if !sp.Size.Valid() {
			return nil, apperror.NewBadRequestError("Invalid size " + sp.Size.String())
		}
		if !sp.Price.IsPositive() {
			return nil, apperror.NewInvalidPriceError(input.Name)
		}
		item.Sizes = append(item.Sizes, entity.ItemSize{Size: sp.Size, Price: sp.Price})
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item with its sizes
func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists menu items, optionally only those available for sale
func (s *CatalogService) ListItems(ctx context.Context, availableOnly bool) ([]entity.Item, error) {
	return s.itemRepo.List(ctx, availableOnly)
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	Name        string
	Description string
	Station     enum.Station
	IsAvailable bool
}

// UpdateItem updates an item's details. Prices are managed separately via
// SetSizePrice; existing bills are never affected either way.
func (s *CatalogService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	if !input.Station.Valid() {
		return nil, apperror.NewBadRequestError("Invalid station")
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Station = input.Station
	item.IsAvailable = input.IsAvailable
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetSizePrice creates or updates the price for one (item, size) pair
func (s *CatalogService) SetSizePrice(ctx context.Context, itemID uuid.UUID, size enum.Size, price decimal.Decimal) error {
	if !size.Valid() {
		return apperror.NewBadRequestError("Invalid size " + size.String())
	}
	if !price.IsPositive() {
		return apperror.NewBadRequestError("Price must be positive")
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	return s.itemRepo.SetSizePrice(ctx, itemID, size, price)
}

// DeleteItem soft-deletes a menu item
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}
