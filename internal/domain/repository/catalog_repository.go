package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// CategoryRepository defines the interface for menu category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepository defines the interface for menu item data operations. The
// catalog is read-only from the billing core's perspective; writes happen
// through the admin endpoints only.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	// GetByIDs returns items with their sizes preloaded, in one query.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	List(ctx context.Context, availableOnly bool) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetSizePrice creates or updates the price for a single (item, size)
	// pair; at most one row exists per pair.
	SetSizePrice(ctx context.Context, itemID uuid.UUID, size enum.Size, price decimal.Decimal) error
	// GetPrice returns the catalog price for an (item, size) pair. A
	// missing pair is reported as found=false, never as a zero price.
	GetPrice(ctx context.Context, itemID uuid.UUID, size enum.Size) (price decimal.Decimal, found bool, err error)
}
