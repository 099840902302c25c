package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// RecipeRepository defines the interface for station ticket data operations.
// Recipe items always come back sorted by ascending priority, which is the
// order they are printed and cooked in.
type RecipeRepository interface {
	// Create persists a recipe together with its items. A second recipe for
	// the same (order, station) pair violates the unique index.
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Recipe, error)
	ListByStation(ctx context.Context, station enum.Station, status *enum.RecipeStatus) ([]entity.Recipe, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.RecipeStatus) error
}
