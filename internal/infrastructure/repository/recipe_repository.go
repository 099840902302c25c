package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	domainRepo "github.com/mahakaal/cafepos/internal/domain/repository"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) domainRepo.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	return dbFrom(ctx, r.db).Create(recipe).Error
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := dbFrom(ctx, r.db).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &recipe, err
}

func (r *recipeRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := dbFrom(ctx, r.db).
		Preload("Items", sortByPriority).
		Preload("Order").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &recipe, err
}

func (r *recipeRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Recipe, error) {
	var recipes []entity.Recipe
	err := dbFrom(ctx, r.db).
		Preload("Items", sortByPriority).
		Where("order_id = ?", orderID).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) ListByStation(ctx context.Context, station enum.Station, status *enum.RecipeStatus) ([]entity.Recipe, error) {
	var recipes []entity.Recipe
	query := dbFrom(ctx, r.db).
		Preload("Items", sortByPriority).
		Preload("Order").
		Where("station = ?", station)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at ASC").Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.RecipeStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Recipe{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// sortByPriority keeps ticket items in serving order wherever they are
// loaded.
func sortByPriority(db *gorm.DB) *gorm.DB {
	return db.Order("priority ASC")
}
