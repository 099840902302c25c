package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
	"github.com/mahakaal/cafepos/pkg/pagination"
)

// KitchenService drives the station boards: tickets per station, ticket
// status updates and the order status roll-up.
type KitchenService struct {
	recipeRepo repository.RecipeRepository
	orderRepo  repository.OrderRepository
}

// NewKitchenService creates a new kitchen service
func NewKitchenService(
	recipeRepo repository.RecipeRepository,
	orderRepo repository.OrderRepository,
) *KitchenService {
	return &KitchenService{
		recipeRepo: recipeRepo,
		orderRepo:  orderRepo,
	}
}

// StationBoard lists a station's tickets, optionally filtered by status.
// Each ticket's items come back sorted by ascending priority.
func (s *KitchenService) StationBoard(ctx context.Context, station enum.Station, status *enum.RecipeStatus) ([]entity.Recipe, error) {
	if !station.Valid() {
		return nil, apperror.NewBadRequestError("Invalid station")
	}
	if status != nil && !status.Valid() {
		return nil, apperror.NewBadRequestError("Invalid recipe status")
	}
	return s.recipeRepo.ListByStation(ctx, station, status)
}

// GetRecipe retrieves one ticket with its items
func (s *KitchenService) GetRecipe(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	recipe, err := s.recipeRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}
	return recipe, nil
}

// UpdateRecipeStatus moves a ticket along NEW -> PREPARING -> READY and
// rolls the order status up from its tickets: any ticket being worked puts
// the order IN_PROGRESS, all tickets READY marks it SERVED.
func (s *KitchenService) UpdateRecipeStatus(ctx context.Context, id uuid.UUID, status enum.RecipeStatus) (*entity.Recipe, error) {
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Invalid recipe status")
	}

	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}
	if !validRecipeTransition(recipe.Status, status) {
		return nil, apperror.NewBadRequestError(
			"Cannot move recipe from " + recipe.Status.String() + " to " + status.String())
	}

	if err := s.recipeRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	recipe.Status = status

	if err := s.rollUpOrderStatus(ctx, recipe.OrderID); err != nil {
		return nil, err
	}
	return recipe, nil
}

// validRecipeTransition permits only forward moves through the ticket
// lifecycle.
func validRecipeTransition(from, to enum.RecipeStatus) bool {
	switch from {
	case enum.RecipeStatusNew:
		return to == enum.RecipeStatusPreparing || to == enum.RecipeStatusReady
	case enum.RecipeStatusPreparing:
		return to == enum.RecipeStatusReady
	}
	return false
}

// rollUpOrderStatus derives the order status from its tickets.
func (s *KitchenService) rollUpOrderStatus(ctx context.Context, orderID uuid.UUID) error {
	recipes, err := s.recipeRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return nil
	}

	allReady := true
	anyStarted := false
	for _, r := range recipes {
		if r.Status != enum.RecipeStatusReady {
			allReady = false
		}
		if r.Status != enum.RecipeStatusNew {
			anyStarted = true
		}
	}

	switch {
	case allReady:
		return s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusServed)
	case anyStarted:
		return s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusInProgress)
	}
	return nil
}

// GetOrder retrieves an order with its items and tickets
func (s *KitchenService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering and pagination
func (s *KitchenService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
