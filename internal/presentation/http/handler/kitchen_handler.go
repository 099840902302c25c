package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahakaal/cafepos/internal/application/service"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/request"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/response"
)

// KitchenHandler handles station board and order HTTP requests
type KitchenHandler struct {
	kitchenService *service.KitchenService
}

// NewKitchenHandler creates a new kitchen handler
func NewKitchenHandler(kitchenService *service.KitchenService) *KitchenHandler {
	return &KitchenHandler{kitchenService: kitchenService}
}

// StationBoard handles listing a station's tickets
func (h *KitchenHandler) StationBoard(c *gin.Context) {
	station, err := enum.ParseStation(c.Param("station"))
	if err != nil {
		response.BadRequest(c, "Invalid station")
		return
	}

	var query request.StationBoardRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var status *enum.RecipeStatus
	if query.Status != "" {
		st := enum.RecipeStatus(query.Status)
		status = &st
	}

	recipes, err := h.kitchenService.StationBoard(c.Request.Context(), station, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Station board retrieved successfully", recipes)
}

// GetRecipe handles retrieving one ticket
func (h *KitchenHandler) GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	recipe, err := h.kitchenService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe retrieved successfully", recipe)
}

// UpdateRecipeStatus handles moving a ticket through its lifecycle
func (h *KitchenHandler) UpdateRecipeStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req request.UpdateRecipeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	recipe, err := h.kitchenService.UpdateRecipeStatus(c.Request.Context(), id, enum.RecipeStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe status updated successfully", recipe)
}

// GetOrder handles retrieving one order with its items and tickets
func (h *KitchenHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.kitchenService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// ListOrders handles listing orders with filters
func (h *KitchenHandler) ListOrders(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: paginationFrom(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	if filter.Status != "" {
		st := enum.OrderStatus(filter.Status)
		params.Status = &st
	}

	result, err := h.kitchenService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}
