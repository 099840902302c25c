package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahakaal/cafepos/internal/application/service"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/request"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/response"
)

// HistoryHandler handles order archive HTTP requests
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List handles listing archived orders
func (h *HistoryHandler) List(c *gin.Context) {
	var filter request.HistoryFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.HistoryFilterParams{
		Pagination: paginationFrom(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}

	result, err := h.historyService.ListHistory(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "History retrieved successfully", result)
}

// GetByOrder handles retrieving the archived snapshot for an order
func (h *HistoryHandler) GetByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	history, err := h.historyService.GetHistory(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "History retrieved successfully", history)
}

// Archive handles an explicit archive request for an order. Archiving is
// idempotent, so re-posting for an already archived order succeeds.
func (h *HistoryHandler) Archive(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.historyService.ArchiveBill(c.Request.Context(), orderID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order archived successfully", nil)
}
