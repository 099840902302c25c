package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahakaal/cafepos/internal/application/service"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles retrieving aggregated sales for a period. The optional
// "date" query anchors the period; it defaults to now.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	period := service.Period(c.DefaultQuery("period", "day"))

	at := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date (use YYYY-MM-DD)")
			return
		}
		at = parsed
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), at, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
