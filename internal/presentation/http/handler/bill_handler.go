package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mahakaal/cafepos/internal/application/service"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/request"
	"github.com/mahakaal/cafepos/internal/presentation/http/dto/response"
	"github.com/mahakaal/cafepos/internal/presentation/http/middleware"
	"github.com/mahakaal/cafepos/pkg/apperror"
)

// BillHandler handles billing HTTP requests
type BillHandler struct {
	billingService *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// Create handles checkout: it prices the cart, persists the bill with its
// order and station tickets, and returns the receipt when printing worked.
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := h.toInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.billingService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountBillCreated()

	response.Created(c, "Bill created successfully", gin.H{
		"bill":    out.Bill,
		"order":   out.Order,
		"totals":  out.Totals,
		"receipt": out.Receipt,
	})
}

// toInput converts the wire request into the service input, parsing the
// decimal strings exactly.
func (h *BillHandler) toInput(req *request.CreateBillRequest) (*service.CreateBillInput, error) {
	mode, err := enum.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}

	input := &service.CreateBillInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMode:   mode,
	}

	if req.DiscountPercent != "" {
		pct, err := decimal.NewFromString(req.DiscountPercent)
		if err != nil {
			return nil, err
		}
		input.DiscountPercent = pct
	}

	if req.CashReceived != nil {
		cash, err := decimal.NewFromString(*req.CashReceived)
		if err != nil {
			return nil, err
		}
		input.CashReceived = &cash
	}

	for _, line := range req.Items {
		size := enum.SizeMedium
		if line.Size != "" {
			size, err = enum.ParseSize(line.Size)
			if err != nil {
				return nil, apperror.NewBadRequestError(err.Error())
			}
		}
		input.Lines = append(input.Lines, service.CartLineInput{
			ItemID:   line.ItemID,
			Size:     size,
			Quantity: line.Quantity,
			Priority: line.Priority,
			Notes:    line.Notes,
		})
	}

	return input, nil
}

// Get handles retrieving a bill by ID
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	totals, err := h.billingService.BillTotals(bill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", gin.H{
		"bill":   bill,
		"totals": totals,
	})
}

// GetByNumber handles retrieving a bill by its printed number
func (h *BillHandler) GetByNumber(c *gin.Context) {
	bill, err := h.billingService.GetBillByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles listing bills with filters
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.BillFilterParams{
		Pagination: paginationFrom(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}

	if filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date (use YYYY-MM-DD)")
			return
		}
		params.StartDate = &start
	}
	if filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end_date (use YYYY-MM-DD)")
			return
		}
		// Make the end date inclusive
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}

	result, err := h.billingService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}
