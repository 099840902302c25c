package request

import "github.com/google/uuid"

// CartLineRequest is one submitted menu line. The till sends every row of
// the menu grid, so quantity 0 is normal and means "not ordered". Priority
// lets the cashier mark a line to prepare first; when absent the line keeps
// its cart position.
type CartLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Size     string    `json:"size" binding:"omitempty,oneof=S M L"`
	Quantity int       `json:"quantity" binding:"min=0"`
	Priority int       `json:"priority" binding:"omitempty,min=1,max=999"`
	Notes    string    `json:"notes" binding:"omitempty,max=500"`
}

// CreateBillRequest represents a checkout request
type CreateBillRequest struct {
	CustomerName    string            `json:"customer_name" binding:"required,min=1,max=100"`
	CustomerPhone   string            `json:"customer_phone" binding:"omitempty,max=15"`
	PaymentMode     string            `json:"payment_mode" binding:"required,oneof=CASH UPI"`
	CashReceived    *string           `json:"cash_received"`
	DiscountPercent string            `json:"discount_percent" binding:"omitempty"`
	Items           []CartLineRequest `json:"items" binding:"required,min=1,dive"`
}

// BillFilterRequest represents bill list filter parameters
type BillFilterRequest struct {
	Search    string `form:"search"`
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
