package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// HistoryItem is one denormalized line inside an order history snapshot.
// The price is kept as a fixed string so the stored snapshot never changes
// shape, whatever happens to the catalog afterwards.
type HistoryItem struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderHistory is an append-only audit snapshot of an order, taken exactly
// once when its bill is finalized. Rows are never updated or deleted; the
// unique index on order_id is what makes a second archive attempt a no-op.
type OrderHistory struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`

	BillNumber    string           `gorm:"size:30;not null" json:"bill_number"`
	CustomerName  string           `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string           `gorm:"size:15" json:"customer_phone"`
	PaymentMode   enum.PaymentMode `gorm:"size:20;not null;default:'CASH'" json:"payment_mode"`

	CashReceived   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cash_received,omitempty"`
	ChangeReturned *decimal.Decimal `gorm:"type:decimal(10,2)" json:"change_returned,omitempty"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	GST         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gst"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	ItemsSnapshot []HistoryItem `gorm:"serializer:json" json:"items_snapshot"`
	ReceiptPath   string        `gorm:"size:255" json:"receipt_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new history snapshot
func (h *OrderHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderHistory model
func (OrderHistory) TableName() string {
	return "order_histories"
}
