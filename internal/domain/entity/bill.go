package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// Bill is one finalized customer transaction. The GST percentage is a
// snapshot taken from the cafe config when the bill is created, so later
// config changes never alter what an existing bill owes.
type Bill struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber    string           `gorm:"size:20;unique;not null" json:"bill_number"`
	CustomerName  string           `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string           `gorm:"size:15" json:"customer_phone"`
	PaymentMode   enum.PaymentMode `gorm:"size:10;not null;default:'UPI'" json:"payment_mode"`

	// Cash audit trail, present only for CASH bills.
	CashReceived   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cash_received,omitempty"`
	ChangeReturned *decimal.Decimal `gorm:"type:decimal(10,2)" json:"change_returned,omitempty"`

	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	GSTPercentage   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gst_percentage"`

	ReceiptPath string    `gorm:"size:255" json:"receipt_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Order *Order     `gorm:"foreignKey:BillID" json:"order,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// Subtotal sums the line totals of the loaded bill items.
func (b *Bill) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range b.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// BillItem is one priced line on a bill. The price is captured from the
// catalog at sale time and never re-read, so catalog edits leave old bills
// untouched.
type BillItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Size     enum.Size       `gorm:"size:1;not null;default:'M'" json:"size"`
	Price    decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// LineTotal returns price x quantity.
func (bi *BillItem) LineTotal() decimal.Decimal {
	return bi.Price.Mul(decimal.NewFromInt(int64(bi.Quantity)))
}
