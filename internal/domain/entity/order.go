package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// Order is the operational counterpart of a bill: what the floor staff see
// and what the kitchen tickets are derived from. BillID is nullable so an
// order can exist before its bill is finalized.
type Order struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BillID       *uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"bill_id,omitempty"`
	CustomerName string           `gorm:"size:255;not null" json:"customer_name"`
	Status       enum.OrderStatus `gorm:"size:20;not null;default:'NEW'" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	Bill    *Bill       `gorm:"foreignKey:BillID" json:"-"`
	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Recipes []Recipe    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order, used for kitchen routing. Priority is
// a small positive integer; lower means served first.
type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity int       `gorm:"not null;default:1" json:"quantity"`
	Priority int       `gorm:"not null;default:1" json:"priority"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	Item  Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
