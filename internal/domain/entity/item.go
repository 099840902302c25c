package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// Category groups menu items (e.g. Coffee, Snacks).
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []Item `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Item is a menu entry. The station decides which preparation ticket the
// item lands on when an order fans out.
type Item struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Station     enum.Station   `gorm:"size:20;not null;default:'KITCHEN'" json:"station"`
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category   `gorm:"foreignKey:CategoryID" json:"-"`
	Sizes    []ItemSize `gorm:"foreignKey:ItemID" json:"sizes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// PriceFor returns the price for the given size, or false when the item has
// no such size on the menu.
func (i *Item) PriceFor(size enum.Size) (decimal.Decimal, bool) {
	for _, s := range i.Sizes {
		if s.Size == size {
			return s.Price, true
		}
	}
	return decimal.Decimal{}, false
}

// ItemSize is one priced variant of an item. At most one row may exist per
// (item, size) pair.
type ItemSize struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_item_size" json:"item_id"`
	Size      enum.Size       `gorm:"size:1;not null;uniqueIndex:idx_item_size" json:"size"`
	Price     decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Item Item `gorm:"foreignKey:ItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item size
func (s *ItemSize) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ItemSize model
func (ItemSize) TableName() string {
	return "item_sizes"
}
