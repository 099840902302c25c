package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// Recipe is a per-station preparation ticket. All of an order's items for a
// station are consolidated into a single ticket: the unique (order, station)
// index makes a second fan-out for the same order fail loudly instead of
// printing duplicate tickets.
type Recipe struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_order_station" json:"order_id"`
	Station   enum.Station      `gorm:"size:20;not null;uniqueIndex:idx_order_station" json:"station"`
	Status    enum.RecipeStatus `gorm:"size:20;not null;default:'NEW'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Order Order        `gorm:"foreignKey:OrderID" json:"-"`
	Items []RecipeItem `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem is a denormalized snapshot of one order line for ticket
// printing. The item name is a copy, not a reference, so renaming a menu
// item never corrupts tickets already on the rail.
type RecipeItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	ItemName string    `gorm:"size:255;not null" json:"item_name"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Priority int       `gorm:"not null" json:"priority"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new recipe item
func (ri *RecipeItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeItem model
func (RecipeItem) TableName() string {
	return "recipe_items"
}
