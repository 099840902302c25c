package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mahakaal/cafepos/internal/domain/entity"
)

// TopItemResult represents an item's sales performance within a period
type TopItemResult struct {
	ItemID       uuid.UUID
	ItemName     string
	QuantitySold int
	Revenue      decimal.Decimal
}

// AnalyticsRepository defines interface for sales aggregation queries.
// Totals are recomputed from bill line items rather than read from a
// rollup table, matching how each bill derives its own figures.
type AnalyticsRepository interface {
	// BillsCreatedBetween returns every bill created in [from, to) with
	// line items loaded, for dashboard aggregation.
	BillsCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error)

	// ItemsSoldBetween returns the total quantity of bill line items sold
	// in [from, to).
	ItemsSoldBetween(ctx context.Context, from, to time.Time) (int64, error)

	// TopItems returns the best-selling items by quantity in [from, to).
	TopItems(ctx context.Context, from, to time.Time, limit int) ([]TopItemResult, error)
}
