package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// GetWithItems loads the bill with its line items and their catalog
	// items resolved.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)

	// NextBillNumber allocates the next sequential bill number for the
	// given date: an 8-digit date prefix plus a 4-digit sequence starting
	// at 0001. Allocation races surface later as a unique violation on
	// bill_number, which the caller retries.
	NextBillNumber(ctx context.Context, date time.Time) (string, error)

	// SetReceiptPath records where the rendered receipt was stored. The
	// only mutation a bill sees after creation.
	SetReceiptPath(ctx context.Context, id uuid.UUID, path string) error
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// BillItemRepository defines the interface for bill line item data operations
type BillItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.BillItem) error
	GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error)
}
