package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/pkg/pagination"
)

// OrderHistoryRepository defines the interface for the append-only audit
// log. There is deliberately no update or delete: a snapshot written once
// stays as written.
type OrderHistoryRepository interface {
	Create(ctx context.Context, history *entity.OrderHistory) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.OrderHistory, error)
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
	List(ctx context.Context, params *HistoryFilterParams) ([]entity.OrderHistory, int64, error)
}

// HistoryFilterParams contains filtering parameters for history queries.
// Search matches customer name or bill number.
type HistoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}
