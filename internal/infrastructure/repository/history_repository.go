package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	domainRepo "github.com/mahakaal/cafepos/internal/domain/repository"
)

type orderHistoryRepository struct {
	db *gorm.DB
}

// NewOrderHistoryRepository creates a new order history repository
func NewOrderHistoryRepository(db *gorm.DB) domainRepo.OrderHistoryRepository {
	return &orderHistoryRepository{db: db}
}

func (r *orderHistoryRepository) Create(ctx context.Context, history *entity.OrderHistory) error {
	return dbFrom(ctx, r.db).Create(history).Error
}

func (r *orderHistoryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.OrderHistory, error) {
	var history entity.OrderHistory
	err := dbFrom(ctx, r.db).First(&history, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &history, err
}

func (r *orderHistoryRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.OrderHistory{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count > 0, err
}

func (r *orderHistoryRepository) List(ctx context.Context, params *domainRepo.HistoryFilterParams) ([]entity.OrderHistory, int64, error) {
	var histories []entity.OrderHistory
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.OrderHistory{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(customer_name) LIKE LOWER(?) OR bill_number LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&histories).Error

	return histories, total, err
}
