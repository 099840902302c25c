package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	domainRepo "github.com/mahakaal/cafepos/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) BillsCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := dbFrom(ctx, r.db).
		Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&bills).Error
	return bills, err
}

func (r *analyticsRepository) ItemsSoldBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var qty *int64
	err := dbFrom(ctx, r.db).Model(&entity.BillItem{}).
		Select("SUM(bill_items.quantity)").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.created_at >= ? AND bills.created_at < ?", from, to).
		Scan(&qty).Error
	if err != nil || qty == nil {
		return 0, err
	}
	return *qty, nil
}

func (r *analyticsRepository) TopItems(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult
	err := dbFrom(ctx, r.db).Model(&entity.BillItem{}).
		Select("bill_items.item_id AS item_id, items.name AS item_name, SUM(bill_items.quantity) AS quantity_sold, SUM(bill_items.price * bill_items.quantity) AS revenue").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Joins("JOIN items ON items.id = bill_items.item_id").
		Where("bills.created_at >= ? AND bills.created_at < ?", from, to).
		Group("bill_items.item_id, items.name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
