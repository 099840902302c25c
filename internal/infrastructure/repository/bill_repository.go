package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	domainRepo "github.com/mahakaal/cafepos/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return dbFrom(ctx, r.db).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).
		Preload("Items.Item").
		Preload("Order").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).
		Preload("Items.Item").
		First(&bill, "bill_number = ?", billNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Bill{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("bill_number LIKE ? OR LOWER(customer_name) LIKE LOWER(?)", pattern, pattern)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

// NextBillNumber computes the next number in the YYYYMMDDNNNN sequence from
// the highest bill number persisted for the date. The read is not locked;
// the unique constraint on bill_number catches a concurrent allocation of
// the same sequence and the billing service retries.
func (r *billRepository) NextBillNumber(ctx context.Context, date time.Time) (string, error) {
	prefix := date.Format("20060102")

	// Sequences past 9999 grow a digit, so order by length before value;
	// a plain string sort would put 10000 below 9999.
	var last entity.Bill
	err := dbFrom(ctx, r.db).
		Where("bill_number LIKE ?", prefix+"%").
		Order("LENGTH(bill_number) DESC, bill_number DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return prefix + "0001", nil
	}
	if err != nil {
		return "", err
	}

	seq, err := strconv.Atoi(last.BillNumber[len(prefix):])
	if err != nil {
		return "", fmt.Errorf("malformed bill number %q: %w", last.BillNumber, err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

func (r *billRepository) SetReceiptPath(ctx context.Context, id uuid.UUID, path string) error {
	return dbFrom(ctx, r.db).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("receipt_path", path).Error
}

type billItemRepository struct {
	db *gorm.DB
}

// NewBillItemRepository creates a new bill item repository
func NewBillItemRepository(db *gorm.DB) domainRepo.BillItemRepository {
	return &billItemRepository{db: db}
}

func (r *billItemRepository) CreateBatch(ctx context.Context, items []entity.BillItem) error {
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *billItemRepository) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error) {
	var items []entity.BillItem
	err := dbFrom(ctx, r.db).
		Preload("Item").
		Where("bill_id = ?", billID).
		Find(&items).Error
	return items, err
}
