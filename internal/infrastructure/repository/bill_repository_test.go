package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/infrastructure/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestNextBillNumberStartsAtOne(t *testing.T) {
	repo := NewBillRepository(openTestDB(t))

	date := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	number, err := repo.NextBillNumber(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, "202609010001", number)
}

func TestNextBillNumberIncrementsHighestForDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	for _, n := range []string{"202609010001", "202609010007", "202608310003"} {
		require.NoError(t, db.Create(&entity.Bill{
			BillNumber:    n,
			CustomerName:  "X",
			PaymentMode:   enum.PaymentModeUPI,
			GSTPercentage: decimal.NewFromInt(18),
		}).Error)
	}

	number, err := repo.NextBillNumber(ctx, time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "202609010008", number)

	// On a fresh day the sequence restarts
	number, err = repo.NextBillNumber(ctx, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "202609020001", number)
}

func TestNextBillNumberPastFourDigits(t *testing.T) {
	db := openTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	// 10000 sorts below 9999 as a string; the highest must still win
	for _, n := range []string{"202609019999", "2026090110000"} {
		require.NoError(t, db.Create(&entity.Bill{
			BillNumber:    n,
			CustomerName:  "X",
			PaymentMode:   enum.PaymentModeUPI,
			GSTPercentage: decimal.NewFromInt(18),
		}).Error)
	}

	number, err := repo.NextBillNumber(ctx, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2026090110001", number)
}

func TestBillNumberUniqueViolationTranslated(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	bill := &entity.Bill{
		BillNumber:    "202609010001",
		CustomerName:  "First",
		PaymentMode:   enum.PaymentModeUPI,
		GSTPercentage: decimal.NewFromInt(18),
	}
	require.NoError(t, NewBillRepository(db).Create(ctx, bill))

	dup := &entity.Bill{
		BillNumber:    "202609010001",
		CustomerName:  "Second",
		PaymentMode:   enum.PaymentModeUPI,
		GSTPercentage: decimal.NewFromInt(18),
	}
	err := NewBillRepository(db).Create(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGetPriceReportsMissingPair(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	category := &entity.Category{Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	item := &entity.Item{
		CategoryID:  category.ID,
		Name:        "Espresso",
		Station:     enum.StationBarista,
		IsAvailable: true,
		Sizes: []entity.ItemSize{
			{Size: enum.SizeSmall, Price: decimal.RequireFromString("100.00")},
		},
	}
	require.NoError(t, db.Create(item).Error)

	repo := NewItemRepository(db)

	price, found, err := repo.GetPrice(ctx, item.ID, enum.SizeSmall)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "100", price.String())

	_, found, err = repo.GetPrice(ctx, item.ID, enum.SizeLarge)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = repo.GetPrice(ctx, uuid.New(), enum.SizeSmall)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetSizePriceUpserts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	category := &entity.Category{Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	item := &entity.Item{
		CategoryID:  category.ID,
		Name:        "Mocha",
		Station:     enum.StationBarista,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)

	repo := NewItemRepository(db)

	require.NoError(t, repo.SetSizePrice(ctx, item.ID, enum.SizeMedium, decimal.RequireFromString("160.00")))
	require.NoError(t, repo.SetSizePrice(ctx, item.ID, enum.SizeMedium, decimal.RequireFromString("170.00")))

	var count int64
	require.NoError(t, db.Model(&entity.ItemSize{}).
		Where("item_id = ?", item.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	price, found, err := repo.GetPrice(ctx, item.ID, enum.SizeMedium)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "170", price.String())
}

func TestTransactorRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx := NewTxManager(db)
	billRepo := NewBillRepository(db)

	err := tx.Do(ctx, func(ctx context.Context) error {
		if err := billRepo.Create(ctx, &entity.Bill{
			BillNumber:    "202609010001",
			CustomerName:  "Rollback",
			PaymentMode:   enum.PaymentModeUPI,
			GSTPercentage: decimal.NewFromInt(18),
		}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.Bill{}).Count(&count).Error)
	assert.Zero(t, count)
}
