package service

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

	"github.com/mahakaal/cafepos/internal/config"
	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	domainrepo "github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/internal/infrastructure/database"
	"github.com/mahakaal/cafepos/internal/infrastructure/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
	"github.com/mahakaal/cafepos/pkg/printer"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	db       *gorm.DB
	billing  *BillingService
	history  *HistoryService
	kitchen  *KitchenService
	printers *PrinterService

	latte     *entity.Item // BARISTA, M=150.00
	croissant *entity.Item // KITCHEN, M=90.00
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	category := &entity.Category{Name: "Coffee", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	latte := &entity.Item{
		CategoryID:  category.ID,
		Name:        "Latte",
		Station:     enum.StationBarista,
		IsAvailable: true,
		Sizes: []entity.ItemSize{
			{Size: enum.SizeSmall, Price: decimal.RequireFromString("120.00")},
			{Size: enum.SizeMedium, Price: decimal.RequireFromString("150.00")},
			{Size: enum.SizeLarge, Price: decimal.RequireFromString("180.00")},
		},
	}
	require.NoError(t, db.Create(latte).Error)

	croissant := &entity.Item{
		CategoryID:  category.ID,
		Name:        "Croissant",
		Station:     enum.StationKitchen,
		IsAvailable: true,
		Sizes: []entity.ItemSize{
			{Size: enum.SizeMedium, Price: decimal.RequireFromString("90.00")},
		},
	}
	require.NoError(t, db.Create(croissant).Error)

	billRepo := repository.NewBillRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	historyRepo := repository.NewOrderHistoryRepository(db)
	itemRepo := repository.NewItemRepository(db)

	historySvc := NewHistoryService(historyRepo, orderRepo, billRepo)
	printerSvc := NewPrinterService(
		printer.NewNullPrinter(),
		billRepo,
		orderRepo,
		recipeRepo,
		config.CafeConfig{Name: "Test Cafe", GSTPercentage: decimal.NewFromInt(18)},
		config.PrinterConfig{Type: "none", Width: 32},
		t.TempDir(),
	)
	billingSvc := NewBillingService(
		repository.NewTxManager(db),
		billRepo,
		repository.NewBillItemRepository(db),
		orderRepo,
		repository.NewOrderItemRepository(db),
		recipeRepo,
		itemRepo,
		historySvc,
		printerSvc,
		decimal.NewFromInt(18),
	)

	return &testEnv{
		db:        db,
		billing:   billingSvc,
		history:   historySvc,
		kitchen:   NewKitchenService(recipeRepo, orderRepo),
		printers:  printerSvc,
		latte:     latte,
		croissant: croissant,
	}
}

func (e *testEnv) checkout(t *testing.T, input *CreateBillInput) *CreateBillOutput {
	t.Helper()
	out, err := e.billing.CreateBill(context.Background(), input)
	require.NoError(t, err)
	return out
}

func cartLine(item *entity.Item, size enum.Size, qty int) CartLineInput {
	return CartLineInput{ItemID: item.ID, Size: size, Quantity: qty}
}

func TestCreateBillFullWorkflow(t *testing.T) {
	env := newTestEnv(t)

	out := env.checkout(t, &CreateBillInput{
		CustomerName:    "Asha",
		PaymentMode:     enum.PaymentModeUPI,
		DiscountPercent: decimal.NewFromInt(10),
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeMedium, 2),
			cartLine(env.croissant, enum.SizeMedium, 1),
		},
	})

	prefix := time.Now().Format("20060102")
	assert.Equal(t, prefix+"0001", out.Bill.BillNumber)

	assert.Equal(t, "390", out.Totals.Subtotal.String())
	assert.Equal(t, "39", out.Totals.DiscountAmount.String())
	assert.Equal(t, "31.59", out.Totals.CGST.String())
	assert.Equal(t, "31.59", out.Totals.SGST.String())
	assert.Equal(t, "63.18", out.Totals.GSTAmount.String())
	assert.Equal(t, "414.18", out.Totals.Total.String())
	assert.Equal(t, "414", out.Totals.RoundedTotal().String())

	// One order, linked to the bill
	require.NotNil(t, out.Order.BillID)
	assert.Equal(t, out.Bill.ID, *out.Order.BillID)
	assert.Equal(t, enum.OrderStatusNew, out.Order.Status)
	assert.Len(t, out.Order.Items, 2)

	// One ticket per station touched by the cart
	require.Len(t, out.Order.Recipes, 2)
	stations := map[enum.Station][]entity.RecipeItem{}
	for _, r := range out.Order.Recipes {
		stations[r.Station] = r.Items
	}
	require.Len(t, stations[enum.StationBarista], 1)
	assert.Equal(t, "Latte", stations[enum.StationBarista][0].ItemName)
	assert.Equal(t, 2, stations[enum.StationBarista][0].Quantity)
	require.Len(t, stations[enum.StationKitchen], 1)
	assert.Equal(t, "Croissant", stations[enum.StationKitchen][0].ItemName)

	// Archived exactly once, with the bill's figures
	history, err := env.history.GetHistory(context.Background(), out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Bill.BillNumber, history.BillNumber)
	assert.Equal(t, "390", history.Subtotal.String())
	assert.Equal(t, "414.18", history.TotalAmount.String())
	assert.Len(t, history.ItemsSnapshot, 2)

	// Receipt rendered and its path recorded on the bill
	require.NotNil(t, out.Receipt)
	assert.Equal(t, "414", out.Receipt.RoundedTotal)
	require.Len(t, out.Receipt.Items, 2)
	assert.Equal(t, "Medium", out.Receipt.Items[0].Size)
	stored, err := env.billing.GetBill(context.Background(), out.Bill.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ReceiptPath)
}

func TestCreateBillSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)

	first := env.checkout(t, &CreateBillInput{
		CustomerName: "One",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})
	second := env.checkout(t, &CreateBillInput{
		CustomerName: "Two",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeSmall, 1)},
	})

	prefix := time.Now().Format("20060102")
	assert.Equal(t, prefix+"0001", first.Bill.BillNumber)
	assert.Equal(t, prefix+"0002", second.Bill.BillNumber)
}

// staleBillNumbers hands out a number another till already committed on its
// first allocation, recreating the read-then-insert race.
type staleBillNumbers struct {
	domainrepo.BillRepository
	stale string
	used  bool
}

func (r *staleBillNumbers) NextBillNumber(ctx context.Context, date time.Time) (string, error) {
	if !r.used {
		r.used = true
		return r.stale, nil
	}
	return r.BillRepository.NextBillNumber(ctx, date)
}

func TestCreateBillRetriesLostNumberRace(t *testing.T) {
	env := newTestEnv(t)

	first := env.checkout(t, &CreateBillInput{
		CustomerName: "One",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})

	racing := NewBillingService(
		repository.NewTxManager(env.db),
		&staleBillNumbers{
			BillRepository: repository.NewBillRepository(env.db),
			stale:          first.Bill.BillNumber,
		},
		repository.NewBillItemRepository(env.db),
		repository.NewOrderRepository(env.db),
		repository.NewOrderItemRepository(env.db),
		repository.NewRecipeRepository(env.db),
		repository.NewItemRepository(env.db),
		env.history,
		env.printers,
		decimal.NewFromInt(18),
	)

	second, err := racing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Two",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})
	require.NoError(t, err)

	// The losing insert was rolled back and the retry took the next slot.
	prefix := time.Now().Format("20060102")
	assert.Equal(t, prefix+"0001", first.Bill.BillNumber)
	assert.Equal(t, prefix+"0002", second.Bill.BillNumber)

	var bills int64
	require.NoError(t, env.db.Model(&entity.Bill{}).Count(&bills).Error)
	assert.EqualValues(t, 2, bills)
}

func TestCreateBillLinePriorityCarriedToTickets(t *testing.T) {
	env := newTestEnv(t)

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Rush",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			{ItemID: env.latte.ID, Size: enum.SizeMedium, Quantity: 1, Priority: 5},
			{ItemID: env.croissant.ID, Size: enum.SizeMedium, Quantity: 1},
		},
	})

	// Explicit priority sticks; the unmarked line keeps its cart position
	byItem := map[uuid.UUID]int{}
	for _, it := range out.Order.Items {
		byItem[it.ItemID] = it.Priority
	}
	assert.Equal(t, 5, byItem[env.latte.ID])
	assert.Equal(t, 2, byItem[env.croissant.ID])

	byStation := map[enum.Station]int{}
	for _, r := range out.Order.Recipes {
		require.Len(t, r.Items, 1)
		byStation[r.Station] = r.Items[0].Priority
	}
	assert.Equal(t, 5, byStation[enum.StationBarista])
	assert.Equal(t, 2, byStation[enum.StationKitchen])

	_, err := env.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Rush",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			{ItemID: env.latte.ID, Size: enum.SizeMedium, Quantity: 1, Priority: -1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateBillSkipsZeroQuantityLines(t *testing.T) {
	env := newTestEnv(t)

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Grid",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeMedium, 0),
			cartLine(env.croissant, enum.SizeMedium, 1),
		},
	})

	require.Len(t, out.Bill.Items, 1)
	assert.Equal(t, env.croissant.ID, out.Bill.Items[0].ItemID)
	assert.Len(t, out.Order.Recipes, 1)
	assert.Equal(t, enum.StationKitchen, out.Order.Recipes[0].Station)
}

func TestCreateBillEmptyCartRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Empty",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 0)},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateBillUnknownItemLeavesNothingBehind(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Ghost",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeMedium, 1),
			{ItemID: uuid.New(), Size: enum.SizeMedium, Quantity: 1},
		},
	})
	require.Error(t, err)

	var bills, orders, recipes int64
	require.NoError(t, env.db.Model(&entity.Bill{}).Count(&bills).Error)
	require.NoError(t, env.db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, env.db.Model(&entity.Recipe{}).Count(&recipes).Error)
	assert.Zero(t, bills)
	assert.Zero(t, orders)
	assert.Zero(t, recipes)
}

func TestCreateBillUnknownSizeRejected(t *testing.T) {
	env := newTestEnv(t)

	// Croissant has no Large on the menu
	_, err := env.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Sizes",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.croissant, enum.SizeLarge, 1)},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateBillCashHandling(t *testing.T) {
	env := newTestEnv(t)

	// CASH without a tendered amount is rejected
	_, err := env.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Cash",
		PaymentMode:  enum.PaymentModeCash,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})
	require.Error(t, err)

	// Tendering less than the rounded total is rejected
	short := decimal.NewFromInt(100)
	_, err = env.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: "Cash",
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: &short,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})
	require.Error(t, err)

	// 1x Latte M = 150, GST 18% -> 177.00, rounded 177
	cash := decimal.NewFromInt(200)
	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Cash",
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: &cash,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})
	require.NotNil(t, out.Bill.ChangeReturned)
	assert.Equal(t, "23", out.Bill.ChangeReturned.String())
}

func TestCreateBillSingleStationFanOut(t *testing.T) {
	env := newTestEnv(t)

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Solo",
		PaymentMode:  enum.PaymentModeUPI,
		Lines: []CartLineInput{
			cartLine(env.latte, enum.SizeSmall, 1),
			cartLine(env.latte, enum.SizeSmall, 0),
		},
	})

	require.Len(t, out.Order.Recipes, 1)
	assert.Equal(t, enum.StationBarista, out.Order.Recipes[0].Station)
}

func TestArchiveBillIdempotent(t *testing.T) {
	env := newTestEnv(t)

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Repeat",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})

	// CreateBill already archived once; do it twice more
	require.NoError(t, env.history.ArchiveBill(context.Background(), out.Order.ID))
	require.NoError(t, env.history.ArchiveBill(context.Background(), out.Order.ID))

	var count int64
	require.NoError(t, env.db.Model(&entity.OrderHistory{}).
		Where("order_id = ?", out.Order.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCatalogPriceEditLeavesOldBillsUntouched(t *testing.T) {
	env := newTestEnv(t)

	out := env.checkout(t, &CreateBillInput{
		CustomerName: "Before",
		PaymentMode:  enum.PaymentModeUPI,
		Lines:        []CartLineInput{cartLine(env.latte, enum.SizeMedium, 1)},
	})

	// Raise the price after the sale
	require.NoError(t, env.db.Model(&entity.ItemSize{}).
		Where("item_id = ? AND size = ?", env.latte.ID, enum.SizeMedium).
		Update("price", decimal.RequireFromString("999.00")).Error)

	stored, err := env.billing.GetBill(context.Background(), out.Bill.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "150", stored.Items[0].Price.String())
}
