package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/billing"
	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/enum"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
	"github.com/mahakaal/cafepos/pkg/pagination"
)

// billNumberRetries bounds how often bill creation retries after losing a
// bill number allocation race to a concurrent till.
const billNumberRetries = 3

// BillingService runs the checkout workflow: price the cart, persist the
// bill with its order and station tickets in one transaction, then archive
// and print outside it.
type BillingService struct {
	tx           repository.Transactor
	billRepo     repository.BillRepository
	billItemRepo repository.BillItemRepository
	orderRepo    repository.OrderRepository
	orderItems   repository.OrderItemRepository
	recipeRepo   repository.RecipeRepository
	itemRepo     repository.ItemRepository
	historySvc   *HistoryService
	printerSvc   *PrinterService
	gstRate      decimal.Decimal
}

// NewBillingService creates a new billing service. gstRate is the cafe's
// configured GST percentage; each bill snapshots it at creation.
func NewBillingService(
	tx repository.Transactor,
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	orderRepo repository.OrderRepository,
	orderItems repository.OrderItemRepository,
	recipeRepo repository.RecipeRepository,
	itemRepo repository.ItemRepository,
	historySvc *HistoryService,
	printerSvc *PrinterService,
	gstRate decimal.Decimal,
) *BillingService {
	return &BillingService{
		tx:           tx,
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
		orderRepo:    orderRepo,
		orderItems:   orderItems,
		recipeRepo:   recipeRepo,
		itemRepo:     itemRepo,
		historySvc:   historySvc,
		printerSvc:   printerSvc,
		gstRate:      gstRate,
	}
}

// CartLineInput is one submitted cart line. The cashier UI submits the
// whole menu grid, so zero-quantity lines are expected and skipped.
// Priority zero means "use the cart position"; an explicit value carries
// through to the order line and the station ticket unchanged.
type CartLineInput struct {
	ItemID   uuid.UUID
	Size     enum.Size
	Quantity int
	Priority int
	Notes    string
}

// CreateBillInput represents the checkout input
type CreateBillInput struct {
	CustomerName    string
	CustomerPhone   string
	PaymentMode     enum.PaymentMode
	CashReceived    *decimal.Decimal
	DiscountPercent decimal.Decimal
	Lines           []CartLineInput
}

// CreateBillOutput bundles everything checkout produced
type CreateBillOutput struct {
	Bill    *entity.Bill
	Order   *entity.Order
	Totals  billing.Totals
	Receipt *entity.Receipt
}

// pricedLine pairs a cart line with its resolved catalog data.
type pricedLine struct {
	item     *entity.Item
	size     enum.Size
	price    decimal.Decimal
	quantity int
	priority int
	notes    string
}

// CreateBill runs the whole checkout. Everything that must hold together
// (bill, line items, order, station tickets) is written in one transaction;
// the history snapshot and receipt are produced after commit so a printer
// jam can never void a sale.
func (s *BillingService) CreateBill(ctx context.Context, input *CreateBillInput) (*CreateBillOutput, error) {
	if !input.PaymentMode.Valid() {
		return nil, apperror.NewBadRequestError("Invalid payment mode")
	}
	if input.PaymentMode == enum.PaymentModeCash && input.CashReceived == nil {
		return nil, apperror.NewBadRequestError("Cash received is required for cash payment")
	}
	if input.PaymentMode != enum.PaymentModeCash && input.CashReceived != nil {
		return nil, apperror.NewBadRequestError("Cash received only applies to cash payment")
	}

	priced, err := s.priceCart(ctx, input.Lines)
	if err != nil {
		return nil, err
	}
	if len(priced) == 0 {
		return nil, apperror.NewBadRequestError("Cart has no items")
	}

	lines := make([]billing.Line, len(priced))
	for i, p := range priced {
		lines[i] = billing.Line{Name: p.item.Name, Price: p.price, Quantity: p.quantity}
	}

	totals, err := billing.Compute(lines, input.DiscountPercent, s.gstRate)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidPercent) {
			return nil, apperror.NewBadRequestError("Discount percent must be between 0 and 100")
		}
		return nil, err
	}

	var change *decimal.Decimal
	if input.CashReceived != nil {
		rounded := totals.RoundedTotal()
		if input.CashReceived.LessThan(rounded) {
			return nil, apperror.NewBadRequestError("Cash received is less than the bill total")
		}
		c := input.CashReceived.Sub(rounded)
		change = &c
	}

	var bill *entity.Bill
	var order *entity.Order

	// A concurrent till can win the same bill number; the unique index
	// rejects the loser and we re-run the transaction with a fresh number.
	for attempt := 0; ; attempt++ {
		bill, order, err = s.createBillTx(ctx, input, priced, totals, change)
		if err == nil {
			break
		}
		if errors.Is(err, apperror.ErrDuplicateBillNumber) && attempt < billNumberRetries {
			continue
		}
		return nil, err
	}

	out := &CreateBillOutput{Bill: bill, Order: order, Totals: totals}

	// Post-commit side effects. Failures are logged, never propagated:
	// the sale is already durable.
	if err := s.historySvc.ArchiveBill(ctx, order.ID); err != nil {
		log.Printf("Warning: failed to archive order %s: %v", order.ID, err)
	}
	if s.printerSvc != nil {
		receipt, err := s.printerSvc.PrintBill(ctx, bill.ID)
		if err != nil {
			log.Printf("Warning: failed to print receipt for bill %s: %v", bill.BillNumber, err)
		} else {
			out.Receipt = receipt
		}
		if err := s.printerSvc.PrintTicketsForOrder(ctx, order.ID); err != nil {
			log.Printf("Warning: failed to print station tickets for order %s: %v", order.ID, err)
		}
	}

	return out, nil
}

// priceCart resolves every submitted line against the catalog, dropping
// zero-quantity lines and capturing the price in force right now.
func (s *BillingService) priceCart(ctx context.Context, lines []CartLineInput) ([]pricedLine, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || seen[l.ItemID] {
			continue
		}
		seen[l.ItemID] = true
		ids = append(ids, l.ItemID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	items, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	priced := make([]pricedLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if l.Priority < 0 {
			return nil, apperror.NewBadRequestError("Line priority must be positive")
		}
		item, ok := itemMap[l.ItemID]
		if !ok || !item.IsAvailable {
			return nil, apperror.NewUnknownItemError(l.ItemID.String())
		}
		size := l.Size
		if size == "" {
			size = enum.SizeMedium
		}
		if !size.Valid() {
			return nil, apperror.NewUnknownSizeError(item.Name, size.String())
		}
		price, ok := item.PriceFor(size)
		if !ok {
			return nil, apperror.NewUnknownSizeError(item.Name, size.String())
		}
		if !price.IsPositive() {
			return nil, apperror.NewInvalidPriceError(item.Name)
		}
		priority := l.Priority
		if priority == 0 {
			priority = len(priced) + 1
		}
		priced = append(priced, pricedLine{
			item:     item,
			size:     size,
			price:    price,
			quantity: l.Quantity,
			priority: priority,
			notes:    l.Notes,
		})
	}
	return priced, nil
}

// createBillTx writes the bill, its line items, the order, its items and
// the per-station tickets as one unit of work.
func (s *BillingService) createBillTx(
	ctx context.Context,
	input *CreateBillInput,
	priced []pricedLine,
	totals billing.Totals,
	change *decimal.Decimal,
) (*entity.Bill, *entity.Order, error) {
	var bill *entity.Bill
	var order *entity.Order

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		billNumber, err := s.billRepo.NextBillNumber(ctx, time.Now())
		if err != nil {
			return err
		}

		bill = &entity.Bill{
			BillNumber:      billNumber,
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
			PaymentMode:     input.PaymentMode,
			CashReceived:    input.CashReceived,
			ChangeReturned:  change,
			DiscountPercent: input.DiscountPercent,
			DiscountAmount:  totals.DiscountAmount,
			GSTPercentage:   s.gstRate,
		}
		if err := s.billRepo.Create(ctx, bill); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrDuplicateBillNumber
			}
			return err
		}

		billItems := make([]entity.BillItem, len(priced))
		for i, p := range priced {
			billItems[i] = entity.BillItem{
				BillID:   bill.ID,
				ItemID:   p.item.ID,
				Size:     p.size,
				Price:    p.price,
				Quantity: p.quantity,
			}
		}
		if err := s.billItemRepo.CreateBatch(ctx, billItems); err != nil {
			return err
		}
		bill.Items = billItems

		order = &entity.Order{
			BillID:       &bill.ID,
			CustomerName: input.CustomerName,
			Status:       enum.OrderStatusNew,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		orderItems := make([]entity.OrderItem, len(priced))
		for i, p := range priced {
			orderItems[i] = entity.OrderItem{
				OrderID:  order.ID,
				ItemID:   p.item.ID,
				Quantity: p.quantity,
				Priority: p.priority,
				Notes:    p.notes,
			}
		}
		if err := s.orderItems.CreateBatch(ctx, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		return s.fanOutRecipes(ctx, order, priced)
	})
	if err != nil {
		return nil, nil, err
	}
	return bill, order, nil
}

// fanOutRecipes partitions the order's lines by station and creates one
// consolidated ticket per station that has at least one line. A ticket that
// already exists for (order, station) is a fault, not something to merge
// into: the unique index surfaces it as a conflict.
func (s *BillingService) fanOutRecipes(ctx context.Context, order *entity.Order, priced []pricedLine) error {
	byStation := make(map[enum.Station][]entity.RecipeItem)
	for _, p := range priced {
		byStation[p.item.Station] = append(byStation[p.item.Station], entity.RecipeItem{
			ItemName: p.item.Name,
			Quantity: p.quantity,
			Priority: p.priority,
			Notes:    p.notes,
		})
	}

	// Deterministic station order keeps ticket creation stable.
	for _, station := range enum.Stations() {
		items, ok := byStation[station]
		if !ok {
			continue
		}
		recipe := &entity.Recipe{
			OrderID: order.ID,
			Station: station,
			Status:  enum.RecipeStatusNew,
			Items:   items,
		}
		if err := s.recipeRepo.Create(ctx, recipe); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrDuplicateRecipe
			}
			return err
		}
		order.Recipes = append(order.Recipes, *recipe)
	}
	return nil
}

// GetBill retrieves a bill with its line items
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// GetBillByNumber retrieves a bill by its printed bill number
func (s *BillingService) GetBillByNumber(ctx context.Context, billNumber string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// BillTotals recomputes the monetary breakdown of a stored bill from its
// line items and persisted discount and GST snapshot.
func (s *BillingService) BillTotals(bill *entity.Bill) (billing.Totals, error) {
	lines := make([]billing.Line, len(bill.Items))
	for i, it := range bill.Items {
		lines[i] = billing.Line{Name: it.Item.Name, Price: it.Price, Quantity: it.Quantity}
	}
	return billing.Compute(lines, bill.DiscountPercent, bill.GSTPercentage)
}

// ListBills lists bills with filtering and pagination
func (s *BillingService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
