package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mahakaal/cafepos/internal/domain/billing"
	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
	"github.com/mahakaal/cafepos/pkg/pagination"
)

// HistoryService maintains the append-only order archive.
type HistoryService struct {
	historyRepo repository.OrderHistoryRepository
	orderRepo   repository.OrderRepository
	billRepo    repository.BillRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(
	historyRepo repository.OrderHistoryRepository,
	orderRepo repository.OrderRepository,
	billRepo repository.BillRepository,
) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		orderRepo:   orderRepo,
		billRepo:    billRepo,
	}
}

// ArchiveBill writes the one-and-only history snapshot for an order. It is
// idempotent: calling it again for an already archived order returns nil
// without touching the stored row. Two callers racing on the same order are
// resolved by the unique index on order_id, not by the existence pre-check.
func (s *HistoryService) ArchiveBill(ctx context.Context, orderID uuid.UUID) error {
	err := s.archive(ctx, orderID)
	if errors.Is(err, apperror.ErrDuplicateHistory) {
		// The snapshot exists, which is all idempotence promises.
		return nil
	}
	return err
}

// archive performs one snapshot attempt, reporting an already archived
// order as ErrDuplicateHistory.
func (s *HistoryService) archive(ctx context.Context, orderID uuid.UUID) error {
	exists, err := s.historyRepo.ExistsForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.ErrDuplicateHistory
	}

	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.BillID == nil {
		return apperror.NewBadRequestError("Order has no finalized bill to archive")
	}

	bill, err := s.billRepo.GetWithItems(ctx, *order.BillID)
	if err != nil {
		return err
	}
	if bill == nil {
		return apperror.NewNotFoundError("Bill")
	}

	snapshot := make([]entity.HistoryItem, len(bill.Items))
	for i, it := range bill.Items {
		snapshot[i] = entity.HistoryItem{
			ItemName: it.Item.Name,
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
		}
	}

	subtotal := bill.Subtotal()
	cgst, sgst := billing.SplitGST(subtotal.Sub(bill.DiscountAmount), bill.GSTPercentage)
	gst := cgst.Add(sgst)

	history := &entity.OrderHistory{
		OrderID:        order.ID,
		BillNumber:     bill.BillNumber,
		CustomerName:   bill.CustomerName,
		CustomerPhone:  bill.CustomerPhone,
		PaymentMode:    bill.PaymentMode,
		CashReceived:   bill.CashReceived,
		ChangeReturned: bill.ChangeReturned,
		Subtotal:       subtotal,
		Discount:       bill.DiscountAmount,
		GST:            gst,
		TotalAmount:    subtotal.Sub(bill.DiscountAmount).Add(gst),
		ItemsSnapshot:  snapshot,
		ReceiptPath:    bill.ReceiptPath,
	}

	if err := s.historyRepo.Create(ctx, history); err != nil {
		// Lost a race with another archiver.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.ErrDuplicateHistory
		}
		return err
	}
	return nil
}

// GetHistory retrieves the archived snapshot for an order
func (s *HistoryService) GetHistory(ctx context.Context, orderID uuid.UUID) (*entity.OrderHistory, error) {
	history, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, apperror.NewNotFoundError("Order history")
	}
	return history, nil
}

// ListHistory lists archived orders with filtering and pagination
func (s *HistoryService) ListHistory(ctx context.Context, params *repository.HistoryFilterParams) (*pagination.PaginatedResult[entity.OrderHistory], error) {
	histories, total, err := s.historyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(histories, pag), nil
}
