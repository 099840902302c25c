package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahakaal/cafepos/internal/domain/billing"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
)

// DashboardService aggregates sales figures for the owner's dashboard.
// Revenue is recomputed from bill line items with each bill's own discount
// and GST snapshot, the same arithmetic the bill itself was priced with.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	location      *time.Location
}

// NewDashboardService creates a new dashboard service. Periods are bounded
// in the given location so "today" means the cafe's day, not UTC's.
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, location *time.Location) *DashboardService {
	if location == nil {
		location = time.Local
	}
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		location:      location,
	}
}

// Period selects a dashboard aggregation window
type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DashboardStats is the aggregated view for one period
type DashboardStats struct {
	Period       Period                     `json:"period"`
	From         time.Time                  `json:"from"`
	To           time.Time                  `json:"to"`
	BillCount    int                        `json:"bill_count"`
	ItemsSold    int64                      `json:"items_sold"`
	GrossSales   decimal.Decimal            `json:"gross_sales"`
	TotalGST     decimal.Decimal            `json:"total_gst"`
	Revenue      decimal.Decimal            `json:"revenue"`
	AverageBill  decimal.Decimal            `json:"average_bill"`
	TopItems     []repository.TopItemResult `json:"top_items"`
	PaymentSplit map[string]int             `json:"payment_split"`
}

// periodBounds returns the half-open [from, to) window for a period
// anchored at the given time.
func (s *DashboardService) periodBounds(at time.Time, period Period) (time.Time, time.Time, error) {
	at = at.In(s.location)
	switch period {
	case PeriodDay:
		from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, s.location)
		return from, from.AddDate(0, 0, 1), nil
	case PeriodMonth:
		from := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, s.location)
		return from, from.AddDate(0, 1, 0), nil
	case PeriodYear:
		from := time.Date(at.Year(), 1, 1, 0, 0, 0, 0, s.location)
		return from, from.AddDate(1, 0, 0), nil
	}
	return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid period (use day, month or year)")
}

// GetStats aggregates sales for the period containing the given time.
func (s *DashboardService) GetStats(ctx context.Context, at time.Time, period Period) (*DashboardStats, error) {
	from, to, err := s.periodBounds(at, period)
	if err != nil {
		return nil, err
	}

	bills, err := s.analyticsRepo.BillsCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	itemsSold, err := s.analyticsRepo.ItemsSoldBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	topItems, err := s.analyticsRepo.TopItems(ctx, from, to, 5)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Period:       period,
		From:         from,
		To:           to,
		BillCount:    len(bills),
		ItemsSold:    itemsSold,
		GrossSales:   decimal.Zero,
		TotalGST:     decimal.Zero,
		Revenue:      decimal.Zero,
		AverageBill:  decimal.Zero,
		TopItems:     topItems,
		PaymentSplit: make(map[string]int),
	}

	for _, bill := range bills {
		subtotal := bill.Subtotal()
		cgst, sgst := billing.SplitGST(subtotal.Sub(bill.DiscountAmount), bill.GSTPercentage)
		gst := cgst.Add(sgst)

		stats.GrossSales = stats.GrossSales.Add(subtotal)
		stats.TotalGST = stats.TotalGST.Add(gst)
		stats.Revenue = stats.Revenue.Add(subtotal.Sub(bill.DiscountAmount).Add(gst))
		stats.PaymentSplit[bill.PaymentMode.String()]++
	}

	if stats.BillCount > 0 {
		stats.AverageBill = stats.Revenue.Div(decimal.NewFromInt(int64(stats.BillCount))).Round(2)
	}
	return stats, nil
}
