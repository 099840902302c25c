package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mahakaal/cafepos/internal/config"
	"github.com/mahakaal/cafepos/internal/domain/billing"
	"github.com/mahakaal/cafepos/internal/domain/entity"
	"github.com/mahakaal/cafepos/internal/domain/repository"
	"github.com/mahakaal/cafepos/pkg/apperror"
	"github.com/mahakaal/cafepos/pkg/printer"
)

var two = decimal.NewFromInt(2)

// PrinterService composes customer receipts and station tickets and sends
// them to the thermal printer. Rendered receipts are also written to disk,
// once per bill; reprints reuse the stored path.
type PrinterService struct {
	printer     printer.Printer
	billRepo    repository.BillRepository
	orderRepo   repository.OrderRepository
	recipeRepo  repository.RecipeRepository
	cafe        config.CafeConfig
	printerType string
	width       int
	receiptsDir string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	orderRepo repository.OrderRepository,
	recipeRepo repository.RecipeRepository,
	cafe config.CafeConfig,
	printerCfg config.PrinterConfig,
	receiptsDir string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		billRepo:    billRepo,
		orderRepo:   orderRepo,
		recipeRepo:  recipeRepo,
		cafe:        cafe,
		printerType: printerCfg.Type,
		width:       printerCfg.Width,
		receiptsDir: receiptsDir,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// BuildReceipt composes the printable receipt for a finalized bill. Totals
// are recomputed from the stored line items, discount and GST snapshot, so
// the receipt always matches what the bill persisted.
func (s *PrinterService) BuildReceipt(ctx context.Context, billID uuid.UUID) (*entity.Receipt, *entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	if bill == nil {
		return nil, nil, apperror.NewNotFoundError("Bill")
	}

	lines := make([]billing.Line, len(bill.Items))
	for i, it := range bill.Items {
		lines[i] = billing.Line{Name: it.Item.Name, Price: it.Price, Quantity: it.Quantity}
	}
	totals, err := billing.Compute(lines, bill.DiscountPercent, bill.GSTPercentage)
	if err != nil {
		return nil, nil, err
	}

	halfRate := bill.GSTPercentage.Div(two)

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			CafeName: s.cafe.Name,
			Address:  s.cafe.Address,
			Phone:    s.cafe.Phone,
			GSTIN:    s.cafe.GSTIN,
		},
		BillNumber:   bill.BillNumber,
		Date:         bill.CreatedAt.Format("02 Jan 2006 15:04"),
		Customer:     bill.CustomerName,
		Phone:        bill.CustomerPhone,
		PaymentMode:  bill.PaymentMode.String(),
		Subtotal:     totals.Subtotal.StringFixed(2),
		CGSTRate:     halfRate.String(),
		CGST:         totals.CGST.StringFixed(2),
		SGSTRate:     halfRate.String(),
		SGST:         totals.SGST.StringFixed(2),
		Total:        totals.Total.StringFixed(2),
		RoundedTotal: totals.RoundedTotal().StringFixed(0),
	}

	if totals.DiscountAmount.IsPositive() {
		receipt.DiscountPercent = bill.DiscountPercent.String()
		receipt.Discount = totals.DiscountAmount.StringFixed(2)
	}
	if bill.CashReceived != nil {
		receipt.CashReceived = bill.CashReceived.StringFixed(2)
	}
	if bill.ChangeReturned != nil {
		receipt.ChangeReturned = bill.ChangeReturned.StringFixed(2)
	}

	for _, it := range bill.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      it.Item.Name,
			Size:      it.Size.Label(),
			Quantity:  it.Quantity,
			UnitPrice: it.Price.StringFixed(2),
			Total:     it.LineTotal().StringFixed(2),
		})
	}

	return receipt, bill, nil
}

// renderReceipt lays out a receipt as an ESC/POS document.
func (s *PrinterService) renderReceipt(r *entity.Receipt) *printer.Document {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).SetFontSize(printer.FontDouble).
		Text(r.Header.CafeName).
		SetFontSize(printer.FontNormal).SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text("Ph: " + r.Header.Phone)
	}
	if r.Header.GSTIN != "" {
		doc.Text("GSTIN: " + r.Header.GSTIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Bill: "+r.BillNumber, r.Date)
	if r.Customer != "" {
		doc.Text("Customer: " + r.Customer)
	}
	doc.Separator('-')

	for _, it := range r.Items {
		doc.ItemLine(it.Quantity, it.Name, it.Size, it.Total)
	}

	doc.Separator('-').
		KeyValue("Subtotal", r.Subtotal)
	if r.Discount != "" {
		doc.KeyValue("Discount ("+r.DiscountPercent+"%)", "-"+r.Discount)
	}
	doc.KeyValue("CGST @ "+r.CGSTRate+"%", r.CGST).
		KeyValue("SGST @ "+r.SGSTRate+"%", r.SGST).
		Separator('-').
		SetBold(true).
		KeyValue("TOTAL", "Rs."+r.RoundedTotal).
		SetBold(false)
	if r.CashReceived != "" {
		doc.KeyValue("Cash", r.CashReceived).
			KeyValue("Change", r.ChangeReturned)
	}
	doc.KeyValue("Paid by", r.PaymentMode).
		Separator('-').
		SetAlign(printer.AlignCenter).
		Text("Thank you, visit again!").
		FeedLines(3).
		Cut()

	return doc
}

// renderTicket lays out a station ticket (KOT) as an ESC/POS document.
func (s *PrinterService) renderTicket(t *entity.KitchenTicket) *printer.Document {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).SetFontSize(printer.FontDouble).
		Text("** " + t.Station.String() + " **").
		SetFontSize(printer.FontNormal).SetBold(false).
		SetAlign(printer.AlignLeft).
		KeyValue("Order: "+t.OrderRef, t.Date)
	if t.Customer != "" {
		doc.Text("Customer: " + t.Customer)
	}
	doc.Separator('=')

	for _, it := range t.Items {
		doc.SetFontSize(printer.FontTall).
			TextF("%dx %s", it.Quantity, it.Name).
			SetFontSize(printer.FontNormal)
		if it.Notes != "" {
			doc.Text("   >> " + it.Notes)
		}
	}

	doc.Separator('=').
		FeedLines(3).
		Cut()

	return doc
}

// PrintBill renders and prints the receipt for a bill. The first print
// stores the plain-text render under the receipts directory and records the
// path on the bill; reprints do not overwrite it.
func (s *PrinterService) PrintBill(ctx context.Context, billID uuid.UUID) (*entity.Receipt, error) {
	receipt, bill, err := s.BuildReceipt(ctx, billID)
	if err != nil {
		return nil, err
	}

	doc := s.renderReceipt(receipt)

	if bill.ReceiptPath == "" && s.receiptsDir != "" {
		path, err := s.saveReceipt(bill.BillNumber, doc.PlainText())
		if err != nil {
			log.Printf("Warning: failed to save receipt for bill %s: %v", bill.BillNumber, err)
		} else if err := s.billRepo.SetReceiptPath(ctx, bill.ID, path); err != nil {
			log.Printf("Warning: failed to record receipt path for bill %s: %v", bill.BillNumber, err)
		}
	}

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// saveReceipt writes the plain-text receipt to the receipts directory.
func (s *PrinterService) saveReceipt(billNumber, text string) (string, error) {
	if err := os.MkdirAll(s.receiptsDir, 0o755); err != nil {
		return "", fmt.Errorf("printer: failed to create receipts dir: %w", err)
	}
	path := filepath.Join(s.receiptsDir, billNumber+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("printer: failed to write receipt: %w", err)
	}
	return path, nil
}

// BuildTicket composes the printable ticket for a single recipe.
func (s *PrinterService) BuildTicket(ctx context.Context, recipeID uuid.UUID) (*entity.KitchenTicket, error) {
	recipe, err := s.recipeRepo.GetWithItems(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}

	order, err := s.orderRepo.GetByID(ctx, recipe.OrderID)
	if err != nil {
		return nil, err
	}

	ticket := &entity.KitchenTicket{
		Station:  recipe.Station,
		OrderRef: shortRef(recipe.OrderID),
		Date:     recipe.CreatedAt.Format("15:04"),
	}
	if order != nil {
		ticket.Customer = order.CustomerName
	}
	for _, it := range recipe.Items {
		ticket.Items = append(ticket.Items, entity.TicketItem{
			Name:     it.ItemName,
			Quantity: it.Quantity,
			Priority: it.Priority,
			Notes:    it.Notes,
		})
	}
	return ticket, nil
}

// PrintTicket renders and prints the ticket for one recipe.
func (s *PrinterService) PrintTicket(ctx context.Context, recipeID uuid.UUID) (*entity.KitchenTicket, error) {
	ticket, err := s.BuildTicket(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(s.renderTicket(ticket).Bytes()); err != nil {
		return ticket, err
	}
	return ticket, nil
}

// PrintTicketsForOrder prints one ticket per station for an order.
func (s *PrinterService) PrintTicketsForOrder(ctx context.Context, orderID uuid.UUID) error {
	recipes, err := s.recipeRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	for _, r := range recipes {
		if _, err := s.PrintTicket(ctx, r.ID); err != nil {
			return err
		}
	}
	return nil
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("PRINTER TEST").
		SetBold(false).
		Text(s.cafe.Name).
		Text(time.Now().Format("02 Jan 2006 15:04:05")).
		Separator('-').
		Text("1234567890 ABCDEFGHIJ").
		FeedLines(3).
		Cut()
	return s.printer.Print(doc.Bytes())
}

// shortRef renders an order ID in the short form staff call out.
func shortRef(id uuid.UUID) string {
	return id.String()[:8]
}
