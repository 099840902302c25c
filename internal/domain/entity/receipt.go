package entity

import (
	"github.com/mahakaal/cafepos/internal/domain/enum"
)

// ReceiptHeader holds the cafe header printed at the top of a receipt.
type ReceiptHeader struct {
	CafeName string `json:"cafe_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	GSTIN    string `json:"gstin,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// Receipt is a value object representing a printable customer receipt.
// It is NOT a database entity - it is composed from a finalized bill at
// print time. Amounts are fixed two-decimal strings; RoundedTotal is the
// whole-rupee figure shown for cash tendering.
type Receipt struct {
	Header          ReceiptHeader `json:"header"`
	BillNumber      string        `json:"bill_number"`
	Date            string        `json:"date"`
	Customer        string        `json:"customer,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	PaymentMode     string        `json:"payment_mode"`
	Items           []ReceiptItem `json:"items"`
	Subtotal        string        `json:"subtotal"`
	DiscountPercent string        `json:"discount_percent,omitempty"`
	Discount        string        `json:"discount,omitempty"`
	CGSTRate        string        `json:"cgst_rate"`
	CGST            string        `json:"cgst"`
	SGSTRate        string        `json:"sgst_rate"`
	SGST            string        `json:"sgst"`
	Total           string        `json:"total"`
	RoundedTotal    string        `json:"rounded_total"`
	CashReceived    string        `json:"cash_received,omitempty"`
	ChangeReturned  string        `json:"change_returned,omitempty"`
}

// TicketItem is one line on a station ticket.
type TicketItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Priority int    `json:"priority"`
	Notes    string `json:"notes,omitempty"`
}

// KitchenTicket is a value object representing a printable station ticket
// (KOT), composed from a recipe at print time. Items arrive already sorted
// by ascending priority.
type KitchenTicket struct {
	Station  enum.Station `json:"station"`
	OrderRef string       `json:"order_ref"`
	Customer string       `json:"customer,omitempty"`
	Date     string       `json:"date"`
	Items    []TicketItem `json:"items"`
}
