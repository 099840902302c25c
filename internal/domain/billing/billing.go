// Package billing holds the monetary arithmetic for bills: subtotal,
// discount, GST split and grand total. Everything is computed with exact
// decimals; results are rounded to two places at the boundary, never in
// between.
package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPrice is returned when a line carries a zero or negative price.
	ErrInvalidPrice = errors.New("billing: line price must be positive")
	// ErrInvalidPercent is returned when a percentage is outside [0, 100].
	ErrInvalidPercent = errors.New("billing: percent must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// Line is one priced cart line.
type Line struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Total returns price x quantity for the line.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals is the full monetary breakdown of a bill.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Taxable        decimal.Decimal
	CGST           decimal.Decimal
	SGST           decimal.Decimal
	GSTAmount      decimal.Decimal
	Total          decimal.Decimal
}

// RoundedTotal returns the grand total rounded to the nearest whole rupee.
// Used for cash tendering display only; the persisted total keeps two
// decimal places.
func (t Totals) RoundedTotal() decimal.Decimal {
	return t.Total.Round(0)
}

// Subtotal sums price x quantity over the given lines. Lines with a
// quantity of zero or less are skipped rather than rejected: the cashier UI
// submits the whole menu grid and untouched rows arrive with qty 0. A
// non-positive price is always an error.
func Subtotal(lines []Line) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if !l.Price.IsPositive() {
			return decimal.Zero, ErrInvalidPrice
		}
		sum = sum.Add(l.Total())
	}
	return sum, nil
}

// Discount computes the discount amount for a subtotal, capped so the
// taxable amount can never go negative.
func Discount(subtotal, percent decimal.Decimal) (decimal.Decimal, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return decimal.Zero, ErrInvalidPercent
	}
	amount := subtotal.Mul(percent).Div(hundred).Round(2)
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount, nil
}

// SplitGST computes the CGST and SGST components on a taxable amount. Each
// half is computed by halving the rate and rounded to two places on its
// own, so the two printed tax lines always sum to the bill's GST amount.
// The bill-level GST is defined as cgst + sgst, which can differ from a
// single-shot computation by a paisa; the split form is the one this
// system persists and prints.
func SplitGST(taxable, rate decimal.Decimal) (cgst, sgst decimal.Decimal) {
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	half := rate.Div(decimal.NewFromInt(2))
	cgst = taxable.Mul(half).Div(hundred).Round(2)
	sgst = cgst
	return cgst, sgst
}

// Compute derives the complete breakdown for a cart: subtotal, discount,
// taxable amount, split GST and grand total.
func Compute(lines []Line, discountPercent, gstRate decimal.Decimal) (Totals, error) {
	if gstRate.IsNegative() || gstRate.GreaterThan(hundred) {
		return Totals{}, ErrInvalidPercent
	}

	subtotal, err := Subtotal(lines)
	if err != nil {
		return Totals{}, err
	}

	discount, err := Discount(subtotal, discountPercent)
	if err != nil {
		return Totals{}, err
	}

	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	cgst, sgst := SplitGST(taxable, gstRate)
	gst := cgst.Add(sgst)

	return Totals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discount,
		Taxable:        taxable.Round(2),
		CGST:           cgst,
		SGST:           sgst,
		GSTAmount:      gst,
		Total:          subtotal.Sub(discount).Add(gst).Round(2),
	}, nil
}
