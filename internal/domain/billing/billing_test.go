package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(name string, price string, qty int) Line {
	return Line{Name: name, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestComputeLatteCroissant(t *testing.T) {
	lines := []Line{
		line("Latte", "150.00", 2),
		line("Croissant", "90.00", 1),
	}

	totals, err := Compute(lines, decimal.NewFromInt(10), decimal.NewFromInt(18))
	require.NoError(t, err)

	assert.Equal(t, "390.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "39.00", totals.DiscountAmount.StringFixed(2))
	assert.Equal(t, "351.00", totals.Taxable.StringFixed(2))
	assert.Equal(t, "31.59", totals.CGST.StringFixed(2))
	assert.Equal(t, "31.59", totals.SGST.StringFixed(2))
	assert.Equal(t, "63.18", totals.GSTAmount.StringFixed(2))
	assert.Equal(t, "414.18", totals.Total.StringFixed(2))
	assert.Equal(t, "414", totals.RoundedTotal().String())
}

func TestComputeTotalIdentity(t *testing.T) {
	cases := []struct {
		name     string
		lines    []Line
		discount string
		gst      string
	}{
		{"no discount no gst", []Line{line("Espresso", "120.00", 3)}, "0", "0"},
		{"discount only", []Line{line("Mocha", "180.50", 2)}, "25", "0"},
		{"gst only", []Line{line("Sandwich", "149.99", 1)}, "0", "5"},
		{"both", []Line{line("Latte", "150.00", 2), line("Brownie", "95.00", 3)}, "12.5", "18"},
		{"full discount", []Line{line("Tea", "40.00", 1)}, "100", "18"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals, err := Compute(tc.lines, decimal.RequireFromString(tc.discount), decimal.RequireFromString(tc.gst))
			require.NoError(t, err)

			// total == subtotal - discount + gst
			want := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.GSTAmount)
			assert.True(t, totals.Total.Equal(want), "total %s != %s", totals.Total, want)

			// discount never exceeds subtotal
			assert.True(t, totals.DiscountAmount.LessThanOrEqual(totals.Subtotal))

			// split halves always add up to the GST line
			assert.True(t, totals.CGST.Add(totals.SGST).Equal(totals.GSTAmount))

			assert.False(t, totals.Taxable.IsNegative())
		})
	}
}

func TestSubtotalSkipsZeroQuantityLines(t *testing.T) {
	lines := []Line{
		line("Latte", "150.00", 2),
		line("Croissant", "90.00", 0),
		line("Muffin", "75.00", -1),
	}

	subtotal, err := Subtotal(lines)
	require.NoError(t, err)
	assert.Equal(t, "300.00", subtotal.StringFixed(2))
}

func TestSubtotalRejectsNonPositivePrice(t *testing.T) {
	_, err := Subtotal([]Line{line("Latte", "0.00", 1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = Subtotal([]Line{line("Latte", "-10.00", 1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	// a bad price on a skipped line is never inspected
	_, err = Subtotal([]Line{line("Latte", "-10.00", 0)})
	assert.NoError(t, err)
}

func TestDiscountCap(t *testing.T) {
	subtotal := decimal.RequireFromString("100.00")

	for _, pct := range []string{"0", "10", "33.33", "99.99", "100"} {
		amount, err := Discount(subtotal, decimal.RequireFromString(pct))
		require.NoError(t, err)
		assert.True(t, amount.LessThanOrEqual(subtotal), "discount %s at %s%%", amount, pct)
		assert.False(t, amount.IsNegative())
	}
}

func TestDiscountRejectsOutOfRangePercent(t *testing.T) {
	subtotal := decimal.RequireFromString("100.00")

	_, err := Discount(subtotal, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidPercent)

	_, err = Discount(subtotal, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func TestSplitGSTFloorsNegativeTaxable(t *testing.T) {
	cgst, sgst := SplitGST(decimal.NewFromInt(-50), decimal.NewFromInt(18))
	assert.True(t, cgst.IsZero())
	assert.True(t, sgst.IsZero())
}

func TestSplitGSTHalvesRateNotTotal(t *testing.T) {
	// 100.05 @ 18%: each half is 100.05 * 9 / 100 = 9.0045 -> 9.00, so the
	// split sum is 18.00 while a single-shot 18% would give 18.009 -> 18.01.
	// The split form is the one the system persists.
	cgst, sgst := SplitGST(decimal.RequireFromString("100.05"), decimal.NewFromInt(18))
	assert.Equal(t, "9.00", cgst.StringFixed(2))
	assert.Equal(t, "9.00", sgst.StringFixed(2))
	assert.Equal(t, "18.00", cgst.Add(sgst).StringFixed(2))
}

func TestComputeEmptyCart(t *testing.T) {
	totals, err := Compute(nil, decimal.NewFromInt(10), decimal.NewFromInt(18))
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}
