package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(price string, qty int) Line {
	return Line{UnitPrice: decimal.RequireFromString(price), Qty: qty}
}

func TestCalcPrices_SingleLine(t *testing.T) {
	p := CalcPrices([]Line{line("25.00", 2)})

	assert.Equal(t, "50.00", p.Items.StringFixed(2))
	assert.Equal(t, "10.00", p.Shipping.StringFixed(2))
	assert.Equal(t, "7.50", p.Tax.StringFixed(2))
	assert.Equal(t, "67.50", p.Total.StringFixed(2))
}

func TestCalcPrices_FreeShippingAboveThreshold(t *testing.T) {
	p := CalcPrices([]Line{line("100.01", 1)})

	assert.True(t, p.Shipping.IsZero())
	assert.Equal(t, "115.01", p.Total.StringFixed(2))
}

func TestCalcPrices_ShippingChargedAtThreshold(t *testing.T) {
	// 恰好 100 不免运费，策略是严格大于
	p := CalcPrices([]Line{line("100.00", 1)})

	assert.Equal(t, "10.00", p.Shipping.StringFixed(2))
}

func TestCalcPrices_EmptyCart(t *testing.T) {
	p := CalcPrices(nil)

	assert.Equal(t, "0.00", p.Items.StringFixed(2))
	assert.Equal(t, "10.00", p.Shipping.StringFixed(2))
	assert.Equal(t, "0.00", p.Tax.StringFixed(2))
	assert.Equal(t, "10.00", p.Total.StringFixed(2))
}

func TestCalcPrices_RoundsHalfUp(t *testing.T) {
	// 0.15 × 33.50 = 5.025 → 5.03
	p := CalcPrices([]Line{line("33.50", 1)})

	assert.Equal(t, "5.03", p.Tax.StringFixed(2))
}

func TestCalcPrices_TotalInvariant(t *testing.T) {
	cases := [][]Line{
		{line("1.99", 3)},
		{line("25.00", 2), line("9.99", 1)},
		{line("49.99", 4)},
		{line("0.01", 1)},
	}

	for _, lines := range cases {
		p := CalcPrices(lines)
		sum := p.Items.Add(p.Tax).Add(p.Shipping)
		assert.True(t, sum.Equal(p.Total), "items+tax+shipping should equal total for %v", lines)
		assert.Equal(t, p.Shipping.IsZero(), p.Items.GreaterThan(decimal.NewFromInt(100)))
	}
}
