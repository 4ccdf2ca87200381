// Package pricing 实现购物车与订单的计价策略。
// 纯函数，无副作用：四项金额始终由当前行项目重新计算得出，不允许单独修改。
package pricing

import "github.com/shopspring/decimal"

var (
	// 免运费门槛：商品小计超过该值免运费
	freeShippingThreshold = decimal.NewFromInt(100)
	// 固定运费
	shippingFee = decimal.NewFromInt(10)
	// 税率
	taxRate = decimal.RequireFromString("0.15")
)

// Line 参与计价的一行：加购时锁定的单价 × 数量
type Line struct {
	UnitPrice decimal.Decimal
	Qty       int
}

// Prices 计价结果，四项金额均四舍五入到两位小数
type Prices struct {
	Items    decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CalcPrices 按固定策略计算四项金额：
// items = Σ 单价×数量；运费 = items > 100 ? 0 : 10；税 = 0.15 × items；
// total = items + tax + shipping。
func CalcPrices(lines []Line) Prices {
	items := decimal.Zero
	for _, line := range lines {
		items = items.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	items = items.Round(2)

	shipping := shippingFee
	if items.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}
	shipping = shipping.Round(2)

	tax := items.Mul(taxRate).Round(2)
	total := items.Add(tax).Add(shipping).Round(2)

	return Prices{
		Items:    items,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}

// Zero 返回全零金额，用于订单创建后清空购物车
func Zero() Prices {
	return Prices{
		Items:    decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
}
