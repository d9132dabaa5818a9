package calc

import (
	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/shopspring/decimal"
)

func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ItemsTotal adds up the line totals of items. Lines stored without a
// total are priced from unit price and quantity.
func ItemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		line := it.LineTotal
		if line.IsZero() {
			line = LineTotal(it.UnitPrice, it.Quantity)
		}
		total = total.Add(line)
	}
	return total
}
