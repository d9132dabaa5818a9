package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

func Money(amount interface{}) string {
	var d decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		d = v
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return usd.FormatMoneyDecimal(decimal.Zero)
		}
		d = parsed
	default:
		return usd.FormatMoneyDecimal(decimal.Zero)
	}
	return usd.FormatMoneyDecimal(d)
}

// Date renders a date the way the admin tables show it.
func Date(t interface{ Format(string) string }) string {
	return t.Format("2006-01-02")
}
