package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2}

// USD renders a decimal amount for display, e.g. $1,299.99.
func USD(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount)
}
