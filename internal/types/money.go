package types

import "github.com/shopspring/decimal"

func init() {
	// Storefront clients read prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatSoles renders an amount the way the storefront prints it, e.g. "S/ 189.00".
func FormatSoles(amount decimal.Decimal) string {
	return "S/ " + amount.StringFixed(2)
}
