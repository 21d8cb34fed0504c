package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount formats a monetary amount with two decimal places, the
// precision every report and derived total uses.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatUnits formats a truck load quantity. Units are recorded to at most
// three decimals on the weighbridge.
func FormatUnits(units decimal.Decimal) string {
	return units.Round(3).String()
}
