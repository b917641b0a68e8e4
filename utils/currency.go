package utils

import (
	"fmt"
	"math"
)

// RoundCurrency rounds a monetary amount to two decimal places.
// All order totals, discounts and loyalty credits pass through here so
// float arithmetic never leaks sub-cent noise into stored amounts.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrency renders an amount as a display string, e.g. 1234.5 -> "$1234.50".
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", RoundCurrency(amount))
}
