package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision renders amount with exactly precision fractional digits.
// Example: 6.7 with precision 2 returns "6.70"; 1516 with precision 0 returns "1516".
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}
