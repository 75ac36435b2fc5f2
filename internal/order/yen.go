package order

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var yenPrinter = message.NewPrinter(language.Japanese)

// FormatYen renders an amount as a grouped yen string ("¥1,234,500").
// Fractional amounts can occur when quantities are fractional (area-based
// line items); those keep two decimals.
func FormatYen(v float64) string {
	if v == math.Trunc(v) {
		return yenPrinter.Sprintf("¥%d", int64(v))
	}
	return yenPrinter.Sprintf("¥%.2f", v)
}
