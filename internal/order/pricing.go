package order

import "math"

// TaxRate is the consumption tax rate applied to the order subtotal.
const TaxRate = 0.10

// sanitize clamps out-of-domain amounts (negative, NaN, infinite) to zero so
// pricing stays total over whatever the form layer hands in.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// LineSubtotal computes quantity times unit price for one item.
func LineSubtotal(it LineItem) float64 {
	return sanitize(it.Quantity) * sanitize(it.UnitPrice)
}

// Subtotal sums line subtotals over the non-void items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		if it.Void() {
			continue
		}
		sum += LineSubtotal(it)
	}
	return sum
}

// Tax computes consumption tax on a subtotal. Fractions always round up to
// the next whole yen.
func Tax(subtotal float64) float64 {
	return math.Ceil(sanitize(subtotal) * TaxRate)
}

// Total is the grand total of subtotal plus tax.
func Total(subtotal, tax float64) float64 {
	return sanitize(subtotal) + sanitize(tax)
}
