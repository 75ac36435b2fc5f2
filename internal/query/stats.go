package query

import (
	"time"

	"github.com/hacchu-app/hacchu/internal/order"
)

// Stats summarizes the collection for the management view. Amounts are
// recomputed from the line items, never read from the stored aggregates, so
// any drift in a persisted blob shows up here.
type Stats struct {
	TotalCount          int     `json:"totalCount"`
	TotalAmount         float64 `json:"totalAmount"`
	ThisMonthCount      int     `json:"thisMonthCount"`
	SelectedMonthCount  int     `json:"selectedMonthCount"`
	SelectedMonthAmount float64 `json:"selectedMonthAmount"`
}

// Collect computes the stats against the given navigation month.
func Collect(orders []order.Order, selected Month, now time.Time) Stats {
	if selected.IsZero() {
		selected = MonthOf(now)
	}
	thisMonth := MonthOf(now)

	var s Stats
	for _, o := range orders {
		amount := order.Subtotal(o.Items)
		s.TotalCount++
		s.TotalAmount += amount
		date, ok := o.Date()
		if !ok {
			continue
		}
		if thisMonth.Contains(date) {
			s.ThisMonthCount++
		}
		if selected.Contains(date) {
			s.SelectedMonthCount++
			s.SelectedMonthAmount += amount
		}
	}
	return s
}
