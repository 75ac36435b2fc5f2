package query

import (
	"strings"
	"time"

	"github.com/hacchu-app/hacchu/internal/order"
)

// Mode selects the calendar window an order's date is matched against.
type Mode string

const (
	// ModeDefault behaves as ModeSelectedMonth bound to Filter.Selected.
	ModeDefault       Mode = ""
	ModeAll           Mode = "all"
	ModeThisMonth     Mode = "thisMonth"
	ModeLastMonth     Mode = "lastMonth"
	ModeThisYear      Mode = "thisYear"
	ModeSelectedMonth Mode = "selectedMonth"
)

// Filter combines a free-text query with a calendar window. Both predicates
// must hold for an order to pass.
type Filter struct {
	Query    string
	Mode     Mode
	Selected Month     // navigation state for ModeSelectedMonth / ModeDefault
	Now      time.Time // reference for thisMonth / lastMonth / thisYear
}

// Apply returns the matching subsequence of orders, preserving input order.
func (f Filter) Apply(orders []order.Order) []order.Order {
	out := make([]order.Order, 0, len(orders))
	query := strings.ToLower(strings.TrimSpace(f.Query))
	for _, o := range orders {
		if !matchesText(o, query) {
			continue
		}
		if !f.matchesWindow(o) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesText(o order.Order, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{
		o.ID, o.SupplierName, o.CompanyName, o.ContactPerson, o.StaffMember, o.Remarks,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), query) ||
			strings.Contains(strings.ToLower(it.ProjectLabel), query) {
			return true
		}
	}
	return false
}

func (f Filter) matchesWindow(o order.Order) bool {
	if f.Mode == ModeAll {
		return true
	}
	date, ok := o.Date()
	if !ok {
		// an unparsable date matches no calendar window
		return false
	}
	switch f.Mode {
	case ModeThisMonth:
		return MonthOf(f.Now).Contains(date)
	case ModeLastMonth:
		return MonthOf(f.Now).Step(-1).Contains(date)
	case ModeThisYear:
		return date.Year() == f.Now.Year()
	default: // ModeSelectedMonth and ModeDefault
		selected := f.Selected
		if selected.IsZero() {
			selected = MonthOf(f.Now)
		}
		return selected.Contains(date)
	}
}
