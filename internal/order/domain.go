// Package order holds the purchase-order domain: the line-item and order
// models, the pricing rules, draft assembly from raw form rows, validation,
// and the repository over the persisted collection.
package order

import (
	"strings"
	"time"
)

func trimmed(s string) string { return strings.TrimSpace(s) }

// DateLayout is the ISO date format used for OrderDate.
const DateLayout = "2006-01-02"

// LineItem is one row of an order: a labeled quantity of a named good or
// service at a unit price.
type LineItem struct {
	ProjectLabel string  `json:"projectName"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
}

// Void reports whether the item lacks identifying text. Void rows are
// excluded from persistence, totals and rendered documents.
func (it LineItem) Void() bool {
	return trimmed(it.Name) == "" && trimmed(it.ProjectLabel) == ""
}

// Order is a dated purchase-order document addressed from the issuing company
// to a supplier, composed of line items plus computed totals. The stored
// Subtotal/Tax/Total fields are display hints; every write path recomputes
// them from Items.
type Order struct {
	ID              string     `json:"id"`
	OrderDate       string     `json:"orderDate"`
	CompanyName     string     `json:"companyName"`
	CompanyAddress  string     `json:"companyAddress"`
	CompanyPhone    string     `json:"companyPhone"`
	CompanyEmail    string     `json:"companyEmail"`
	StaffMember     string     `json:"staffMember"`
	SupplierName    string     `json:"supplierName"`
	SupplierAddress string     `json:"supplierAddress"`
	ContactPerson   string     `json:"contactPerson"`
	ProjectTitle    string     `json:"projectTitle"`
	PaymentTerms    string     `json:"paymentTerms"`
	CompletionMonth string     `json:"completionMonth"`
	Remarks         string     `json:"remarks"`
	Items           []LineItem `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Recalculate rederives the aggregate amounts from Items.
func (o *Order) Recalculate() {
	o.Subtotal = Subtotal(o.Items)
	o.Tax = Tax(o.Subtotal)
	o.Total = Total(o.Subtotal, o.Tax)
}

// Date parses OrderDate. The zero time and false are returned when the field
// is blank or malformed; callers treat such orders as matching no calendar
// window.
func (o Order) Date() (time.Time, bool) {
	t, err := time.Parse(DateLayout, trimmed(o.OrderDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ItemCount returns the number of non-void items.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		if !it.Void() {
			n++
		}
	}
	return n
}
