package order

import (
	"strconv"
	"time"
)

// RowInput is one raw line-item row as collected by the form layer. Quantity
// and unit price arrive as untrimmed strings; parsing and the retention rule
// live here so placeholder rows (presets with a blank quantity) never reach a
// saved order.
type RowInput struct {
	ProjectLabel string `json:"projectName"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	UnitPrice    string `json:"unitPrice"`
}

// DraftInput carries everything the form collects for one order.
type DraftInput struct {
	OrderID         string     `json:"orderId"`
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
	Rows            []RowInput `json:"rows"`
}

// CompanyDefaults fills blank issuing-party fields on drafts.
type CompanyDefaults struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Retain reports whether a raw row survives draft assembly: it needs
// identifying text, a positive quantity and a non-negative unit price.
// Rows failing the rule are dropped silently, not treated as errors.
func (r RowInput) Retain() bool {
	if trimmed(r.Name) == "" && trimmed(r.ProjectLabel) == "" {
		return false
	}
	qty, err := strconv.ParseFloat(trimmed(r.Quantity), 64)
	if err != nil || qty <= 0 {
		return false
	}
	price, err := strconv.ParseFloat(trimmed(r.UnitPrice), 64)
	if err != nil || price < 0 {
		return false
	}
	return true
}

// Item converts a retained row into the typed line item.
func (r RowInput) Item() LineItem {
	qty, _ := strconv.ParseFloat(trimmed(r.Quantity), 64)
	price, _ := strconv.ParseFloat(trimmed(r.UnitPrice), 64)
	return LineItem{
		ProjectLabel: trimmed(r.ProjectLabel),
		Name:         trimmed(r.Name),
		Quantity:     sanitize(qty),
		Unit:         trimmed(r.Unit),
		UnitPrice:    sanitize(price),
	}
}

// BuildDraft assembles an Order from raw form input, applying the retention
// rule and recomputing the aggregate amounts. The returned order carries the
// input's ID untouched; identifier generation is the repository's job.
func BuildDraft(in DraftInput, now time.Time) Order {
	o := Order{
		ID:              trimmed(in.OrderID),
		OrderDate:       trimmed(in.OrderDate),
		CompanyName:     trimmed(in.CompanyName),
		CompanyAddress:  trimmed(in.CompanyAddress),
		CompanyPhone:    trimmed(in.CompanyPhone),
		CompanyEmail:    trimmed(in.CompanyEmail),
		StaffMember:     trimmed(in.StaffMember),
		SupplierName:    trimmed(in.SupplierName),
		SupplierAddress: trimmed(in.SupplierAddress),
		ContactPerson:   trimmed(in.ContactPerson),
		ProjectTitle:    trimmed(in.ProjectTitle),
		PaymentTerms:    trimmed(in.PaymentTerms),
		CompletionMonth: trimmed(in.CompletionMonth),
		Remarks:         trimmed(in.Remarks),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, row := range in.Rows {
		if !row.Retain() {
			continue
		}
		o.Items = append(o.Items, row.Item())
	}
	o.Recalculate()
	return o
}

// ApplyCompanyDefaults fills blank issuing-party fields from configuration.
func ApplyCompanyDefaults(o *Order, d CompanyDefaults) {
	if o.CompanyName == "" {
		o.CompanyName = d.Name
	}
	if o.CompanyAddress == "" {
		o.CompanyAddress = d.Address
	}
	if o.CompanyPhone == "" {
		o.CompanyPhone = d.Phone
	}
	if o.CompanyEmail == "" {
		o.CompanyEmail = d.Email
	}
}
