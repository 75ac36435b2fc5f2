// Package document turns an order into a renderer-agnostic structured
// document: header, party blocks, detail strip, item table, totals, remarks
// and an optional signature stamp. Renderers (HTML preview, PDF) consume the
// structure; they decide typography, the assembler decides content.
package document

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hacchu-app/hacchu/internal/order"
)

// StampRegistry maps an exact staff member name to a stamp image path.
// Unrecognized or blank staff names render without a stamp.
type StampRegistry map[string]string

// Party is one side of the order: the issuing company or the supplier.
type Party struct {
	Heading string `json:"heading"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Staff   string `json:"staff,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// Detail is one label/value pair of the detail strip.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is one rendered table row, amounts already formatted.
type Row struct {
	ProjectLabel string `json:"projectLabel"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	LineSubtotal string `json:"lineSubtotal"`
}

// Totals is the formatted totals block.
type Totals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Stamp marks the signature area with a registered staff stamp.
type Stamp struct {
	Staff     string `json:"staff"`
	ImagePath string `json:"imagePath"`
}

// Document is the assembled, ordered structure of one purchase order.
type Document struct {
	Title       string   `json:"title"`
	OrderNumber string   `json:"orderNumber"`
	OrderID     string   `json:"orderId"`
	From        Party    `json:"from"`
	To          Party    `json:"to"`
	Details     []Detail `json:"details"`
	Columns     []string `json:"columns"`
	Rows        []Row    `json:"rows"`
	Totals      Totals   `json:"totals"`
	Remarks     string   `json:"remarks,omitempty"`
	Closing     string   `json:"closing"`
	Stamp       *Stamp   `json:"stamp,omitempty"`
}

var tableColumns = []string{"工事名", "商品名", "数量", "単価", "小計"}

const closingText = "この度はお取引いただき、誠にありがとうございます。"

// Assembler builds Documents from orders.
type Assembler struct {
	stamps StampRegistry
	now    func() time.Time
}

// NewAssembler constructs an Assembler with the given stamp registry.
func NewAssembler(stamps StampRegistry) *Assembler {
	return &Assembler{stamps: stamps, now: time.Now}
}

// Assemble converts an order into its document structure. Totals are always
// recomputed from the items; the display order number is generated fresh and
// is distinct from the storage id.
func (a *Assembler) Assemble(o order.Order) Document {
	title := "発注書"
	if o.ProjectTitle != "" {
		title += " - " + o.ProjectTitle
	}

	doc := Document{
		Title:       title,
		OrderNumber: a.orderNumber(),
		OrderID:     o.ID,
		From: Party{
			Heading: "発注元",
			Name:    o.CompanyName,
			Address: o.CompanyAddress,
			Phone:   o.CompanyPhone,
			Email:   o.CompanyEmail,
			Staff:   o.StaffMember,
		},
		To: Party{
			Heading: "発注先",
			Name:    o.SupplierName,
			Address: o.SupplierAddress,
			Contact: o.ContactPerson,
		},
		Columns: tableColumns,
		Remarks: o.Remarks,
		Closing: closingText,
	}

	doc.Details = append(doc.Details, Detail{Label: "発注日", Value: o.OrderDate})
	if o.CompletionMonth != "" {
		doc.Details = append(doc.Details, Detail{Label: "工事完了月", Value: o.CompletionMonth})
	}
	doc.Details = append(doc.Details, Detail{Label: "支払条件", Value: o.PaymentTerms})

	for _, it := range o.Items {
		if it.Void() {
			continue
		}
		doc.Rows = append(doc.Rows, Row{
			ProjectLabel: it.ProjectLabel,
			Name:         it.Name,
			Quantity:     fmt.Sprintf("%v %s", it.Quantity, it.Unit),
			UnitPrice:    order.FormatYen(it.UnitPrice),
			LineSubtotal: order.FormatYen(order.LineSubtotal(it)),
		})
	}

	subtotal := order.Subtotal(o.Items)
	tax := order.Tax(subtotal)
	doc.Totals = Totals{
		Subtotal: order.FormatYen(subtotal),
		Tax:      order.FormatYen(tax),
		Total:    order.FormatYen(order.Total(subtotal, tax)),
	}

	if path, ok := a.stamps[o.StaffMember]; ok && o.StaffMember != "" {
		doc.Stamp = &Stamp{Staff: o.StaffMember, ImagePath: path}
	}
	return doc
}

// orderNumber generates the display number printed on the document.
func (a *Assembler) orderNumber() string {
	return fmt.Sprintf("ORD-%s-%03d", a.now().Format("20060102"), rand.IntN(1000))
}
