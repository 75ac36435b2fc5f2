package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hacchu-app/hacchu/internal/order"
)

// exportPDF writes a one-line-per-order summary list. Unlike the other
// formats it refuses an empty collection.
func (e *Exporter) exportPDF(orders []order.Order, w Window) (Artifact, error) {
	if len(orders) == 0 {
		return Artifact{}, ErrNoData
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)

	family := "Helvetica"
	if e.fontPath != "" {
		family = "docfont"
		pdf.AddUTF8Font(family, "", e.fontPath)
		pdf.AddUTF8Font(family, "B", e.fontPath)
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(180, 10, "発注書一覧 ("+e.windowLabel(w)+")", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	var grand float64
	for i, o := range orders {
		subtotal := order.Subtotal(o.Items)
		tax := order.Tax(subtotal)
		total := order.Total(subtotal, tax)
		grand += total

		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(120, 6, fmt.Sprintf("%d. %s", i+1, o.SupplierName), "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(60, 6, order.FormatYen(total), "", 1, "R", false, 0, "")
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(180, 5, fmt.Sprintf("%s / 発注日: %s / 担当: %s", o.ID, o.OrderDate, o.StaffMember), "", 1, "L", false, 0, "")
		pdf.SetDrawColor(200, 200, 200)
		y := pdf.GetY() + 1
		pdf.Line(15, y, 195, y)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Ln(3)
	}

	pdf.Ln(2)
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(120, 8, fmt.Sprintf("件数: %d件", len(orders)), "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "合計 "+order.FormatYen(grand), "", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return Artifact{}, fmt.Errorf("export: render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("export: write pdf: %w", err)
	}
	return Artifact{
		Filename:    e.Filename(w, ".pdf"),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}
