package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// ErrRender indicates the PDF library failed; no partial artifact is returned.
var ErrRender = errors.New("document: render failed")

const (
	pageMargin = 15.0
	tableWidth = 180.0
)

var columnWidths = []float64{42, 58, 25, 27, 28}

// PDFRenderer draws a paginated Layout onto A4 pages. Core PDF fonts cannot
// encode Japanese text; a configured UTF-8 TTF enables it, otherwise the
// renderer falls back to Helvetica.
type PDFRenderer struct {
	fontPath string
	metrics  Metrics
}

// NewPDFRenderer builds a renderer. fontPath may be empty.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{fontPath: fontPath, metrics: DefaultMetrics()}
}

// Render paginates and draws the document, returning the PDF bytes.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	layout := Paginate(doc, r.metrics)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	family := "Helvetica"
	if r.fontPath != "" {
		family = "docfont"
		pdf.AddUTF8Font(family, "", r.fontPath)
		pdf.AddUTF8Font(family, "B", r.fontPath)
	}

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, block := range page.Blocks {
			r.drawBlock(pdf, family, doc, block)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) drawBlock(pdf *gofpdf.Fpdf, family string, doc Document, block Block) {
	m := r.metrics
	switch block.Kind {
	case BlockHeader:
		pdf.SetFont(family, "B", 16)
		pdf.CellFormat(tableWidth, 10, doc.Title, "", 1, "C", false, 0, "")
		pdf.SetFont(family, "", 9)
		pdf.CellFormat(tableWidth, 6, "発注書番号: "+doc.OrderNumber, "", 1, "C", false, 0, "")
		pdf.Ln(m.Header - 16)
	case BlockParties:
		top := pdf.GetY()
		half := tableWidth / 2
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(half, 6, doc.From.Heading, "", 2, "L", false, 0, "")
		pdf.SetFont(family, "", 9)
		for _, line := range partyLines(doc.From) {
			pdf.CellFormat(half, 5, line, "", 2, "L", false, 0, "")
		}
		pdf.SetXY(pageMargin+half, top)
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(half, 6, doc.To.Heading, "", 2, "L", false, 0, "")
		pdf.SetFont(family, "", 9)
		for _, line := range partyLines(doc.To) {
			pdf.CellFormat(half, 5, line, "", 2, "L", false, 0, "")
		}
		pdf.SetXY(pageMargin, top+m.Parties)
	case BlockDetails:
		pdf.SetFont(family, "", 9)
		for _, d := range doc.Details {
			pdf.CellFormat(tableWidth, 5, d.Label+": "+d.Value, "", 1, "L", false, 0, "")
		}
		pdf.Ln(m.Details - float64(len(doc.Details))*5)
	case BlockTableHead:
		pdf.SetFont(family, "B", 9)
		pdf.SetFillColor(240, 240, 240)
		for i, col := range doc.Columns {
			pdf.CellFormat(columnWidths[i], m.TableHead, col, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	case BlockRows:
		pdf.SetFont(family, "", 9)
		for _, row := range doc.Rows[block.RowStart:block.RowEnd] {
			cells := []string{row.ProjectLabel, row.Name, row.Quantity, row.UnitPrice, row.LineSubtotal}
			aligns := []string{"L", "L", "C", "R", "R"}
			for i, cell := range cells {
				pdf.CellFormat(columnWidths[i], m.Row, cell, "1", 0, aligns[i], false, 0, "")
			}
			pdf.Ln(-1)
		}
	case BlockTotals:
		pdf.Ln(2)
		labelW, valueW := tableWidth-50, 50.0
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(labelW, 6, "小計:", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, doc.Totals.Subtotal, "", 1, "R", false, 0, "")
		pdf.CellFormat(labelW, 6, "消費税 (10%):", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, doc.Totals.Tax, "", 1, "R", false, 0, "")
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(labelW, 8, "合計金額:", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 8, doc.Totals.Total, "", 1, "R", false, 0, "")
	case BlockRemarks:
		pdf.SetFont(family, "B", 9)
		pdf.CellFormat(tableWidth, 5, "備考", "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 9)
		pdf.MultiCell(tableWidth, r.metrics.RemarksLine, doc.Remarks, "", "L", false)
	case BlockSignature:
		pdf.Ln(4)
		pdf.SetFont(family, "", 9)
		pdf.CellFormat(tableWidth, 5, doc.Closing, "", 1, "L", false, 0, "")
		if doc.Stamp != nil {
			r.drawStamp(pdf, family, doc.Stamp)
		}
	}
}

func (r *PDFRenderer) drawStamp(pdf *gofpdf.Fpdf, family string, stamp *Stamp) {
	x := pageMargin + tableWidth - 24
	y := pdf.GetY() + 2
	if _, err := os.Stat(stamp.ImagePath); err == nil {
		pdf.ImageOptions(stamp.ImagePath, x, y, 18, 18, false, gofpdf.ImageOptions{}, 0, "")
		return
	}
	// missing image: draw the named placeholder seal instead
	pdf.SetDrawColor(200, 30, 30)
	pdf.Circle(x+9, y+9, 9, "D")
	pdf.SetTextColor(200, 30, 30)
	pdf.SetFont(family, "", 8)
	pdf.SetXY(x, y+6)
	pdf.CellFormat(18, 5, stamp.Staff, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
}

func partyLines(p Party) []string {
	lines := make([]string, 0, 5)
	if p.Name != "" {
		lines = append(lines, p.Name)
	}
	if p.Address != "" {
		lines = append(lines, p.Address)
	}
	if p.Phone != "" {
		lines = append(lines, p.Phone)
	}
	if p.Email != "" {
		lines = append(lines, "Email: "+p.Email)
	}
	if p.Staff != "" {
		lines = append(lines, "担当: "+p.Staff)
	}
	if p.Contact != "" {
		lines = append(lines, "担当者: "+p.Contact)
	}
	return lines
}
