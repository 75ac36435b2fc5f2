package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hacchu-app/hacchu/internal/order"
)

const excelSheet = "発注書一覧"

var excelWidths = []float64{20, 12, 24, 32, 14, 24, 12, 8, 12, 12, 14, 32}

// exportExcel writes the collection as a real .xlsx workbook, one sheet with
// the same columns as the CSV export. Amounts are written as numbers so the
// spreadsheet can sum them.
func (e *Exporter) exportExcel(orders []order.Order, w Window) (Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return Artifact{}, fmt.Errorf("export: name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("export: header style: %w", err)
	}

	for i, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(excelSheet, cell, h); err != nil {
			return Artifact{}, fmt.Errorf("export: write header: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(excelSheet, col, col, excelWidths[i]); err != nil {
			return Artifact{}, fmt.Errorf("export: set column width: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(csvHeader), 1)
	if err := f.SetCellStyle(excelSheet, "A1", last, headerStyle); err != nil {
		return Artifact{}, fmt.Errorf("export: apply header style: %w", err)
	}

	for r, o := range orders {
		subtotal := order.Subtotal(o.Items)
		tax := order.Tax(subtotal)
		values := []any{
			o.ID, o.OrderDate, o.SupplierName, o.SupplierAddress, o.ContactPerson,
			o.CompanyName, o.StaffMember, o.ItemCount(),
			subtotal, tax, order.Total(subtotal, tax), o.Remarks,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				return Artifact{}, fmt.Errorf("export: write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Artifact{}, fmt.Errorf("export: write workbook: %w", err)
	}
	return Artifact{
		Filename:    e.Filename(w, ".xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
