package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hacchu-app/hacchu/internal/order"
)

var csvHeader = []string{
	"発注書ID", "発注日", "発注先会社名", "発注先住所", "担当者名",
	"会社名", "担当", "商品数", "小計", "消費税", "合計金額", "備考",
}

// exportCSV writes one row per order with recomputed aggregates. The file
// carries a UTF-8 BOM and CRLF line endings so spreadsheet tools pick up the
// Japanese headers.
func (e *Exporter) exportCSV(orders []order.Order, w Window) (Artifact, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	cw := csv.NewWriter(&buf)
	cw.UseCRLF = true
	if err := cw.Write(csvHeader); err != nil {
		return Artifact{}, fmt.Errorf("export: write csv header: %w", err)
	}

	for _, o := range orders {
		subtotal := order.Subtotal(o.Items)
		tax := order.Tax(subtotal)
		row := []string{
			o.ID,
			o.OrderDate,
			o.SupplierName,
			o.SupplierAddress,
			o.ContactPerson,
			o.CompanyName,
			o.StaffMember,
			strconv.Itoa(o.ItemCount()),
			formatAmount(subtotal),
			formatAmount(tax),
			formatAmount(order.Total(subtotal, tax)),
			o.Remarks,
		}
		if err := cw.Write(row); err != nil {
			return Artifact{}, fmt.Errorf("export: write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return Artifact{}, fmt.Errorf("export: flush csv: %w", err)
	}
	return Artifact{
		Filename:    e.Filename(w, ".csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
