// Package export turns an order collection into downloadable artifacts:
// JSON for backup and restore, CSV and Excel for spreadsheet work, and a
// PDF summary list. Filenames are derived from the filter window so repeated
// exports of the same view overwrite each other.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/hacchu-app/hacchu/internal/order"
	"github.com/hacchu-app/hacchu/internal/query"
)

// Format selects the artifact type.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ErrNoData is returned when a format refuses to render an empty collection.
var ErrNoData = errors.New("export: no orders to export")

// ErrUnknownFormat is returned for a format the exporter does not know.
var ErrUnknownFormat = errors.New("export: unknown format")

// Window describes the filter view an export was taken from; it only
// influences the filename.
type Window struct {
	Mode     query.Mode
	Selected query.Month
}

// Artifact is one finished download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter renders artifacts. The PDF summary honors the same optional
// UTF-8 font as the document renderer.
type Exporter struct {
	fontPath string
	now      func() time.Time
}

// NewExporter builds an Exporter. fontPath may be empty.
func NewExporter(fontPath string) *Exporter {
	return &Exporter{fontPath: fontPath, now: time.Now}
}

// Export renders orders in the given format. The order slice is expected to
// be pre-filtered; the window is only used to name the file.
func (e *Exporter) Export(orders []order.Order, format Format, w Window) (Artifact, error) {
	switch format {
	case FormatJSON:
		return e.exportJSON(orders, w)
	case FormatCSV:
		return e.exportCSV(orders, w)
	case FormatExcel:
		return e.exportExcel(orders, w)
	case FormatPDF:
		return e.exportPDF(orders, w)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Filename builds the deterministic artifact name for a window and extension.
func (e *Exporter) Filename(w Window, ext string) string {
	return "発注書データ_" + e.windowLabel(w) + ext
}

func (e *Exporter) windowLabel(w Window) string {
	switch w.Mode {
	case query.ModeAll:
		return "全期間"
	case query.ModeThisMonth:
		return "今月"
	case query.ModeLastMonth:
		return "先月"
	case query.ModeThisYear:
		if !w.Selected.IsZero() {
			return fmt.Sprintf("%d年", w.Selected.Year)
		}
		return fmt.Sprintf("%d年", e.now().Year())
	default:
		m := w.Selected
		if m.IsZero() {
			m = query.MonthOf(e.now())
		}
		return fmt.Sprintf("%d年%02d月", m.Year, int(m.Month))
	}
}
