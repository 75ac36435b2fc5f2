package document

import (
	"bytes"
	"html/template"
)

// HTMLRenderer produces the single-page HTML preview of a document. The
// preview is not paginated; it mirrors the on-screen proof the PDF is
// generated from.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer compiles the preview template.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("preview").Parse(previewTemplate))}
}

// Render returns the UTF-8 HTML preview for the document.
func (r *HTMLRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const previewTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Hiragino Kaku Gothic ProN", "Yu Gothic", Meiryo, sans-serif; margin: 24px; color: #222; }
.sheet { max-width: 760px; margin: 0 auto; }
h1 { text-align: center; font-size: 22px; letter-spacing: 4px; }
.number { text-align: center; font-size: 12px; color: #555; margin-bottom: 24px; }
.parties { display: flex; justify-content: space-between; margin-bottom: 20px; }
.party { width: 48%; font-size: 13px; }
.party h2 { font-size: 13px; border-bottom: 2px solid #333; padding-bottom: 4px; }
.details { font-size: 13px; margin-bottom: 16px; }
.details span { margin-right: 24px; }
table { width: 100%; border-collapse: collapse; font-size: 13px; }
th, td { border: 1px solid #999; padding: 6px 8px; }
th { background: #f2f2f2; }
td.num { text-align: right; }
.totals { margin-top: 12px; text-align: right; font-size: 13px; }
.totals .grand { font-size: 16px; font-weight: bold; }
.remarks { margin-top: 16px; font-size: 12px; white-space: pre-wrap; }
.closing { margin-top: 28px; font-size: 12px; }
.stamp { float: right; width: 64px; height: 64px; border: 2px solid #c33; border-radius: 50%; color: #c33; display: flex; align-items: center; justify-content: center; font-size: 12px; }
</style>
</head>
<body>
<div class="sheet">
<h1>{{.Title}}</h1>
<div class="number">発注書番号: {{.OrderNumber}}</div>
<div class="parties">
<div class="party">
<h2>{{.From.Heading}}</h2>
<p>{{.From.Name}}<br>{{.From.Address}}<br>{{.From.Phone}}<br>{{.From.Email}}{{if .From.Staff}}<br>担当: {{.From.Staff}}{{end}}</p>
</div>
<div class="party">
<h2>{{.To.Heading}}</h2>
<p>{{.To.Name}}<br>{{.To.Address}}{{if .To.Contact}}<br>担当者: {{.To.Contact}}{{end}}</p>
</div>
</div>
<div class="details">
{{range .Details}}<span>{{.Label}}: {{.Value}}</span>{{end}}
</div>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ProjectLabel}}</td><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.LineSubtotal}}</td></tr>
{{end}}</tbody>
</table>
<div class="totals">
<div>小計: {{.Totals.Subtotal}}</div>
<div>消費税 (10%): {{.Totals.Tax}}</div>
<div class="grand">合計金額: {{.Totals.Total}}</div>
</div>
{{if .Remarks}}<div class="remarks"><strong>備考</strong><br>{{.Remarks}}</div>{{end}}
<div class="closing">{{.Closing}}{{if .Stamp}}<div class="stamp">{{.Stamp.Staff}}</div>{{end}}</div>
</div>
</body>
</html>
`
