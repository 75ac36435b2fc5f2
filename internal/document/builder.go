package document

import "github.com/hacchu-app/hacchu/internal/order"

// Builder bundles the assembler with both renderers behind the small
// interface the HTTP handlers consume.
type Builder struct {
	assembler *Assembler
	html      *HTMLRenderer
	pdf       *PDFRenderer
}

// NewBuilder wires the assembler and renderers together.
func NewBuilder(stamps StampRegistry, pdfFontPath string) *Builder {
	return &Builder{
		assembler: NewAssembler(stamps),
		html:      NewHTMLRenderer(),
		pdf:       NewPDFRenderer(pdfFontPath),
	}
}

// BuildJSON returns the renderer-agnostic document structure.
func (b *Builder) BuildJSON(o order.Order) (any, error) {
	return b.assembler.Assemble(o), nil
}

// BuildHTML returns the HTML preview.
func (b *Builder) BuildHTML(o order.Order) ([]byte, error) {
	return b.html.Render(b.assembler.Assemble(o))
}

// BuildPDF returns the paginated PDF.
func (b *Builder) BuildPDF(o order.Order) ([]byte, error) {
	return b.pdf.Render(b.assembler.Assemble(o))
}
