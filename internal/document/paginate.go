package document

import "strings"

// BlockKind identifies one flowed section of the paginated layout.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockParties
	BlockDetails
	BlockTableHead
	BlockRows
	BlockTotals
	BlockRemarks
	BlockSignature
)

// Block is one committed section. For BlockRows, [RowStart, RowEnd) indexes
// into Document.Rows.
type Block struct {
	Kind     BlockKind
	RowStart int
	RowEnd   int
}

// Page holds the blocks committed to one page, top to bottom.
type Page struct {
	Blocks []Block
}

// Layout is the paginated form of a document.
type Layout struct {
	Pages []Page
}

// Metrics gives the paginator the vertical cost of each block in the
// renderer's unit (mm for the PDF renderer). RemarksLine is charged once per
// remark line.
type Metrics struct {
	PageHeight  float64
	Header      float64
	Parties     float64
	Details     float64
	TableHead   float64
	Row         float64
	Totals      float64
	RemarksLine float64
	Signature   float64
}

// DefaultMetrics matches the A4 PDF renderer: 297mm minus margins.
func DefaultMetrics() Metrics {
	return Metrics{
		PageHeight:  267,
		Header:      24,
		Parties:     40,
		Details:     18,
		TableHead:   8,
		Row:         8,
		Totals:      30,
		RemarksLine: 6,
		Signature:   28,
	}
}

type paginator struct {
	metrics Metrics
	pages   []Page
	current Page
	cursor  float64
}

func (p *paginator) breakPage() {
	p.pages = append(p.pages, p.current)
	p.current = Page{}
	p.cursor = 0
}

// fits reports whether a block of height h still fits on the current page.
func (p *paginator) fits(h float64) bool {
	return p.cursor+h <= p.metrics.PageHeight
}

// commit places an atomic block, breaking the page first when the remaining
// space is too small. Blocks taller than a whole page are committed anyway
// rather than looping forever.
func (p *paginator) commit(b Block, h float64) {
	if !p.fits(h) && p.cursor > 0 {
		p.breakPage()
	}
	p.current.Blocks = append(p.current.Blocks, b)
	p.cursor += h
}

// Paginate flows the document top to bottom. The table header is repeated on
// every page a row segment starts on; totals, remarks and the signature
// blocks are never split across a page boundary.
func Paginate(doc Document, m Metrics) Layout {
	p := &paginator{metrics: m}

	p.commit(Block{Kind: BlockHeader}, m.Header)
	p.commit(Block{Kind: BlockParties}, m.Parties)
	p.commit(Block{Kind: BlockDetails}, m.Details)

	// keep the table header attached to at least one row
	headerCost := m.TableHead
	if len(doc.Rows) > 0 {
		headerCost += m.Row
	}
	if !p.fits(headerCost) && p.cursor > 0 {
		p.breakPage()
	}
	p.current.Blocks = append(p.current.Blocks, Block{Kind: BlockTableHead})
	p.cursor += m.TableHead

	rowStart := 0
	for i := range doc.Rows {
		if !p.fits(m.Row) {
			if i > rowStart {
				p.current.Blocks = append(p.current.Blocks, Block{Kind: BlockRows, RowStart: rowStart, RowEnd: i})
			}
			p.breakPage()
			p.current.Blocks = append(p.current.Blocks, Block{Kind: BlockTableHead})
			p.cursor += m.TableHead
			rowStart = i
		}
		p.cursor += m.Row
	}
	if len(doc.Rows) > rowStart {
		p.current.Blocks = append(p.current.Blocks, Block{Kind: BlockRows, RowStart: rowStart, RowEnd: len(doc.Rows)})
	}

	p.commit(Block{Kind: BlockTotals}, m.Totals)
	if doc.Remarks != "" {
		lines := strings.Count(doc.Remarks, "\n") + 1
		p.commit(Block{Kind: BlockRemarks}, float64(lines)*m.RemarksLine)
	}
	p.commit(Block{Kind: BlockSignature}, m.Signature)

	p.pages = append(p.pages, p.current)
	return Layout{Pages: p.pages}
}
