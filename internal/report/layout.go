package report

// MeasureFunc returns the rendered height of text wrapped to the given
// width. Injected so pagination stays independent of any PDF library.
type MeasureFunc func(text string, width float64) float64

// Constraints are the page geometry in points (A4 portrait). The values
// mirror the established report layout and matter for visual parity.
type Constraints struct {
	TopY    float64 // content start on every page
	BottomY float64 // last usable Y before the bottom margin

	SNoX      float64 // sequence number column
	NameX     float64 // medicine name column
	NameWidth float64 // wrap width for medicine names
	RuleX2    float64 // right edge of horizontal rules

	RowPadding    float64 // gap appended below each row
	MinRowHeight  float64 // a row is at least one line tall
	RowBreakSlack float64 // extra room required beyond the row itself

	TitleHeight          float64 // main title block, first page only
	SupplierHeaderHeight float64 // supplier name line plus gap
	PhoneLineHeight      float64 // extra height when a phone line renders
	ContHeaderHeight     float64 // repeated supplier header on continuation pages
	TableHeaderHeight    float64 // column captions plus underline
	GroupLeadHeight      float64 // room required to start a supplier block
	GroupGap             float64 // vertical gap between supplier groups
	SeparatorMargin      float64 // room required below a separator line

	QuantityBlank bool // reserve a manual-fill blank per row
}

// DefaultConstraints returns the canonical report geometry
func DefaultConstraints() Constraints {
	return Constraints{
		TopY:                 50,
		BottomY:              750,
		SNoX:                 50,
		NameX:                100,
		NameWidth:            280,
		RuleX2:               550,
		RowPadding:           5,
		MinRowHeight:         20,
		RowBreakSlack:        10,
		TitleHeight:          60,
		SupplierHeaderHeight: 22,
		PhoneLineHeight:      12,
		ContHeaderHeight:     20,
		TableHeaderHeight:    25,
		GroupLeadHeight:      80,
		GroupGap:             18,
		SeparatorMargin:      20,
	}
}

// BlockKind identifies what a placed block renders as
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockSupplierHeader
	BlockTableHeader
	BlockRow
	BlockSeparator
)

// Block is one placed piece of content. A row block carries both its
// sequence number and its medicine name so the two can never end up on
// different pages.
type Block struct {
	Kind   BlockKind
	Y      float64
	Height float64

	Supplier string // supplier header: name
	Phone    string // supplier header: optional contact line
	Cont     bool   // supplier header repeated after a page break

	SeqNo int    // row: 1-based per supplier
	Text  string // row: medicine name
}

// Page is an ordered list of placed blocks
type Page struct {
	Blocks []Block
}

// Document is a fully paginated report ready for rendering
type Document struct {
	Title     string
	DateLabel string
	Pages     []Page
}

// Paginate places the grouped report content onto pages. The title appears
// only on the first page; when a supplier's rows continue onto a new page,
// the supplier header (marked Cont) and the table header are repeated so
// the page is readable on its own.
func Paginate(groups []Group, title, dateLabel string, c Constraints, measure MeasureFunc) Document {
	doc := Document{
		Title:     title,
		DateLabel: dateLabel,
		Pages:     []Page{{}},
	}
	page := 0
	y := c.TopY

	emit := func(b Block) {
		doc.Pages[page].Blocks = append(doc.Pages[page].Blocks, b)
	}

	emit(Block{Kind: BlockTitle, Y: y, Height: c.TitleHeight})
	y += c.TitleHeight

	// breakPage starts a new page; when a supplier is mid-list its header
	// and the table header reappear at the top
	breakPage := func(sup *Supplier) {
		doc.Pages = append(doc.Pages, Page{})
		page++
		y = c.TopY
		if sup != nil {
			emit(Block{Kind: BlockSupplierHeader, Y: y, Height: c.ContHeaderHeight, Supplier: sup.Name, Cont: true})
			y += c.ContHeaderHeight
			emit(Block{Kind: BlockTableHeader, Y: y, Height: c.TableHeaderHeight})
			y += c.TableHeaderHeight
		}
	}

	for gi := range groups {
		group := &groups[gi]

		if y+c.GroupLeadHeight > c.BottomY {
			breakPage(nil)
		}

		headerHeight := c.SupplierHeaderHeight
		if group.Supplier.Phone != "" {
			headerHeight += c.PhoneLineHeight
		}
		emit(Block{Kind: BlockSupplierHeader, Y: y, Height: headerHeight, Supplier: group.Supplier.Name, Phone: group.Supplier.Phone})
		y += headerHeight

		emit(Block{Kind: BlockTableHeader, Y: y, Height: c.TableHeaderHeight})
		y += c.TableHeaderHeight

		for i, name := range group.Medicines {
			rowHeight := measure(name, c.NameWidth)
			if rowHeight < c.MinRowHeight {
				rowHeight = c.MinRowHeight
			}
			if y+rowHeight+c.RowBreakSlack > c.BottomY {
				breakPage(&group.Supplier)
			}
			emit(Block{Kind: BlockRow, Y: y, Height: rowHeight, SeqNo: i + 1, Text: name})
			y += rowHeight + c.RowPadding
		}

		y += c.GroupGap

		// Dashed separator between groups, only when room remains above
		// the bottom margin; otherwise the page break separates them
		if gi < len(groups)-1 && y < c.BottomY-c.SeparatorMargin {
			emit(Block{Kind: BlockSeparator, Y: y})
			y += c.GroupGap
		}
	}

	return doc
}
