package report

import (
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	reportTitle = "Medicine Requirement List"

	rowFontSize   = 12
	rowLineHeight = 14

	quantityX  = 400
	quantityX2 = 520
)

// Options control optional rendering features
type Options struct {
	// QuantityBlank reserves a manual-fill underline per row
	QuantityBlank bool
}

// Generator renders grouped requirement reports as PDF
type Generator struct {
	c Constraints
}

// NewGenerator creates a report generator with the canonical geometry
func NewGenerator(opts Options) *Generator {
	c := DefaultConstraints()
	c.QuantityBlank = opts.QuantityBlank
	return &Generator{c: c}
}

// Filename returns the attachment filename for a day's report
func Filename(day time.Time) string {
	return "requirement_" + day.Format("2006-01-02") + ".pdf"
}

// Generate groups and filters the items, paginates them, and writes the
// PDF. Returns the page count. Precondition failures (ErrNoItems,
// ErrNoMatchingSupplier) surface before anything is written to w.
func (g *Generator) Generate(w io.Writer, day time.Time, items []Item, supplierIDs []uint) (int, error) {
	groups, err := BuildGroups(items, supplierIDs)
	if err != nil {
		return 0, err
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	measure := func(text string, width float64) float64 {
		pdf.SetFont("Helvetica", "", rowFontSize)
		lines := len(pdf.SplitText(text, width))
		if lines < 1 {
			lines = 1
		}
		return float64(lines) * rowLineHeight
	}

	doc := Paginate(groups, reportTitle, "Date: "+day.Format("02/01/2006"), g.c, measure)
	g.render(pdf, doc)

	if err := pdf.Output(w); err != nil {
		return 0, err
	}
	return len(doc.Pages), nil
}

func (g *Generator) render(pdf *gofpdf.Fpdf, doc Document) {
	c := g.c
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, b := range page.Blocks {
			switch b.Kind {
			case BlockTitle:
				pdf.SetY(b.Y)
				pdf.SetFont("Helvetica", "B", 20)
				pdf.CellFormat(0, 24, doc.Title, "", 1, "C", false, 0, "")
				pdf.SetFont("Helvetica", "", 12)
				pdf.CellFormat(0, 16, doc.DateLabel, "", 1, "C", false, 0, "")

			case BlockSupplierHeader:
				label := "Supplier: " + b.Supplier
				size := 14.0
				if b.Cont {
					label += " (Cont.)"
					size = 12
				}
				pdf.SetXY(c.SNoX, b.Y)
				pdf.SetFont("Helvetica", "B", size)
				pdf.CellFormat(0, size+2, label, "", 1, "L", false, 0, "")
				if b.Phone != "" {
					pdf.SetXY(c.SNoX, b.Y+c.SupplierHeaderHeight-6)
					pdf.SetFont("Helvetica", "", 10)
					pdf.CellFormat(0, c.PhoneLineHeight, "Contact: "+b.Phone, "", 1, "L", false, 0, "")
				}

			case BlockTableHeader:
				pdf.SetFont("Helvetica", "B", 10)
				pdf.Text(c.SNoX, b.Y+10, "S.No")
				pdf.Text(c.NameX, b.Y+10, "Medicine Name")
				if c.QuantityBlank {
					pdf.Text(quantityX, b.Y+10, "Quantity")
				}
				pdf.Line(c.SNoX, b.Y+15, c.RuleX2, b.Y+15)

			case BlockRow:
				pdf.SetFont("Helvetica", "", rowFontSize)
				pdf.Text(c.SNoX, b.Y+rowFontSize, strconv.Itoa(b.SeqNo))
				pdf.SetXY(c.NameX, b.Y)
				pdf.MultiCell(c.NameWidth, rowLineHeight, b.Text, "", "L", false)
				if c.QuantityBlank {
					pdf.Line(quantityX, b.Y+b.Height-2, quantityX2, b.Y+b.Height-2)
				}

			case BlockSeparator:
				pdf.SetDashPattern([]float64{5, 10}, 0)
				pdf.Line(c.SNoX, b.Y, c.RuleX2, b.Y)
				pdf.SetDashPattern([]float64{}, 0)
			}
		}
	}
}
