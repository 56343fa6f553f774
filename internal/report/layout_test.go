package report

import (
	"fmt"
	"testing"
)

// flatMeasure gives every name a single-line height
func flatMeasure(string, float64) float64 { return 20 }

func namedGroup(sup Supplier, count int) Group {
	g := Group{Supplier: sup}
	for i := 0; i < count; i++ {
		g.Medicines = append(g.Medicines, fmt.Sprintf("%s medicine %d", sup.Name, i+1))
	}
	return g
}

func collectRows(doc Document) []Block {
	var rows []Block
	for _, page := range doc.Pages {
		for _, b := range page.Blocks {
			if b.Kind == BlockRow {
				rows = append(rows, b)
			}
		}
	}
	return rows
}

func TestPaginateSingleGroupSinglePage(t *testing.T) {
	groups := []Group{namedGroup(Supplier{ID: 1, Name: "Gulf Pharma"}, 3)}
	doc := Paginate(groups, "Medicine Requirement List", "Date: 10/03/2026", DefaultConstraints(), flatMeasure)

	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	kinds := []BlockKind{BlockTitle, BlockSupplierHeader, BlockTableHeader, BlockRow, BlockRow, BlockRow}
	blocks := doc.Pages[0].Blocks
	if len(blocks) != len(kinds) {
		t.Fatalf("expected %d blocks, got %d", len(kinds), len(blocks))
	}
	for i, want := range kinds {
		if blocks[i].Kind != want {
			t.Errorf("block %d: expected kind %d, got %d", i, want, blocks[i].Kind)
		}
	}
	if blocks[1].Cont {
		t.Error("first supplier header must not be marked as continuation")
	}
	for i, row := range blocks[3:] {
		if row.SeqNo != i+1 {
			t.Errorf("row %d: expected seq %d, got %d", i, i+1, row.SeqNo)
		}
	}
}

func TestPaginateTitleOnlyOnFirstPage(t *testing.T) {
	groups := []Group{namedGroup(Supplier{ID: 1, Name: "Gulf Pharma"}, 60)}
	doc := Paginate(groups, "Medicine Requirement List", "", DefaultConstraints(), flatMeasure)

	if len(doc.Pages) < 2 {
		t.Fatalf("expected a page break, got %d page(s)", len(doc.Pages))
	}
	titles := 0
	for pi, page := range doc.Pages {
		for _, b := range page.Blocks {
			if b.Kind == BlockTitle {
				titles++
				if pi != 0 {
					t.Errorf("title rendered on page %d", pi+1)
				}
			}
		}
	}
	if titles != 1 {
		t.Errorf("expected exactly one title block, got %d", titles)
	}
}

func TestPaginateContinuationPagesRepeatHeaders(t *testing.T) {
	sup := Supplier{ID: 1, Name: "Gulf Pharma", Phone: "050-1234567"}
	groups := []Group{namedGroup(sup, 60)}
	doc := Paginate(groups, "Medicine Requirement List", "", DefaultConstraints(), flatMeasure)

	if len(doc.Pages) < 2 {
		t.Fatalf("expected a page break, got %d page(s)", len(doc.Pages))
	}
	for pi, page := range doc.Pages[1:] {
		if len(page.Blocks) < 2 {
			t.Fatalf("continuation page %d too short", pi+2)
		}
		header := page.Blocks[0]
		if header.Kind != BlockSupplierHeader || !header.Cont {
			t.Errorf("continuation page %d: expected Cont supplier header first, got kind %d cont=%v",
				pi+2, header.Kind, header.Cont)
		}
		if header.Supplier != sup.Name {
			t.Errorf("continuation page %d: expected supplier %q, got %q", pi+2, sup.Name, header.Supplier)
		}
		if page.Blocks[1].Kind != BlockTableHeader {
			t.Errorf("continuation page %d: expected table header second, got kind %d", pi+2, page.Blocks[1].Kind)
		}
	}
}

func TestPaginateRowsStayAboveBottomMargin(t *testing.T) {
	c := DefaultConstraints()
	groups := []Group{
		namedGroup(Supplier{ID: 1, Name: "Gulf Pharma"}, 45),
		namedGroup(Supplier{ID: 2, Name: "Al Noor Medical"}, 45),
	}
	// Mix of one- and two-line rows
	measure := func(text string, _ float64) float64 {
		if len(text)%3 == 0 {
			return 40
		}
		return 20
	}
	doc := Paginate(groups, "t", "", c, measure)

	for pi, page := range doc.Pages {
		for _, b := range page.Blocks {
			if b.Kind == BlockRow && b.Y+b.Height > c.BottomY {
				t.Errorf("page %d: row %q overruns bottom margin (y=%f h=%f)", pi+1, b.Text, b.Y, b.Height)
			}
		}
	}
}

func TestPaginateRowsAreAtomicAndComplete(t *testing.T) {
	groups := []Group{
		namedGroup(Supplier{ID: 1, Name: "Gulf Pharma"}, 40),
		namedGroup(Supplier{ID: 2, Name: "Al Noor Medical"}, 25),
	}
	doc := Paginate(groups, "t", "", DefaultConstraints(), flatMeasure)

	rows := collectRows(doc)
	if len(rows) != 65 {
		t.Fatalf("expected 65 rows, got %d", len(rows))
	}
	// Every row block carries both cells; the sequence restarts per supplier
	want := 0
	seq := 0
	for _, g := range groups {
		for i, name := range g.Medicines {
			row := rows[want]
			seq = i + 1
			if row.SeqNo != seq {
				t.Fatalf("row %d: expected seq %d, got %d", want, seq, row.SeqNo)
			}
			if row.Text != name {
				t.Fatalf("row %d: expected name %q, got %q", want, name, row.Text)
			}
			want++
		}
	}
}

func TestPaginateSeparatorOnlyWithRoom(t *testing.T) {
	c := DefaultConstraints()

	small := []Group{
		namedGroup(Supplier{ID: 1, Name: "Gulf Pharma"}, 2),
		namedGroup(Supplier{ID: 2, Name: "Al Noor Medical"}, 2),
	}
	doc := Paginate(small, "t", "", c, flatMeasure)
	separators := 0
	for _, b := range doc.Pages[0].Blocks {
		if b.Kind == BlockSeparator {
			separators++
		}
	}
	if separators != 1 {
		t.Errorf("expected one separator between two small groups, got %d", separators)
	}

	// 23 single-line rows leave the cursor inside the separator margin:
	// the separator is suppressed and the next group starts on a new page
	tall := []Group{
		namedGroup(Supplier{ID: 1, Name: "Gulf Pharma"}, 23),
		namedGroup(Supplier{ID: 2, Name: "Al Noor Medical"}, 2),
	}
	doc = Paginate(tall, "t", "", c, flatMeasure)
	for _, page := range doc.Pages {
		for _, b := range page.Blocks {
			if b.Kind == BlockSeparator {
				t.Fatal("expected separator to be suppressed near the bottom margin")
			}
		}
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected second group on a new page, got %d page(s)", len(doc.Pages))
	}
	header := doc.Pages[1].Blocks[0]
	if header.Kind != BlockSupplierHeader || header.Cont {
		t.Errorf("expected a fresh (non-continuation) supplier header on page 2, got kind %d cont=%v",
			header.Kind, header.Cont)
	}
}

func TestPaginateUsesMeasuredRowHeight(t *testing.T) {
	c := DefaultConstraints()
	measure := func(text string, width float64) float64 {
		if width != c.NameWidth {
			t.Errorf("expected wrap width %f, got %f", c.NameWidth, width)
		}
		if text == "short" {
			return 8 // below the minimum
		}
		return 42
	}
	groups := []Group{{
		Supplier:  Supplier{ID: 1, Name: "Gulf Pharma"},
		Medicines: []string{"short", "a very long medicine name that wraps over multiple lines"},
	}}
	doc := Paginate(groups, "t", "", c, measure)

	rows := collectRows(doc)
	if rows[0].Height != c.MinRowHeight {
		t.Errorf("expected minimum row height %f, got %f", c.MinRowHeight, rows[0].Height)
	}
	if rows[1].Height != 42 {
		t.Errorf("expected measured height 42, got %f", rows[1].Height)
	}
	if rows[1].Y != rows[0].Y+rows[0].Height+c.RowPadding {
		t.Errorf("expected second row below the first plus padding, got y=%f", rows[1].Y)
	}
}
