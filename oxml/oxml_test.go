package oxml

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/midbel/xlgrid/grid"
	"github.com/midbel/xlgrid/value"
)

const testRootRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

const testWorkbook = `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>
<sheet name="First" sheetId="1" r:id="rId1"/>
<sheet name="Second" sheetId="2" r:id="rId2"/>
</sheets>
</workbook>`

const testWbRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
</Relationships>`

const testStyles = `<?xml version="1.0" encoding="UTF-8"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<numFmts count="1"><numFmt numFmtId="164" formatCode="0.00&quot;m&quot;"/></numFmts>
<fonts count="2">
<font><sz val="11"/><name val="Calibri"/></font>
<font><b/><sz val="11"/><name val="Calibri"/><color rgb="FFFF0000"/></font>
</fonts>
<fills count="2">
<fill><patternFill patternType="none"/></fill>
<fill><patternFill patternType="solid"><fgColor rgb="FF00FF00"/></patternFill></fill>
</fills>
<borders count="1"><border><left/><right/><top/><bottom/></border></borders>
<cellXfs count="3">
<xf numFmtId="0" fontId="0" fillId="0" borderId="0"/>
<xf numFmtId="0" fontId="1" fillId="1" borderId="0"><alignment horizontal="center" wrapText="1"/></xf>
<xf numFmtId="164" fontId="0" fillId="0" borderId="0"/>
</cellXfs>
</styleSheet>`

const testShared = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
<si><t>hello</t></si>
<si><r><t>wor</t></r><r><t>ld</t></r></si>
</sst>`

const testSheet1 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<dimension ref="A1:B2"/>
<sheetFormatPr defaultColWidth="9.1" defaultRowHeight="14.5"/>
<cols><col min="1" max="1" width="20.5" customWidth="1"/></cols>
<sheetData>
<row r="1" ht="30" customHeight="1">
<c r="A1" t="s"><v>0</v></c>
<c r="B1" t="s" s="1"><v>1</v></c>
</row>
<row r="2">
<c r="A2" s="2"><v>42.5</v></c>
<c r="B2" t="b"><v>1</v></c>
</row>
</sheetData>
</worksheet>`

const testSheet2 = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>only</t></is></c></row>
</sheetData>
</worksheet>`

func testParts() map[string]string {
	return map[string]string{
		"_rels/.rels":                testRootRels,
		"xl/workbook.xml":            testWorkbook,
		"xl/_rels/workbook.xml.rels": testWbRels,
		"xl/styles.xml":              testStyles,
		"xl/sharedStrings.xml":       testShared,
		"xl/worksheets/sheet1.xml":   testSheet1,
		"xl/worksheets/sheet2.xml":   testSheet2,
	}
}

func buildArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %s", name, err)
		}
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatalf("write %s: %s", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %s", err)
	}
	return buf.Bytes()
}

func extractSheet(t *testing.T, parts map[string]string, sheet string, opts Options) *grid.Grid {
	t.Helper()
	if sheet != "" {
		parts["xl/worksheets/sheet1.xml"] = sheet
	}
	g, err := Extract(buildArchive(t, parts), opts)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return g
}

func TestExtract(t *testing.T) {
	g := extractSheet(t, testParts(), "", DefaultOptions())
	if g.Title() != "First" {
		t.Errorf("title: got %q, want First", g.Title())
	}
	rows, cols := g.Bounds()
	if rows != 2 || cols != 2 {
		t.Fatalf("bounds: got %dx%d, want 2x2", rows, cols)
	}
	values := []struct {
		row, col int
		kind     string
		want     string
	}{
		{0, 0, value.TypeText, "hello"},
		{0, 1, value.TypeText, "world"},
		{1, 0, value.TypeNumber, "42.5"},
		{1, 1, value.TypeBool, "true"},
	}
	for _, tt := range values {
		cell, err := g.At(tt.row, tt.col)
		if err != nil {
			t.Errorf("at %d,%d: %s", tt.row, tt.col, err)
			continue
		}
		if cell.Value.Type() != tt.kind {
			t.Errorf("at %d,%d: type got %s, want %s", tt.row, tt.col, cell.Value.Type(), tt.kind)
		}
		if got := cell.Display(); got != tt.want {
			t.Errorf("at %d,%d: got %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestExtractStyles(t *testing.T) {
	g := extractSheet(t, testParts(), "", DefaultOptions())

	plain, _ := g.At(0, 0)
	if !plain.Style.Equal(grid.DefaultStyle()) {
		t.Errorf("A1: style got %+v, want default", plain.Style)
	}
	if plain.Style.NumFmt != grid.GeneralFormat {
		t.Errorf("A1: numfmt got %q", plain.Style.NumFmt)
	}

	styled, _ := g.At(0, 1)
	font := styled.Style.Font
	if font == nil || !font.Bold {
		t.Fatalf("B1: expected bold font, got %+v", font)
	}
	if font.Color == nil || font.Color.Hex() != "FF0000" {
		t.Errorf("B1: font color got %+v, want FF0000", font.Color)
	}
	fill := styled.Style.Fill
	if fill == nil || fill.Solid() == nil {
		t.Fatalf("B1: expected solid fill, got %+v", fill)
	}
	if fg := fill.Solid(); fg.Hex() != "00FF00" {
		t.Errorf("B1: fill color got %+v, want 00FF00", fg)
	}
	if align := styled.Style.Align; align.Horizontal != grid.AlignCenter || !align.Wrap {
		t.Errorf("B1: alignment got %+v", align)
	}

	custom, _ := g.At(1, 0)
	if custom.Style.NumFmt != "0.00\"m\"" {
		t.Errorf("A2: numfmt got %q", custom.Style.NumFmt)
	}
}

func TestExtractDims(t *testing.T) {
	g := extractSheet(t, testParts(), "", DefaultOptions())
	if g.DefaultWidth != 9.1 || g.DefaultHeight != 14.5 {
		t.Errorf("defaults: got %g x %g", g.DefaultWidth, g.DefaultHeight)
	}
	if w := g.Width(0); w != 20.5 {
		t.Errorf("width 0: got %g, want 20.5", w)
	}
	if w := g.Width(1); w != 9.1 {
		t.Errorf("width 1: got %g, want default 9.1", w)
	}
	if h := g.Height(0); h != 30 {
		t.Errorf("height 0: got %g, want 30", h)
	}
	if h := g.Height(1); h != 14.5 {
		t.Errorf("height 1: got %g, want default 14.5", h)
	}
}

func TestExtractSecondSheet(t *testing.T) {
	opts := DefaultOptions()
	opts.Sheet = 1
	g := extractSheet(t, testParts(), "", opts)
	if g.Title() != "Second" {
		t.Errorf("title: got %q, want Second", g.Title())
	}
	cell, _ := g.At(0, 0)
	if got := cell.Display(); got != "only" {
		t.Errorf("A1: got %q, want only", got)
	}
}

func TestExtractMerged(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>Header</t></is></c></row>
<row r="2"><c r="A2"><v>1</v></c><c r="B2"><v>2</v></c></row>
</sheetData>
<mergeCells count="1"><mergeCell ref="A1:B1"/></mergeCells>
</worksheet>`
	g := extractSheet(t, testParts(), sheet, DefaultOptions())
	spans := g.Merged()
	if len(spans) != 1 {
		t.Fatalf("spans: got %d, want 1", len(spans))
	}
	want := grid.Span{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}
	if spans[0] != want {
		t.Errorf("span: got %+v, want %+v", spans[0], want)
	}
	anchor, _ := g.At(0, 0)
	if anchor.Covered || anchor.Display() != "Header" {
		t.Errorf("anchor: got covered=%t display=%q", anchor.Covered, anchor.Display())
	}
	covered, _ := g.At(0, 1)
	if !covered.Covered || covered.Display() != "" {
		t.Errorf("covered: got covered=%t display=%q", covered.Covered, covered.Display())
	}
}

func TestExtractOverlappingMerges(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1"><v>1</v></c></row>
</sheetData>
<mergeCells count="2"><mergeCell ref="A1:B2"/><mergeCell ref="B2:C3"/></mergeCells>
</worksheet>`
	parts := testParts()
	parts["xl/worksheets/sheet1.xml"] = sheet
	_, err := Extract(buildArchive(t, parts), DefaultOptions())
	if !errors.Is(err, ErrWorkbook) {
		t.Errorf("got %v, want ErrWorkbook", err)
	}
}

func TestExtractDensify(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="3"><c r="C3"><v>7</v></c></row>
</sheetData>
</worksheet>`
	g := extractSheet(t, testParts(), sheet, DefaultOptions())
	rows, cols := g.Bounds()
	if rows != 3 || cols != 3 {
		t.Fatalf("bounds: got %dx%d, want 3x3", rows, cols)
	}
	for row := range g.Iter() {
		for _, cell := range row {
			if cell.Row == 2 && cell.Col == 2 {
				continue
			}
			if !cell.Blank() {
				t.Errorf("cell %d,%d: expected blank", cell.Row, cell.Col)
			}
			if cell.Style == nil {
				t.Errorf("cell %d,%d: expected default style", cell.Row, cell.Col)
			}
		}
	}
	last, _ := g.At(2, 2)
	if got := last.Display(); got != "7" {
		t.Errorf("C3: got %q, want 7", got)
	}
}

func TestExtractSheetIndex(t *testing.T) {
	opts := DefaultOptions()
	opts.Sheet = 5
	_, err := Extract(buildArchive(t, testParts()), opts)
	if !errors.Is(err, ErrSheetIndex) {
		t.Errorf("got %v, want ErrSheetIndex", err)
	}
}

func TestExtractBadStyleRef(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" s="999"><v>1</v></c></row>
</sheetData>
</worksheet>`
	parts := testParts()
	parts["xl/worksheets/sheet1.xml"] = sheet
	_, err := Extract(buildArchive(t, parts), DefaultOptions())
	if !errors.Is(err, ErrWorkbook) {
		t.Errorf("got %v, want ErrWorkbook", err)
	}
}

func TestExtractBadSharedRef(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>9</v></c></row>
</sheetData>
</worksheet>`
	parts := testParts()
	parts["xl/worksheets/sheet1.xml"] = sheet
	_, err := Extract(buildArchive(t, parts), DefaultOptions())
	if !errors.Is(err, ErrWorkbook) {
		t.Errorf("got %v, want ErrWorkbook", err)
	}
}

func TestExtractBadNumber(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1"><v>not a number</v></c></row>
</sheetData>
</worksheet>`
	parts := testParts()
	parts["xl/worksheets/sheet1.xml"] = sheet
	_, err := Extract(buildArchive(t, parts), DefaultOptions())
	if !errors.Is(err, ErrWorkbook) {
		t.Errorf("got %v, want ErrWorkbook", err)
	}
}

func TestExtractFontDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Font = false
	g := extractSheet(t, testParts(), "", opts)
	styled, _ := g.At(0, 1)
	if styled.Style.Font != nil {
		t.Errorf("expected masked font, got %+v", styled.Style.Font)
	}
	if fill := styled.Style.Fill; fill == nil || fill.Solid() == nil {
		t.Errorf("fill should survive font masking, got %+v", fill)
	}
}

func TestReadDocumentToggles(t *testing.T) {
	opts := DefaultOptions()
	opts.Font = false
	opts.TableStyle = false
	doc, err := ReadDocument(buildArchive(t, testParts()), opts)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	g, err := doc.Grid(0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	styled, _ := g.At(0, 1)
	if styled.Style.Font != nil {
		t.Errorf("B1: expected masked font, got %+v", styled.Style.Font)
	}
	if fill := styled.Style.Fill; fill == nil || fill.Solid() == nil {
		t.Errorf("B1: fill should survive masking, got %+v", fill)
	}
	custom, _ := g.At(1, 0)
	if custom.Style.NumFmt != grid.GeneralFormat {
		t.Errorf("A2: numfmt got %q, want General", custom.Style.NumFmt)
	}
}

func TestExtractMissingSharedPart(t *testing.T) {
	parts := testParts()
	delete(parts, "xl/sharedStrings.xml")
	parts["xl/worksheets/sheet1.xml"] = testSheet2
	g := extractSheet(t, parts, "", DefaultOptions())
	cell, _ := g.At(0, 0)
	if got := cell.Display(); got != "only" {
		t.Errorf("A1: got %q, want only", got)
	}
}

func TestExtractMissingStylesPart(t *testing.T) {
	parts := testParts()
	delete(parts, "xl/styles.xml")
	_, err := Extract(buildArchive(t, parts), DefaultOptions())
	if !errors.Is(err, ErrPart) {
		t.Errorf("got %v, want ErrPart", err)
	}
}

func TestOpenArchiveTruncated(t *testing.T) {
	data := buildArchive(t, testParts())
	_, err := Extract(data[:len(data)/2], DefaultOptions())
	if !errors.Is(err, ErrArchive) {
		t.Errorf("got %v, want ErrArchive", err)
	}
}

func TestOpenArchiveNotZip(t *testing.T) {
	_, err := Extract([]byte("this is not an archive"), DefaultOptions())
	if !errors.Is(err, ErrArchive) {
		t.Errorf("got %v, want ErrArchive", err)
	}
}

func TestEncodeCSV(t *testing.T) {
	g := extractSheet(t, testParts(), "", DefaultOptions())
	var buf bytes.Buffer
	if err := g.Encode(EncodeCSV(&buf)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "\"hello\",\"world\"\n\"42.50m\",\"true\"\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
