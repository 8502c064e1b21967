package oxml

import (
	"bytes"
	"errors"
	"slices"
	"strconv"
	"strings"

	sax "github.com/midbel/codecs/xml"
	"github.com/midbel/xlgrid/grid"
	"github.com/midbel/xlgrid/layout"
	"github.com/midbel/xlgrid/value"
)

type rawCell struct {
	pos     layout.Position
	kind    string
	style   int
	raw     string
	hasRaw  bool
	formula bool
}

// sheetBuilder streams one worksheet part and materializes the dense
// grid. Cells are kept in a sparse map keyed by position while parsing
// and turned into a rectangular matrix at the end.
type sheetBuilder struct {
	reader *sax.Reader
	doc    *Document
	ref    SheetRef

	declared      layout.Dimension
	defaultWidth  float64
	defaultHeight float64

	line    int64
	lastCol int64
	rows    int

	cells   map[layout.Position]*rawCell
	spans   []layout.Range
	widths  map[int64]float64
	heights map[int64]float64
}

func buildSheet(buf []byte, ref SheetRef, doc *Document) (*grid.Grid, error) {
	b := sheetBuilder{
		reader:  sax.NewReader(bytes.NewReader(buf)),
		doc:     doc,
		ref:     ref,
		cells:   make(map[layout.Position]*rawCell),
		widths:  make(map[int64]float64),
		heights: make(map[int64]float64),
	}
	b.reader.Element(sax.LocalName("dimension"), b.onDimension)
	b.reader.Element(sax.LocalName("sheetFormatPr"), b.onFormat)
	b.reader.Element(sax.LocalName("col"), b.onColumn)
	b.reader.Element(sax.LocalName("row"), b.onRow)
	b.reader.Element(sax.LocalName("c"), b.onCell)
	b.reader.Element(sax.LocalName("mergeCell"), b.onMerge)
	if err := b.reader.Start(); err != nil {
		if !errors.Is(err, ErrWorkbook) && !errors.Is(err, ErrArchive) {
			err = errorf(ErrWorkbook, "fail to read data from %s: %s", ref.Target, err)
		}
		return nil, err
	}
	return b.build()
}

func (b *sheetBuilder) onDimension(rs *sax.Reader, el sax.E) error {
	ref := el.GetAttributeValue("ref")
	if ref == "" {
		return nil
	}
	rg := layout.RangeFromString(ref).Normalize()
	if rg.Valid() {
		b.declared = layout.Dimension{
			Lines:   rg.Ends.Line,
			Columns: rg.Ends.Column,
		}
	}
	return nil
}

func (b *sheetBuilder) onFormat(rs *sax.Reader, el sax.E) error {
	if str := el.GetAttributeValue("defaultColWidth"); str != "" {
		w, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return errorf(ErrWorkbook, "invalid default column width %q", str)
		}
		b.defaultWidth = w
	}
	if str := el.GetAttributeValue("defaultRowHeight"); str != "" {
		h, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return errorf(ErrWorkbook, "invalid default row height %q", str)
		}
		b.defaultHeight = h
	}
	return nil
}

func (b *sheetBuilder) onColumn(rs *sax.Reader, el sax.E) error {
	width := el.GetAttributeValue("width")
	if width == "" {
		return nil
	}
	w, err := strconv.ParseFloat(width, 64)
	if err != nil {
		return errorf(ErrWorkbook, "invalid column width %q", width)
	}
	lo, err := strconv.ParseInt(el.GetAttributeValue("min"), 10, 64)
	if err != nil || lo < 1 {
		return errorf(ErrWorkbook, "invalid column range in %s", b.ref.Target)
	}
	hi, err := strconv.ParseInt(el.GetAttributeValue("max"), 10, 64)
	if err != nil || hi < lo {
		return errorf(ErrWorkbook, "invalid column range in %s", b.ref.Target)
	}
	for i := lo; i <= hi; i++ {
		b.widths[i] = w
	}
	return nil
}

func (b *sheetBuilder) onRow(rs *sax.Reader, el sax.E) error {
	b.rows++
	if str := el.GetAttributeValue("r"); str != "" {
		line, err := strconv.ParseInt(str, 10, 64)
		if err != nil || line < 1 {
			return errorf(ErrWorkbook, "invalid row number %q", str)
		}
		b.line = line
	} else {
		b.line++
	}
	b.lastCol = 0
	if str := el.GetAttributeValue("ht"); str != "" {
		h, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return errorf(ErrWorkbook, "invalid row height %q", str)
		}
		b.heights[b.line] = h
	}
	return nil
}

func (b *sheetBuilder) onCell(rs *sax.Reader, el sax.E) error {
	if b.rows == 0 {
		return errorf(ErrWorkbook, "no row in worksheet %s", b.ref.Target)
	}
	cell := rawCell{
		kind:  el.GetAttributeValue("t"),
		style: -1,
	}
	if addr := el.GetAttributeValue("r"); addr != "" {
		if !layout.IsAddress(addr) {
			return errorf(ErrWorkbook, "invalid cell reference %q", addr)
		}
		cell.pos = layout.ParsePosition(addr)
		if cell.pos.Line != b.line {
			return errorf(ErrWorkbook, "cell %s outside row %d", addr, b.line)
		}
	} else {
		// position is implied from document order
		cell.pos = layout.Position{
			Line:   b.line,
			Column: b.lastCol + 1,
		}
	}
	b.lastCol = cell.pos.Column
	if str := el.GetAttributeValue("s"); str != "" {
		ix, err := strconv.Atoi(str)
		if err != nil {
			return errorf(ErrWorkbook, "cell %s: invalid style index %q", cell.pos, str)
		}
		cell.style = ix
	}
	b.cells[cell.pos] = &cell

	local := sax.LocalName("v")
	if cell.kind == TypeInlineStr {
		local = sax.LocalName("is")
	}
	rs.Element(local, func(rs *sax.Reader, _ sax.E) error {
		rs.OnText(func(_ *sax.Reader, str string) error {
			// rich inline strings deliver one text event per run
			cell.raw += str
			cell.hasRaw = true
			return nil
		})
		return nil
	})
	rs.Element(sax.LocalName("f"), func(_ *sax.Reader, _ sax.E) error {
		cell.formula = true
		return nil
	})
	return nil
}

func (b *sheetBuilder) onMerge(rs *sax.Reader, el sax.E) error {
	ref := el.GetAttributeValue("ref")
	rg := layout.RangeFromString(ref)
	if !rg.Valid() {
		return errorf(ErrWorkbook, "invalid merged range %q", ref)
	}
	b.spans = append(b.spans, rg)
	return nil
}

func (b *sheetBuilder) build() (*grid.Grid, error) {
	for i := 0; i < len(b.spans); i++ {
		for j := i + 1; j < len(b.spans); j++ {
			if b.spans[i].Overlaps(b.spans[j]) {
				return nil, errorf(ErrWorkbook, "overlapping merged ranges %s and %s", b.spans[i], b.spans[j])
			}
		}
	}
	var (
		bounds = b.bounds()
		rows   = int(bounds.Lines)
		cols   = int(bounds.Columns)
	)
	g := grid.Grid{
		Name:          b.ref.Name,
		DefaultWidth:  b.defaultWidth,
		DefaultHeight: b.defaultHeight,
	}
	for i := 0; i < rows; i++ {
		line := make([]*grid.Cell, cols)
		for j := 0; j < cols; j++ {
			line[j] = &grid.Cell{
				Row:   i,
				Col:   j,
				Value: value.Empty(),
				Style: grid.DefaultStyle(),
			}
		}
		g.Rows = append(g.Rows, line)
	}
	for pos, rc := range b.cells {
		cell := g.Rows[pos.Line-1][pos.Column-1]
		val, err := b.decodeValue(rc)
		if err != nil {
			return nil, errorf(err, "cell %s", pos)
		}
		cell.Value = val
		if rc.style >= 0 {
			style, err := b.doc.styles.Resolve(rc.style)
			if err != nil {
				return nil, errorf(err, "cell %s", pos)
			}
			cell.Style = style
		}
	}
	for _, rg := range b.spans {
		span := grid.Span{
			StartRow: int(rg.Starts.Line) - 1,
			StartCol: int(rg.Starts.Column) - 1,
			EndRow:   int(rg.Ends.Line) - 1,
			EndCol:   int(rg.Ends.Column) - 1,
		}
		g.Spans = append(g.Spans, span)
		for i := span.StartRow; i <= span.EndRow; i++ {
			for j := span.StartCol; j <= span.EndCol; j++ {
				if !span.Anchor(i, j) {
					g.Rows[i][j].Covered = true
				}
			}
		}
	}
	g.Widths = collectDims(b.widths)
	g.Heights = collectDims(b.heights)
	return &g, nil
}

// bounds prefers the declared sheet dimension but always grows it to
// cover every populated cell and merged range, since applications are
// known to understate the used range.
func (b *sheetBuilder) bounds() layout.Dimension {
	dim := b.declared
	for pos := range b.cells {
		dim = dim.Max(layout.Dimension{
			Lines:   pos.Line,
			Columns: pos.Column,
		})
	}
	for _, rg := range b.spans {
		dim = dim.Max(layout.Dimension{
			Lines:   rg.Ends.Line,
			Columns: rg.Ends.Column,
		})
	}
	return dim
}

func (b *sheetBuilder) decodeValue(rc *rawCell) (value.Value, error) {
	var val value.Value
	switch rc.kind {
	case TypeSharedStr:
		n, err := strconv.Atoi(strings.TrimSpace(rc.raw))
		if err != nil {
			return nil, errorf(ErrWorkbook, "invalid shared string index %q", rc.raw)
		}
		str, err := b.doc.shared.At(n)
		if err != nil {
			return nil, err
		}
		val = value.Text(str)
	case TypeInlineStr:
		val = value.Text(rc.raw)
	case TypeBool:
		ok, err := strconv.ParseBool(strings.TrimSpace(rc.raw))
		if err != nil {
			return nil, errorf(ErrWorkbook, "invalid boolean %q", rc.raw)
		}
		val = value.Boolean(ok)
	case TypeError:
		val = value.Error(rc.raw)
	case TypeFormulaStr:
		rc.formula = true
		val = value.Text(rc.raw)
	case TypeDate:
		val = value.Text(rc.raw)
	case "", TypeNumber:
		if !rc.hasRaw {
			return value.Empty(), nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(rc.raw), 64)
		if err != nil {
			return nil, errorf(ErrWorkbook, "invalid numeric literal %q", rc.raw)
		}
		val = value.Float(n)
	default:
		return nil, errorf(ErrUnsupported, "cell type %q", rc.kind)
	}
	if rc.formula {
		if !rc.hasRaw {
			// formula without a cached result yields an empty cell
			return value.Empty(), nil
		}
		val = value.CachedResult(val)
	}
	return val, nil
}

func collectDims(explicit map[int64]float64) []grid.Dim {
	var dims []grid.Dim
	for ix, size := range explicit {
		dims = append(dims, grid.Dim{
			Index:    int(ix) - 1,
			Size:     size,
			Explicit: true,
		})
	}
	slices.SortFunc(dims, func(a, b grid.Dim) int {
		return a.Index - b.Index
	})
	return dims
}
