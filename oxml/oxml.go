// Package oxml extracts a styled table from a spreadsheet stored in the
// OOXML xlsx container. One call transforms one input buffer into one
// grid.Grid; every intermediate structure (archive, shared strings,
// style table) lives for that call only and is never shared.
package oxml

import (
	"errors"
	"fmt"
	"os"

	"github.com/midbel/xlgrid/grid"
)

const (
	TypeSharedStr  = "s"
	TypeInlineStr  = "inlineStr"
	TypeFormulaStr = "str"
	TypeDate       = "d"
	TypeError      = "e"
	TypeBool       = "b"
	TypeNumber     = "n"
)

var (
	ErrArchive     = errors.New("corrupt archive")
	ErrPart        = errors.New("missing part")
	ErrWorkbook    = errors.New("corrupt workbook")
	ErrSheetIndex  = errors.New("sheet index out of range")
	ErrUnsupported = errors.New("unsupported feature")
)

// Options selects the sheet to extract and the style categories to
// materialize. A disabled category is still parsed but the resolved
// style carries its default so renderers do not apply it.
type Options struct {
	Sheet int

	TableStyle bool
	Alignment  bool
	Stroke     bool
	Fill       bool
	Font       bool
}

func DefaultOptions() Options {
	return Options{
		TableStyle: true,
		Alignment:  true,
		Stroke:     true,
		Fill:       true,
		Font:       true,
	}
}

// Document is one parsed workbook: the container plus the three lookup
// tables every sheet parse resolves through. Read-only once built.
type Document struct {
	archive *Archive
	shared  *SharedStrings
	styles  *StyleTable
	sheets  []SheetRef
}

func (d *Document) Sheets() []SheetRef {
	refs := make([]SheetRef, len(d.sheets))
	copy(refs, d.sheets)
	return refs
}

// Select resolves a 0-based sheet index to its reference, telling apart
// an empty workbook from an index outside the sheet list.
func (d *Document) Select(ix int) (SheetRef, error) {
	var ref SheetRef
	if len(d.sheets) == 0 {
		return ref, errorf(ErrSheetIndex, "workbook has no sheets")
	}
	if ix < 0 || ix >= len(d.sheets) {
		return ref, errorf(ErrSheetIndex, "index %d not in [0, %d)", ix, len(d.sheets))
	}
	return d.sheets[ix], nil
}

// Grid parses the sheet part at the given index and materializes the
// dense grid. Styles are masked per the options the document was read
// with.
func (d *Document) Grid(sheet int) (*grid.Grid, error) {
	ref, err := d.Select(sheet)
	if err != nil {
		return nil, err
	}
	buf, err := d.archive.Part(ref.Target)
	if err != nil {
		return nil, err
	}
	return buildSheet(buf, ref, d)
}

// Extract runs the whole pipeline: container, shared strings, styles,
// workbook, then the selected sheet. Any failure aborts the conversion;
// no partial grid is ever produced.
func Extract(data []byte, opts Options) (*grid.Grid, error) {
	doc, err := readDocument(data, opts)
	if err != nil {
		return nil, err
	}
	return doc.Grid(opts.Sheet)
}

func ExtractFile(file string, opts Options) (*grid.Grid, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Extract(data, opts)
}

func errorf(err error, pattern string, args ...any) error {
	msg := fmt.Sprintf(pattern, args...)
	return fmt.Errorf("%w: %s", err, msg)
}
