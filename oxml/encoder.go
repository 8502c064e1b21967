package oxml

import (
	"encoding/json"
	"io"

	"github.com/midbel/xlgrid/csv"
	"github.com/midbel/xlgrid/format"
	"github.com/midbel/xlgrid/grid"
)

type csvEncoder struct {
	writer io.Writer
	comma  byte
}

func EncodeCSV(w io.Writer) grid.Encoder {
	return &csvEncoder{
		writer: w,
		comma:  ',',
	}
}

func (e *csvEncoder) EncodeGrid(g *grid.Grid) error {
	writer := csv.NewWriter(e.writer)
	writer.Comma = e.comma
	writer.ForceQuote = true
	for row := range g.Iter() {
		var fields []string
		for i := range row {
			fields = append(fields, formatCell(row[i]))
		}
		if err := writer.Write(fields); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// formatCell renders the cell value through its number format code.
// Covered cells render empty.
func formatCell(c *grid.Cell) string {
	if c.Covered {
		return ""
	}
	code := grid.GeneralFormat
	if c.Style != nil {
		code = c.Style.NumFmt
	}
	return format.Display(c.Value, code)
}

type jsonEncoder struct {
	writer io.Writer
}

func EncodeJSON(w io.Writer) grid.Encoder {
	return &jsonEncoder{
		writer: w,
	}
}

type jsonStyle struct {
	Font      *grid.Font      `json:"font,omitempty"`
	Fill      *grid.Fill      `json:"fill,omitempty"`
	Border    *grid.Border    `json:"border,omitempty"`
	Alignment *grid.Alignment `json:"alignment,omitempty"`
	NumFmt    string          `json:"numfmt,omitempty"`
}

type jsonCell struct {
	Type    string     `json:"type"`
	Value   any        `json:"value"`
	Covered bool       `json:"covered,omitempty"`
	Style   *jsonStyle `json:"style,omitempty"`
}

type jsonSpan struct {
	StartRow int `json:"srow"`
	StartCol int `json:"scol"`
	EndRow   int `json:"erow"`
	EndCol   int `json:"ecol"`
}

type jsonDim struct {
	Index int     `json:"index"`
	Size  float64 `json:"size"`
}

type jsonGrid struct {
	Name          string       `json:"name"`
	Rows          [][]jsonCell `json:"rows"`
	Merges        []jsonSpan   `json:"merges,omitempty"`
	Widths        []jsonDim    `json:"widths,omitempty"`
	Heights       []jsonDim    `json:"heights,omitempty"`
	DefaultWidth  float64      `json:"defaultWidth,omitempty"`
	DefaultHeight float64      `json:"defaultHeight,omitempty"`
}

func (e *jsonEncoder) EncodeGrid(g *grid.Grid) error {
	doc := jsonGrid{
		Name:          g.Title(),
		DefaultWidth:  g.DefaultWidth,
		DefaultHeight: g.DefaultHeight,
	}
	for row := range g.Iter() {
		var line []jsonCell
		for _, c := range row {
			line = append(line, makeJsonCell(c))
		}
		doc.Rows = append(doc.Rows, line)
	}
	for _, s := range g.Spans {
		doc.Merges = append(doc.Merges, jsonSpan{
			StartRow: s.StartRow,
			StartCol: s.StartCol,
			EndRow:   s.EndRow,
			EndCol:   s.EndCol,
		})
	}
	for _, d := range g.Widths {
		doc.Widths = append(doc.Widths, jsonDim{Index: d.Index, Size: d.Size})
	}
	for _, d := range g.Heights {
		doc.Heights = append(doc.Heights, jsonDim{Index: d.Index, Size: d.Size})
	}
	enc := json.NewEncoder(e.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func makeJsonCell(c *grid.Cell) jsonCell {
	jc := jsonCell{
		Type:    c.Value.Type(),
		Value:   c.Value.Scalar(),
		Covered: c.Covered,
	}
	if style := c.Style; style != nil && !style.Equal(grid.DefaultStyle()) {
		js := jsonStyle{
			Font:   style.Font,
			Fill:   style.Fill,
			Border: style.Border,
		}
		var zero grid.Alignment
		if style.Align != zero {
			align := style.Align
			js.Alignment = &align
		}
		if style.NumFmt != grid.GeneralFormat {
			js.NumFmt = style.NumFmt
		}
		jc.Style = &js
	}
	return jc
}
