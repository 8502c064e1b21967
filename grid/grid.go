package grid

import (
	"errors"
	"fmt"
	"iter"

	"github.com/midbel/xlgrid/value"
)

var ErrBounds = errors.New("position out of bounds")

type Encoder interface {
	EncodeGrid(*Grid) error
}

// View is the boundary contract toward table renderers: a rectangular
// matrix of cells plus the merge and sizing metadata needed for layout.
type View interface {
	Title() string
	Bounds() (int, int)
	Iter() iter.Seq[[]*Cell]
	Merged() []Span
}

type Cell struct {
	Row   int
	Col   int
	Value value.Value
	Style *Style

	// Covered marks a non anchor cell inside a merged range. The cell
	// keeps its coordinate for addressing but carries no content of its
	// own and renderers must skip it.
	Covered bool
}

func (c *Cell) Display() string {
	if c.Covered {
		return ""
	}
	return c.Value.String()
}

func (c *Cell) Blank() bool {
	return c.Covered || value.IsBlank(c.Value)
}

// Span is a merged range in 0-based coordinates, both corners inclusive.
// Content lives at the top left anchor only.
type Span struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

func (s Span) Contains(row, col int) bool {
	ok := row >= s.StartRow && row <= s.EndRow
	if !ok {
		return false
	}
	return col >= s.StartCol && col <= s.EndCol
}

func (s Span) Anchor(row, col int) bool {
	return row == s.StartRow && col == s.StartCol
}

// Dim carries an explicit column width or row height. Indices without
// an entry keep the sheet wide default.
type Dim struct {
	Index    int
	Size     float64
	Explicit bool
}

// Grid is the finalized dense view of one sheet. It is produced once
// per conversion and never mutated afterwards.
type Grid struct {
	Name  string
	Rows  [][]*Cell
	Spans []Span

	Widths  []Dim
	Heights []Dim

	DefaultWidth  float64
	DefaultHeight float64
}

func (g *Grid) Title() string {
	return g.Name
}

func (g *Grid) Bounds() (int, int) {
	if len(g.Rows) == 0 {
		return 0, 0
	}
	return len(g.Rows), len(g.Rows[0])
}

func (g *Grid) At(row, col int) (*Cell, error) {
	rows, cols := g.Bounds()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return nil, fmt.Errorf("%w: %d, %d", ErrBounds, row, col)
	}
	return g.Rows[row][col], nil
}

func (g *Grid) Iter() iter.Seq[[]*Cell] {
	it := func(yield func([]*Cell) bool) {
		for _, r := range g.Rows {
			if !yield(r) {
				break
			}
		}
	}
	return it
}

func (g *Grid) Merged() []Span {
	return g.Spans
}

// Width gives the effective width of a column, falling back to the
// sheet default when no explicit dimension was declared.
func (g *Grid) Width(col int) float64 {
	for _, d := range g.Widths {
		if d.Index == col && d.Explicit {
			return d.Size
		}
	}
	return g.DefaultWidth
}

func (g *Grid) Height(row int) float64 {
	for _, d := range g.Heights {
		if d.Index == row && d.Explicit {
			return d.Size
		}
	}
	return g.DefaultHeight
}

func (g *Grid) Encode(e Encoder) error {
	return e.EncodeGrid(g)
}
