package grid

import (
	"fmt"
)

const (
	AlignDefault = ""
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignFill    = "fill"
	AlignJustify = "justify"
	AlignTop     = "top"
	AlignBottom  = "bottom"
)

const (
	PatternNone  = "none"
	PatternSolid = "solid"
	PatternGray  = "gray125"
)

const (
	BorderNone   = ""
	BorderThin   = "thin"
	BorderMedium = "medium"
	BorderThick  = "thick"
	BorderDashed = "dashed"
	BorderDotted = "dotted"
	BorderDouble = "double"
)

const (
	UnderlineNone   = ""
	UnderlineSingle = "single"
	UnderlineDouble = "double"
)

type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha uint8
}

func RGB(r, g, b uint8) *Color {
	return &Color{
		Red:   r,
		Green: g,
		Blue:  b,
		Alpha: 0xFF,
	}
}

// Hex gives the color as RRGGBB, the form downstream renderers expect.
// The alpha channel is dropped.
func (c *Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.Red, c.Green, c.Blue)
}

func (c *Color) Equal(other *Color) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Strike    bool
	Underline string
	Color     *Color
}

func (f *Font) Equal(other *Font) bool {
	if f == nil || other == nil {
		return f == other
	}
	if !f.Color.Equal(other.Color) {
		return false
	}
	fst, snd := *f, *other
	fst.Color, snd.Color = nil, nil
	return fst == snd
}

type Fill struct {
	Pattern    string
	Foreground *Color
	Background *Color
}

func (f *Fill) Equal(other *Fill) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Pattern != other.Pattern {
		return false
	}
	return f.Foreground.Equal(other.Foreground) && f.Background.Equal(other.Background)
}

// Solid gives the color a solid fill paints the cell with. It yields
// nil for patterned or unfilled cells.
func (f *Fill) Solid() *Color {
	if f == nil || f.Pattern != PatternSolid {
		return nil
	}
	return f.Foreground
}

type BorderSide struct {
	Style string
	Color *Color
}

func (s BorderSide) Drawn() bool {
	return s.Style != BorderNone
}

func (s BorderSide) Equal(other BorderSide) bool {
	return s.Style == other.Style && s.Color.Equal(other.Color)
}

type Border struct {
	Top    BorderSide
	Bottom BorderSide
	Left   BorderSide
	Right  BorderSide
}

func (b *Border) Equal(other *Border) bool {
	if b == nil || other == nil {
		return b == other
	}
	ok := b.Top.Equal(other.Top) && b.Bottom.Equal(other.Bottom)
	if !ok {
		return false
	}
	return b.Left.Equal(other.Left) && b.Right.Equal(other.Right)
}

type Alignment struct {
	Horizontal string
	Vertical   string
	Wrap       bool
}

// Style is the fully resolved appearance of one cell. Instances are
// shared by every cell built from the same style index, so they must
// never be mutated after resolution.
type Style struct {
	Font   *Font
	Fill   *Fill
	Border *Border
	Align  Alignment
	NumFmt string
}

const GeneralFormat = "General"

var defaultStyle = Style{
	NumFmt: GeneralFormat,
}

// DefaultStyle is the style of cells without an explicit style index:
// no font, fill or border emphasis, default alignment, General format.
func DefaultStyle() *Style {
	return &defaultStyle
}

func (s *Style) Equal(other *Style) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Align != other.Align || s.NumFmt != other.NumFmt {
		return false
	}
	ok := s.Font.Equal(other.Font) && s.Fill.Equal(other.Fill)
	if !ok {
		return false
	}
	return s.Border.Equal(other.Border)
}
