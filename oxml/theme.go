package oxml

import (
	"encoding/xml"
	"math"

	"github.com/midbel/xlgrid/grid"
)

// Theme is the workbook color palette cells reference through the
// theme attribute of a color element.
type Theme struct {
	colors []string
}

func emptyTheme() *Theme {
	return &Theme{}
}

func parseTheme(buf []byte) (*Theme, error) {
	var root xmlTheme
	if err := xml.Unmarshal(buf, &root); err != nil {
		return nil, errorf(ErrWorkbook, "fail to read data from %s", partTheme)
	}
	scheme := root.Scheme
	// Spreadsheet applications index the scheme with light1/dark1 and
	// light2/dark2 swapped relative to document order.
	theme := Theme{
		colors: []string{
			scheme.Light1.RGB(),
			scheme.Dark1.RGB(),
			scheme.Light2.RGB(),
			scheme.Dark2.RGB(),
			scheme.Accent1.RGB(),
			scheme.Accent2.RGB(),
			scheme.Accent3.RGB(),
			scheme.Accent4.RGB(),
			scheme.Accent5.RGB(),
			scheme.Accent6.RGB(),
			scheme.Link.RGB(),
			scheme.FolLink.RGB(),
		},
	}
	return &theme, nil
}

// Color resolves a theme palette index and applies its tint, yielding
// nil when the index has no color attached.
func (t *Theme) Color(ix int, tint float64) *grid.Color {
	if ix < 0 || ix >= len(t.colors) || t.colors[ix] == "" {
		return nil
	}
	color, err := parseHexColor(t.colors[ix])
	if err != nil {
		return nil
	}
	return applyTint(color, tint)
}

func applyTint(c *grid.Color, tint float64) *grid.Color {
	if c == nil || tint == 0 {
		return c
	}
	shade := func(v uint8) uint8 {
		f := float64(v)
		if tint < 0 {
			f = f * (1 + tint)
		} else {
			f = f*(1-tint) + 255*tint
		}
		return uint8(math.Round(min(max(f, 0), 255)))
	}
	tinted := grid.Color{
		Red:   shade(c.Red),
		Green: shade(c.Green),
		Blue:  shade(c.Blue),
		Alpha: c.Alpha,
	}
	return &tinted
}
