// Package render draws a grid as a styled terminal table.
package render

import (
	lipgloss "charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/midbel/xlgrid/format"
	"github.com/midbel/xlgrid/grid"
)

// Table renders every cell of the grid with its resolved style: font
// attributes, colors, fill and horizontal alignment. Covered cells
// render empty so merged content appears once.
func Table(g *grid.Grid) string {
	tb := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell, err := g.At(row, col)
			if err != nil {
				return lipgloss.NewStyle()
			}
			return cellStyle(cell)
		})
	for row := range g.Iter() {
		line := make([]string, len(row))
		for i, cell := range row {
			line[i] = cellText(cell)
		}
		tb.Row(line...)
	}
	return tb.String()
}

func cellText(c *grid.Cell) string {
	if c.Covered {
		return ""
	}
	code := grid.GeneralFormat
	if c.Style != nil {
		code = c.Style.NumFmt
	}
	return format.Display(c.Value, code)
}

func cellStyle(c *grid.Cell) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if c.Style == nil {
		return style
	}
	if font := c.Style.Font; font != nil {
		style = style.
			Bold(font.Bold).
			Italic(font.Italic).
			Strikethrough(font.Strike)
		if font.Underline != grid.UnderlineNone {
			style = style.Underline(true)
		}
		if font.Color != nil {
			style = style.Foreground(lipgloss.Color("#" + font.Color.Hex()))
		}
	}
	if fill := c.Style.Fill; fill != nil {
		if bg := fill.Solid(); bg != nil {
			style = style.Background(lipgloss.Color("#" + bg.Hex()))
		}
	}
	switch c.Style.Align.Horizontal {
	case grid.AlignLeft:
		style = style.Align(lipgloss.Left)
	case grid.AlignCenter:
		style = style.Align(lipgloss.Center)
	case grid.AlignRight:
		style = style.Align(lipgloss.Right)
	}
	return style
}
