package render

import (
	"strings"
	"testing"

	"github.com/midbel/xlgrid/grid"
	"github.com/midbel/xlgrid/value"
)

func makeCell(row, col int, v value.Value) *grid.Cell {
	return &grid.Cell{
		Row:   row,
		Col:   col,
		Value: v,
		Style: grid.DefaultStyle(),
	}
}

func TestTable(t *testing.T) {
	g := grid.Grid{
		Name: "demo",
		Rows: [][]*grid.Cell{
			{makeCell(0, 0, value.Text("name")), makeCell(0, 1, value.Text("total"))},
			{makeCell(1, 0, value.Text("apples")), makeCell(1, 1, value.Float(12))},
		},
	}
	out := Table(&g)
	for _, want := range []string{"name", "total", "apples", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q", want)
		}
	}
}

func TestTableCovered(t *testing.T) {
	covered := makeCell(0, 1, value.Text("hidden"))
	covered.Covered = true
	g := grid.Grid{
		Rows: [][]*grid.Cell{
			{makeCell(0, 0, value.Text("merged")), covered},
		},
		Spans: []grid.Span{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}},
	}
	out := Table(&g)
	if strings.Contains(out, "hidden") {
		t.Errorf("covered cell content leaked into output")
	}
}

func TestTableNumFmt(t *testing.T) {
	cell := makeCell(0, 0, value.Float(0.5))
	style := *grid.DefaultStyle()
	style.NumFmt = "0.00%"
	cell.Style = &style
	g := grid.Grid{
		Rows: [][]*grid.Cell{{cell}},
	}
	if out := Table(&g); !strings.Contains(out, "50.00%") {
		t.Errorf("output misses formatted percentage: %q", out)
	}
}
