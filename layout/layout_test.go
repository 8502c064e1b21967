package layout

import (
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		Addr   string
		Line   int64
		Column int64
	}{
		{
			Addr:   "A1",
			Line:   1,
			Column: 1,
		},
		{
			Addr:   "B2",
			Line:   2,
			Column: 2,
		},
		{
			Addr:   "Z99",
			Line:   99,
			Column: 26,
		},
		{
			Addr:   "AA10",
			Line:   10,
			Column: 27,
		},
		{
			Addr:   "AZ1",
			Line:   1,
			Column: 52,
		},
		{
			Addr:   "BA1",
			Line:   1,
			Column: 53,
		},
	}
	for _, c := range tests {
		got := ParsePosition(c.Addr)
		if got.Line != c.Line || got.Column != c.Column {
			t.Errorf("%s: want (%d, %d), got (%d, %d)", c.Addr, c.Line, c.Column, got.Line, got.Column)
			continue
		}
		if addr := got.Addr(); addr != c.Addr {
			t.Errorf("%s: address mismatched after round trip! got %s", c.Addr, addr)
		}
	}
}

func TestIsAddress(t *testing.T) {
	tests := []struct {
		Addr string
		Want bool
	}{
		{Addr: "A1", Want: true},
		{Addr: "zz100", Want: true},
		{Addr: "A0", Want: false},
		{Addr: "A", Want: false},
		{Addr: "1", Want: false},
		{Addr: "11", Want: false},
		{Addr: "A1B", Want: false},
		{Addr: "", Want: false},
	}
	for _, c := range tests {
		if got := IsAddress(c.Addr); got != c.Want {
			t.Errorf("%q: want %t, got %t", c.Addr, c.Want, got)
		}
	}
}

func TestRangeFromString(t *testing.T) {
	rg := RangeFromString("A1:B2")
	if !rg.Valid() {
		t.Fatalf("A1:B2 should be a valid range")
	}
	if rg.Width() != 1 || rg.Height() != 1 {
		t.Errorf("A1:B2: want width 1 and height 1, got %d and %d", rg.Width(), rg.Height())
	}
	single := RangeFromString("C3")
	if !single.Starts.Equal(single.Ends) {
		t.Errorf("C3: single cell range should start and end at the same position")
	}
}

func TestRangeContains(t *testing.T) {
	rg := RangeFromString("B2:D4")
	tests := []struct {
		Addr string
		Want bool
	}{
		{Addr: "B2", Want: true},
		{Addr: "D4", Want: true},
		{Addr: "C3", Want: true},
		{Addr: "A1", Want: false},
		{Addr: "E4", Want: false},
		{Addr: "B5", Want: false},
	}
	for _, c := range tests {
		if got := rg.Contains(ParsePosition(c.Addr)); got != c.Want {
			t.Errorf("%s in %s: want %t, got %t", c.Addr, rg, c.Want, got)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	tests := []struct {
		First  string
		Second string
		Want   bool
	}{
		{
			First:  "A1:B2",
			Second: "B2:C3",
			Want:   true,
		},
		{
			First:  "A1:B2",
			Second: "C3:D4",
			Want:   false,
		},
		{
			First:  "A1:D1",
			Second: "B1:C1",
			Want:   true,
		},
		{
			First:  "A1:A10",
			Second: "B1:B10",
			Want:   false,
		},
	}
	for _, c := range tests {
		var (
			fst = RangeFromString(c.First)
			snd = RangeFromString(c.Second)
		)
		if got := fst.Overlaps(snd); got != c.Want {
			t.Errorf("%s overlaps %s: want %t, got %t", c.First, c.Second, c.Want, got)
		}
		if got := snd.Overlaps(fst); got != c.Want {
			t.Errorf("%s overlaps %s: overlap should be symmetric", c.Second, c.First)
		}
	}
}
