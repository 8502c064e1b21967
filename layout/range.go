package layout

import (
	"fmt"
	"strings"
)

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) Range {
	return Range{
		Starts: starts,
		Ends:   ends,
	}
}

func RangeFromString(str string) Range {
	fst, lst, ok := strings.Cut(str, ":")
	var (
		starts Position
		ends   Position
	)
	starts = ParsePosition(fst)
	if ok {
		ends = ParsePosition(lst)
	} else {
		ends = starts
	}
	return NewRange(starts, ends)
}

func (r Range) Valid() bool {
	if !r.Starts.Valid() || !r.Ends.Valid() {
		return false
	}
	return r.Starts.Line <= r.Ends.Line && r.Starts.Column <= r.Ends.Column
}

func (r Range) Contains(pos Position) bool {
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

func (r Range) Overlaps(other Range) bool {
	if r.Ends.Line < other.Starts.Line || other.Ends.Line < r.Starts.Line {
		return false
	}
	return r.Ends.Column >= other.Starts.Column && other.Ends.Column >= r.Starts.Column
}

func (r Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column
}

func (r Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line
}

func (r Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}

func (r Range) Normalize() Range {
	x := NewRange(r.Starts, r.Ends)
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	return x
}
