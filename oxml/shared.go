package oxml

import (
	"encoding/xml"
)

// SharedStrings is the ordered table of text values cells reference by
// index. Document order is the index space, entries are never reordered.
type SharedStrings struct {
	values []string
}

func emptySharedStrings() *SharedStrings {
	return &SharedStrings{}
}

func parseSharedStrings(buf []byte) (*SharedStrings, error) {
	var root xmlSharedStrings
	if err := xml.Unmarshal(buf, &root); err != nil {
		return nil, errorf(ErrWorkbook, "fail to read data from %s", partShared)
	}
	table := SharedStrings{
		values: make([]string, 0, len(root.Values)),
	}
	for _, s := range root.Values {
		table.values = append(table.values, s.Text())
	}
	return &table, nil
}

func (s *SharedStrings) Len() int {
	return len(s.values)
}

func (s *SharedStrings) At(ix int) (string, error) {
	if ix < 0 || ix >= len(s.values) {
		return "", errorf(ErrWorkbook, "shared string index %d out of range", ix)
	}
	return s.values[ix], nil
}
