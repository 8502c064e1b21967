package oxml

import (
	"encoding/xml"
	"slices"
	"strings"
)

// SheetRef ties a sheet name to the archive part holding its data.
type SheetRef struct {
	Name   string
	Id     string
	Index  int
	Target string
}

type reader struct {
	archive *Archive
	opts    Options

	err error
}

// ReadDocument parses the structural parts of the container: shared
// strings, theme, styles and the workbook sheet list. Sheet data is
// left alone until a grid is requested. The style toggles in opts are
// fixed here; every grid built from the document observes them.
func ReadDocument(data []byte, opts Options) (*Document, error) {
	return readDocument(data, opts)
}

func readDocument(data []byte, opts Options) (*Document, error) {
	archive, err := OpenArchive(data)
	if err != nil {
		return nil, err
	}
	r := reader{
		archive: archive,
		opts:    opts,
	}
	doc := Document{
		archive: archive,
	}
	doc.shared = r.readSharedStrings()
	doc.styles = r.readStyles(r.readTheme())
	doc.sheets = r.readWorkbook()
	if r.err != nil {
		return nil, r.err
	}
	return &doc, nil
}

func (r *reader) readSharedStrings() *SharedStrings {
	if r.invalid() {
		return nil
	}
	// a workbook that stores every string inline has no shared part
	if !r.archive.Has(partShared) {
		return emptySharedStrings()
	}
	buf, err := r.archive.Part(partShared)
	if err != nil {
		r.err = err
		return nil
	}
	table, err := parseSharedStrings(buf)
	if err != nil {
		r.err = err
	}
	return table
}

func (r *reader) readTheme() *Theme {
	if r.invalid() {
		return nil
	}
	if !r.archive.Has(partTheme) {
		return emptyTheme()
	}
	buf, err := r.archive.Part(partTheme)
	if err != nil {
		r.err = err
		return nil
	}
	theme, err := parseTheme(buf)
	if err != nil {
		r.err = err
	}
	return theme
}

func (r *reader) readStyles(theme *Theme) *StyleTable {
	if r.invalid() {
		return nil
	}
	buf, err := r.archive.Part(partStyles)
	if err != nil {
		r.err = err
		return nil
	}
	table, err := parseStyles(buf, theme, r.opts)
	if err != nil {
		r.err = err
	}
	return table
}

func (r *reader) readWorkbook() []SheetRef {
	addr := r.readWorkbookLocation()
	if r.invalid() {
		return nil
	}
	buf, err := r.archive.Part(addr)
	if err != nil {
		r.err = err
		return nil
	}
	var root xmlWorkbook
	if err := xml.Unmarshal(buf, &root); err != nil {
		r.err = errorf(ErrWorkbook, "fail to read data from %s", addr)
		return nil
	}
	relations := r.readRelationsForSheets()
	if r.invalid() {
		return nil
	}
	var refs []SheetRef
	for i, xs := range root.Sheets {
		ix := slices.IndexFunc(relations, func(rel xmlRelation) bool {
			return rel.Id == xs.Id
		})
		if ix < 0 {
			r.err = errorf(ErrWorkbook, "sheet %s: no part for relation %s", xs.Name, xs.Id)
			return nil
		}
		refs = append(refs, SheetRef{
			Name:   xs.Name,
			Id:     xs.Id,
			Index:  i,
			Target: fromBase(relations[ix].Target),
		})
	}
	return refs
}

func (r *reader) readWorkbookLocation() string {
	if r.invalid() {
		return ""
	}
	buf, err := r.archive.Part(partRootRels)
	if err != nil {
		r.err = err
		return ""
	}
	var root xmlRelations
	if err := xml.Unmarshal(buf, &root); err != nil {
		r.err = errorf(ErrWorkbook, "fail to read data from %s", partRootRels)
		return ""
	}
	ix := slices.IndexFunc(root.Relations, func(rel xmlRelation) bool {
		return strings.HasSuffix(rel.Type, "relationships/officeDocument")
	})
	if ix < 0 {
		r.err = errorf(ErrWorkbook, "no workbook relation in %s", partRootRels)
		return ""
	}
	return strings.TrimPrefix(root.Relations[ix].Target, "/")
}

func (r *reader) readRelationsForSheets() []xmlRelation {
	if r.invalid() {
		return nil
	}
	buf, err := r.archive.Part(partWbRels)
	if err != nil {
		r.err = err
		return nil
	}
	var root xmlRelations
	if err := xml.Unmarshal(buf, &root); err != nil {
		r.err = errorf(ErrWorkbook, "fail to read data from %s", partWbRels)
		return nil
	}
	return root.Relations
}

func (r *reader) invalid() bool {
	return r.err != nil
}

func fromBase(name string) string {
	name = strings.TrimPrefix(name, "/")
	if strings.HasPrefix(name, wbBaseDir+"/") {
		return name
	}
	return wbBaseDir + "/" + name
}
