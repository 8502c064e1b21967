package oxml

import (
	"encoding/xml"
)

const wbBaseDir = "xl"

const (
	partRootRels = "_rels/.rels"
	partWbRels   = "xl/_rels/workbook.xml.rels"
	partShared   = "xl/sharedStrings.xml"
	partStyles   = "xl/styles.xml"
	partTheme    = "xl/theme/theme1.xml"
)

type xmlRelations struct {
	XMLName   xml.Name      `xml:"Relationships"`
	Relations []xmlRelation `xml:"Relationship"`
}

type xmlRelation struct {
	XMLName xml.Name `xml:"Relationship"`
	Id      string   `xml:",attr"`
	Type    string   `xml:",attr"`
	Target  string   `xml:",attr"`
}

type xmlWorkbook struct {
	XMLName xml.Name   `xml:"workbook"`
	Sheets  []xmlSheet `xml:"sheets>sheet"`
}

type xmlSheet struct {
	XMLName xml.Name `xml:"sheet"`
	Id      string   `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Name    string   `xml:"name,attr"`
	Index   int      `xml:"sheetId,attr"`
}

type xmlSharedStrings struct {
	XMLName xml.Name          `xml:"sst"`
	Count   int               `xml:"count,attr"`
	Values  []xmlSharedString `xml:"si"`
}

// A shared string entry is either a plain run of text or a sequence of
// rich text runs. Run font overrides are not kept, only their text.
type xmlSharedString struct {
	Value string       `xml:"t"`
	Runs  []xmlTextRun `xml:"r"`
}

func (s xmlSharedString) Text() string {
	if len(s.Runs) == 0 {
		return s.Value
	}
	var str string
	for _, r := range s.Runs {
		str += r.Value
	}
	return str
}

type xmlTextRun struct {
	Value string `xml:"t"`
}

type xmlStyleSheet struct {
	XMLName xml.Name     `xml:"styleSheet"`
	NumFmts []xmlNumFmt  `xml:"numFmts>numFmt"`
	Fonts   []xmlFont    `xml:"fonts>font"`
	Fills   []xmlFill    `xml:"fills>fill"`
	Borders []xmlBorder  `xml:"borders>border"`
	CellXfs []xmlXf      `xml:"cellXfs>xf"`
	Palette []xmlRgbItem `xml:"colors>indexedColors>rgbColor"`
}

type xmlNumFmt struct {
	Id   int    `xml:"numFmtId,attr"`
	Code string `xml:"formatCode,attr"`
}

type xmlFont struct {
	Name   *xmlValString `xml:"name"`
	Size   *xmlValFloat  `xml:"sz"`
	Bold   *xmlFlag      `xml:"b"`
	Italic *xmlFlag      `xml:"i"`
	Strike *xmlFlag      `xml:"strike"`
	Under  *xmlValString `xml:"u"`
	Color  *xmlColor     `xml:"color"`
}

type xmlFill struct {
	Pattern *xmlPatternFill `xml:"patternFill"`
}

type xmlPatternFill struct {
	Type       string    `xml:"patternType,attr"`
	Foreground *xmlColor `xml:"fgColor"`
	Background *xmlColor `xml:"bgColor"`
}

type xmlBorder struct {
	Left   xmlBorderSide `xml:"left"`
	Right  xmlBorderSide `xml:"right"`
	Top    xmlBorderSide `xml:"top"`
	Bottom xmlBorderSide `xml:"bottom"`
}

type xmlBorderSide struct {
	Style string    `xml:"style,attr"`
	Color *xmlColor `xml:"color"`
}

type xmlXf struct {
	NumFmtId  int           `xml:"numFmtId,attr"`
	FontId    int           `xml:"fontId,attr"`
	FillId    int           `xml:"fillId,attr"`
	BorderId  int           `xml:"borderId,attr"`
	Alignment *xmlAlignment `xml:"alignment"`
}

type xmlAlignment struct {
	Horizontal string `xml:"horizontal,attr"`
	Vertical   string `xml:"vertical,attr"`
	WrapText   bool   `xml:"wrapText,attr"`
}

// xmlColor covers the three color encodings a style can carry: direct
// ARGB, a legacy indexed palette entry or a theme palette entry.
type xmlColor struct {
	Auto    bool    `xml:"auto,attr"`
	RGB     string  `xml:"rgb,attr"`
	Indexed *int    `xml:"indexed,attr"`
	Theme   *int    `xml:"theme,attr"`
	Tint    float64 `xml:"tint,attr"`
}

type xmlRgbItem struct {
	RGB string `xml:"rgb,attr"`
}

type xmlValString struct {
	Val string `xml:"val,attr"`
}

type xmlValFloat struct {
	Val float64 `xml:"val,attr"`
}

// xmlFlag models boolean child elements written as <b/>, <b val="1"/>
// or <b val="false"/>. Presence means enabled unless val denies it.
type xmlFlag struct {
	Val string `xml:"val,attr"`
}

func (f *xmlFlag) Enabled() bool {
	if f == nil {
		return false
	}
	return f.Val != "0" && f.Val != "false"
}

type xmlTheme struct {
	XMLName xml.Name       `xml:"theme"`
	Scheme  xmlColorScheme `xml:"themeElements>clrScheme"`
}

type xmlColorScheme struct {
	Dark1   xmlSchemeColor `xml:"dk1"`
	Light1  xmlSchemeColor `xml:"lt1"`
	Dark2   xmlSchemeColor `xml:"dk2"`
	Light2  xmlSchemeColor `xml:"lt2"`
	Accent1 xmlSchemeColor `xml:"accent1"`
	Accent2 xmlSchemeColor `xml:"accent2"`
	Accent3 xmlSchemeColor `xml:"accent3"`
	Accent4 xmlSchemeColor `xml:"accent4"`
	Accent5 xmlSchemeColor `xml:"accent5"`
	Accent6 xmlSchemeColor `xml:"accent6"`
	Link    xmlSchemeColor `xml:"hlink"`
	FolLink xmlSchemeColor `xml:"folHlink"`
}

type xmlSchemeColor struct {
	Srgb   *xmlValString `xml:"srgbClr"`
	System *xmlSysColor  `xml:"sysClr"`
}

func (c xmlSchemeColor) RGB() string {
	if c.Srgb != nil {
		return c.Srgb.Val
	}
	if c.System != nil {
		return c.System.Last
	}
	return ""
}

type xmlSysColor struct {
	Val  string `xml:"val,attr"`
	Last string `xml:"lastClr,attr"`
}
