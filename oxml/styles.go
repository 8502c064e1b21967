package oxml

import (
	"encoding/xml"
	"strconv"

	"github.com/midbel/xlgrid/grid"
)

// Number formats with an id below 164 are built in and carry no
// formatCode entry in the styles part.
var builtinFormats = map[int]string{
	0:  grid.GeneralFormat,
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00e+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm am/pm",
	19: "h:mm:ss am/pm",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0e+0",
	49: "@",
}

// The legacy indexed color palette. A styles part can override it with
// its own indexedColors list.
var indexedColors = []string{
	"FF000000", "FFFFFFFF", "FFFF0000", "FF00FF00",
	"FF0000FF", "FFFFFF00", "FFFF00FF", "FF00FFFF",
	"FF000000", "FFFFFFFF", "FFFF0000", "FF00FF00",
	"FF0000FF", "FFFFFF00", "FFFF00FF", "FF00FFFF",
	"FF800000", "FF008000", "FF000080", "FF808000",
	"FF800080", "FF008080", "FFC0C0C0", "FF808080",
	"FF9999FF", "FF993366", "FFFFFFCC", "FFCCFFFF",
	"FF660066", "FFFF8080", "FF0066CC", "FFCCCCFF",
	"FF000080", "FFFF00FF", "FFFFFF00", "FF00FFFF",
	"FF800080", "FF800000", "FF008080", "FF0000FF",
	"FF00CCFF", "FFCCFFFF", "FFCCFFCC", "FFFFFF99",
	"FF99CCFF", "FFFF99CC", "FFCC99FF", "FFFFCC99",
	"FF3366FF", "FF33CCCC", "FF99CC00", "FFFFCC00",
	"FFFF9900", "FFFF6600", "FF666699", "FF969696",
	"FF003366", "FF339966", "FF003300", "FF333300",
	"FF993300", "FF993366", "FF333399", "FF333333",
}

// StyleTable holds the four independent sequences of the styles part
// plus the cell style records referencing them. Resolution is memoized
// per style index for the lifetime of one conversion call.
type StyleTable struct {
	formats map[int]string
	fonts   []xmlFont
	fills   []xmlFill
	borders []xmlBorder
	xfs     []xmlXf
	palette []string
	theme   *Theme

	cache map[int]*grid.Style
	opts  Options
}

func parseStyles(buf []byte, theme *Theme, opts Options) (*StyleTable, error) {
	var root xmlStyleSheet
	if err := xml.Unmarshal(buf, &root); err != nil {
		return nil, errorf(ErrWorkbook, "fail to read data from %s", partStyles)
	}
	table := StyleTable{
		formats: make(map[int]string),
		fonts:   root.Fonts,
		fills:   root.Fills,
		borders: root.Borders,
		xfs:     root.CellXfs,
		palette: indexedColors,
		theme:   theme,
		cache:   make(map[int]*grid.Style),
		opts:    opts,
	}
	for _, f := range root.NumFmts {
		table.formats[f.Id] = f.Code
	}
	if len(root.Palette) > 0 {
		table.palette = make([]string, 0, len(root.Palette))
		for _, c := range root.Palette {
			table.palette = append(table.palette, c.RGB)
		}
	}
	return &table, nil
}

// Resolve materializes the style referenced by a cell style index. The
// full record is always dereferenced and bounds checked; disabled
// option categories are cleared afterwards so every cell sharing the
// index gets the same masked instance.
func (t *StyleTable) Resolve(ix int) (*grid.Style, error) {
	if style, ok := t.cache[ix]; ok {
		return style, nil
	}
	if ix < 0 || ix >= len(t.xfs) {
		return nil, errorf(ErrWorkbook, "cell style %d out of range", ix)
	}
	var (
		xf    = t.xfs[ix]
		style = grid.Style{
			NumFmt: grid.GeneralFormat,
		}
	)
	font, err := t.resolveFont(xf.FontId)
	if err != nil {
		return nil, err
	}
	fill, err := t.resolveFill(xf.FillId)
	if err != nil {
		return nil, err
	}
	border, err := t.resolveBorder(xf.BorderId)
	if err != nil {
		return nil, err
	}
	style.Font = font
	style.Fill = fill
	style.Border = border
	style.NumFmt = t.formatCode(xf.NumFmtId)
	if xf.Alignment != nil {
		style.Align = grid.Alignment{
			Horizontal: xf.Alignment.Horizontal,
			Vertical:   xf.Alignment.Vertical,
			Wrap:       xf.Alignment.WrapText,
		}
	}
	t.mask(&style)
	t.cache[ix] = &style
	return &style, nil
}

func (t *StyleTable) mask(style *grid.Style) {
	if !t.opts.Font {
		style.Font = nil
	}
	if !t.opts.Fill {
		style.Fill = nil
	}
	if !t.opts.Stroke {
		style.Border = nil
	}
	if !t.opts.Alignment {
		style.Align = grid.Alignment{}
	}
	if !t.opts.TableStyle {
		style.NumFmt = grid.GeneralFormat
	}
}

func (t *StyleTable) resolveFont(ix int) (*grid.Font, error) {
	if ix < 0 || ix >= len(t.fonts) {
		return nil, errorf(ErrWorkbook, "font %d out of range (%d fonts)", ix, len(t.fonts))
	}
	var (
		xf   = t.fonts[ix]
		font grid.Font
	)
	if xf.Name != nil {
		font.Name = xf.Name.Val
	}
	if xf.Size != nil {
		font.Size = xf.Size.Val
	}
	font.Bold = xf.Bold.Enabled()
	font.Italic = xf.Italic.Enabled()
	font.Strike = xf.Strike.Enabled()
	font.Underline = underlineKind(xf.Under)
	color, err := t.resolveColor(xf.Color)
	if err != nil {
		return nil, err
	}
	font.Color = color
	return &font, nil
}

func underlineKind(u *xmlValString) string {
	if u == nil {
		return grid.UnderlineNone
	}
	switch u.Val {
	case "double", "doubleAccounting":
		return grid.UnderlineDouble
	case "none":
		return grid.UnderlineNone
	default:
		// a bare <u/> means single underline
		return grid.UnderlineSingle
	}
}

func (t *StyleTable) resolveFill(ix int) (*grid.Fill, error) {
	if ix < 0 || ix >= len(t.fills) {
		return nil, errorf(ErrWorkbook, "fill %d out of range (%d fills)", ix, len(t.fills))
	}
	var (
		xf   = t.fills[ix]
		fill = grid.Fill{
			Pattern: grid.PatternNone,
		}
	)
	if xf.Pattern == nil {
		return &fill, nil
	}
	if xf.Pattern.Type != "" {
		fill.Pattern = xf.Pattern.Type
	}
	fg, err := t.resolveColor(xf.Pattern.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := t.resolveColor(xf.Pattern.Background)
	if err != nil {
		return nil, err
	}
	fill.Foreground = fg
	fill.Background = bg
	return &fill, nil
}

func (t *StyleTable) resolveBorder(ix int) (*grid.Border, error) {
	if ix < 0 || ix >= len(t.borders) {
		return nil, errorf(ErrWorkbook, "border %d out of range (%d borders)", ix, len(t.borders))
	}
	var (
		xf     = t.borders[ix]
		border grid.Border
		err    error
	)
	if border.Left, err = t.resolveSide(xf.Left); err != nil {
		return nil, err
	}
	if border.Right, err = t.resolveSide(xf.Right); err != nil {
		return nil, err
	}
	if border.Top, err = t.resolveSide(xf.Top); err != nil {
		return nil, err
	}
	if border.Bottom, err = t.resolveSide(xf.Bottom); err != nil {
		return nil, err
	}
	return &border, nil
}

func (t *StyleTable) resolveSide(side xmlBorderSide) (grid.BorderSide, error) {
	bs := grid.BorderSide{
		Style: side.Style,
	}
	color, err := t.resolveColor(side.Color)
	if err != nil {
		return bs, err
	}
	bs.Color = color
	return bs, nil
}

// resolveColor maps the three color encodings to a concrete RGBA value.
// Absent color information yields nil, never black: the consumer is
// expected to apply its own default.
func (t *StyleTable) resolveColor(c *xmlColor) (*grid.Color, error) {
	switch {
	case c == nil || c.Auto:
		return nil, nil
	case c.RGB != "":
		color, err := parseHexColor(c.RGB)
		if err != nil {
			return nil, err
		}
		return applyTint(color, c.Tint), nil
	case c.Theme != nil:
		return t.theme.Color(*c.Theme, c.Tint), nil
	case c.Indexed != nil:
		return t.indexedColor(*c.Indexed), nil
	default:
		return nil, nil
	}
}

func (t *StyleTable) indexedColor(ix int) *grid.Color {
	if ix < 0 || ix >= len(t.palette) {
		// indices 64 and up stand for system colors, no explicit value
		return nil
	}
	color, err := parseHexColor(t.palette[ix])
	if err != nil {
		return nil
	}
	return color
}

func (t *StyleTable) formatCode(id int) string {
	if code, ok := t.formats[id]; ok {
		return code
	}
	if code, ok := builtinFormats[id]; ok {
		return code
	}
	// unknown builtin ids fall back to General instead of failing
	return grid.GeneralFormat
}

func parseHexColor(str string) (*grid.Color, error) {
	if len(str) == 6 {
		str = "FF" + str
	}
	if len(str) != 8 {
		return nil, errorf(ErrWorkbook, "invalid color %q", str)
	}
	argb, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return nil, errorf(ErrWorkbook, "invalid color %q", str)
	}
	color := grid.Color{
		Alpha: uint8(argb >> 24),
		Red:   uint8(argb >> 16),
		Green: uint8(argb >> 8),
		Blue:  uint8(argb),
	}
	return &color, nil
}
