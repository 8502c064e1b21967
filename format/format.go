// Package format renders cell values according to spreadsheet number
// format codes.
package format

import (
	"fmt"
	"strings"

	"github.com/midbel/xlgrid/value"
)

const generalCode = "general"

type Formatter interface {
	Format(value.Value) (string, error)
}

// ForCode returns the formatter matching the given format code. Codes
// that cannot be parsed degrade to the general formatter rather than
// failing, since files in the wild carry all sorts of vendor codes.
func ForCode(code string) Formatter {
	clean := Clean(code)
	if clean == "" || strings.ToLower(clean) == generalCode {
		return General()
	}
	if clean == "@" {
		return Text()
	}
	if isDateCode(clean) {
		f, err := ParseDate(clean)
		if err != nil {
			return General()
		}
		return f
	}
	f, err := ParseNumber(clean)
	if err != nil {
		return General()
	}
	return f
}

// Clean reduces a format code to its first section and strips the
// annotations that do not affect the rendered text: color and locale
// blocks in square brackets, the skip and repeat markers, quoting and
// escapes.
func Clean(code string) string {
	var (
		str strings.Builder
		n   = len(code)
	)
	for i := 0; i < n; i++ {
		switch c := code[i]; c {
		case ';':
			return str.String()
		case '[':
			for i < n && code[i] != ']' {
				i++
			}
		case '"':
			i++
			for i < n && code[i] != '"' {
				str.WriteByte(code[i])
				i++
			}
		case '\\':
			i++
			if i < n {
				str.WriteByte(code[i])
			}
		case '_', '*':
			i++
		default:
			str.WriteByte(c)
		}
	}
	return str.String()
}

func isDateCode(clean string) bool {
	if strings.ContainsAny(clean, "#?0") {
		return false
	}
	return strings.ContainsAny(strings.ToLower(clean), "ymdhs")
}

type generalFormatter struct{}

// General returns the formatter used when no format code applies: the
// value renders as its scalar text.
func General() Formatter {
	return generalFormatter{}
}

func (generalFormatter) Format(v value.Value) (string, error) {
	return unwrap(v).String(), nil
}

type textFormatter struct{}

// Text returns the formatter for the "@" code.
func Text() Formatter {
	return textFormatter{}
}

func (textFormatter) Format(v value.Value) (string, error) {
	return unwrap(v).String(), nil
}

// Display renders a value through the formatter of the given code,
// falling back to the raw scalar text when the code cannot handle the
// value.
func Display(v value.Value, code string) string {
	str, err := ForCode(code).Format(v)
	if err != nil {
		return v.String()
	}
	return str
}

func unwrap(v value.Value) value.Value {
	if c, ok := v.(value.Cached); ok {
		return c.Result
	}
	return v
}

func asFloat(v value.Value) (float64, error) {
	f, ok := unwrap(v).(value.Float)
	if !ok {
		return 0, fmt.Errorf("value is not a number")
	}
	return float64(f), nil
}
