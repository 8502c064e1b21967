package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/xlgrid/value"
)

const (
	tokLiteral = iota
	tokYearLong
	tokYearShort
	tokMonth
	tokMonthPadded
	tokMonthShort
	tokMonthLong
	tokMinute
	tokMinutePadded
	tokDay
	tokDayPadded
	tokDayShort
	tokDayLong
	tokHour
	tokHourPadded
	tokSecond
	tokSecondPadded
	tokMeridiem
)

type dateToken struct {
	kind int
	lit  byte
}

// longest patterns first so greedy matching picks mmmm over mm
var datePatterns = []struct {
	pattern string
	kind    int
}{
	{"am/pm", tokMeridiem},
	{"yyyy", tokYearLong},
	{"mmmm", tokMonthLong},
	{"dddd", tokDayLong},
	{"a/p", tokMeridiem},
	{"mmm", tokMonthShort},
	{"ddd", tokDayShort},
	{"yy", tokYearShort},
	{"mm", tokMonthPadded},
	{"dd", tokDayPadded},
	{"hh", tokHourPadded},
	{"ss", tokSecondPadded},
	{"m", tokMonth},
	{"d", tokDay},
	{"h", tokHour},
	{"s", tokSecond},
}

type dateFormatter struct {
	tokens []dateToken
	twelve bool
}

// ParseDate builds a formatter from a cleaned date format code. The m
// placeholder is ambiguous between month and minute: it means minute
// when the nearest placeholder before it is an hour or the nearest one
// after it is a second.
func ParseDate(pattern string) (Formatter, error) {
	var df dateFormatter
	lower := strings.ToLower(pattern)
	for i := 0; i < len(lower); {
		var matched bool
		for _, p := range datePatterns {
			if strings.HasPrefix(lower[i:], p.pattern) {
				df.tokens = append(df.tokens, dateToken{kind: p.kind})
				i += len(p.pattern)
				matched = true
				break
			}
		}
		if !matched {
			df.tokens = append(df.tokens, dateToken{kind: tokLiteral, lit: pattern[i]})
			i++
		}
	}
	df.fixMinutes()
	for _, tok := range df.tokens {
		if tok.kind == tokMeridiem {
			df.twelve = true
		}
	}
	return df, nil
}

func (df dateFormatter) fixMinutes() {
	for i, tok := range df.tokens {
		if tok.kind != tokMonth && tok.kind != tokMonthPadded {
			continue
		}
		if prev := df.nearest(i, -1); prev == tokHour || prev == tokHourPadded {
			df.tokens[i].kind = minuteKind(tok.kind)
			continue
		}
		if next := df.nearest(i, 1); next == tokSecond || next == tokSecondPadded {
			df.tokens[i].kind = minuteKind(tok.kind)
		}
	}
}

func (df dateFormatter) nearest(from, step int) int {
	for i := from + step; i >= 0 && i < len(df.tokens); i += step {
		if k := df.tokens[i].kind; k != tokLiteral {
			return k
		}
	}
	return tokLiteral
}

func minuteKind(monthKind int) int {
	if monthKind == tokMonthPadded {
		return tokMinutePadded
	}
	return tokMinute
}

func (df dateFormatter) Format(v value.Value) (string, error) {
	serial, err := asFloat(v)
	if err != nil {
		return "", err
	}
	when, err := SerialTime(serial)
	if err != nil {
		return "", err
	}
	var str strings.Builder
	for _, tok := range df.tokens {
		df.writeToken(&str, tok, when)
	}
	return str.String(), nil
}

func (df dateFormatter) writeToken(str *strings.Builder, tok dateToken, when time.Time) {
	switch tok.kind {
	case tokLiteral:
		str.WriteByte(tok.lit)
	case tokYearLong:
		fmt.Fprintf(str, "%04d", when.Year())
	case tokYearShort:
		fmt.Fprintf(str, "%02d", when.Year()%100)
	case tokMonth:
		str.WriteString(strconv.Itoa(int(when.Month())))
	case tokMonthPadded:
		fmt.Fprintf(str, "%02d", int(when.Month()))
	case tokMonthShort:
		str.WriteString(when.Month().String()[:3])
	case tokMonthLong:
		str.WriteString(when.Month().String())
	case tokDay:
		str.WriteString(strconv.Itoa(when.Day()))
	case tokDayPadded:
		fmt.Fprintf(str, "%02d", when.Day())
	case tokDayShort:
		str.WriteString(when.Weekday().String()[:3])
	case tokDayLong:
		str.WriteString(when.Weekday().String())
	case tokHour:
		str.WriteString(strconv.Itoa(df.hour(when)))
	case tokHourPadded:
		fmt.Fprintf(str, "%02d", df.hour(when))
	case tokMinute:
		str.WriteString(strconv.Itoa(when.Minute()))
	case tokMinutePadded:
		fmt.Fprintf(str, "%02d", when.Minute())
	case tokSecond:
		str.WriteString(strconv.Itoa(when.Second()))
	case tokSecondPadded:
		fmt.Fprintf(str, "%02d", when.Second())
	case tokMeridiem:
		if when.Hour() < 12 {
			str.WriteString("AM")
		} else {
			str.WriteString("PM")
		}
	}
}

func (df dateFormatter) hour(when time.Time) int {
	h := when.Hour()
	if df.twelve {
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	return h
}
