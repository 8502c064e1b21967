package format

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/midbel/xlgrid/value"
)

type numberFormatter struct {
	minInt int
	maxInt int
	minDec int
	maxDec int

	hasGrouping bool
	percent     bool

	prefix string
	suffix string
}

// ParseNumber builds a formatter from the digit placeholders of a
// cleaned numeric format code. Placeholders are 0 and #, an optional
// comma enables thousand grouping, a trailing percent scales by 100.
// Text around the digit run is kept verbatim.
func ParseNumber(pattern string) (Formatter, error) {
	var (
		nf    numberFormatter
		first = strings.IndexAny(pattern, "0#")
	)
	if first < 0 {
		return nil, fmt.Errorf("no digit placeholder in %q", pattern)
	}
	last := strings.LastIndexAny(pattern, "0#")
	nf.prefix = pattern[:first]
	nf.suffix = pattern[last+1:]

	if ix := strings.IndexByte(nf.suffix, '%'); ix >= 0 {
		nf.percent = true
	}
	if strings.ContainsAny(pattern[first:last+1], "E") || strings.ContainsRune(pattern, '?') {
		return nil, fmt.Errorf("unsupported placeholder in %q", pattern)
	}

	digits, frac, hasDecimal := strings.Cut(pattern[first:last+1], ".")
	zeroes := true
	for i := 0; i < len(frac); i++ {
		if zeroes && frac[i] == '0' {
			nf.minDec++
			nf.maxDec++
		} else if frac[i] == '#' {
			zeroes = false
			nf.maxDec++
		} else {
			return nil, fmt.Errorf("unexpected character in fractional part of %q", pattern)
		}
	}
	if hasDecimal && nf.maxDec == 0 {
		return nil, fmt.Errorf("empty fractional part in %q", pattern)
	}
	zeroes = true
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] == ',' {
			nf.hasGrouping = true
			continue
		}
		if zeroes && digits[i] == '0' {
			nf.minInt++
			nf.maxInt++
		} else if digits[i] == '#' {
			zeroes = false
			nf.maxInt++
		} else {
			return nil, fmt.Errorf("unexpected character in integral part of %q", pattern)
		}
	}
	return nf, nil
}

func (nf numberFormatter) Format(v value.Value) (string, error) {
	val, err := asFloat(v)
	if err != nil {
		return "", err
	}
	if nf.percent {
		val *= 100
	}
	var (
		scale   = math.Pow10(nf.maxDec)
		rounded = math.Round(val*scale) / scale
		signed  = math.Signbit(val)
		str     = strconv.FormatFloat(rounded, 'f', nf.maxDec, 64)
	)
	left, right, _ := strings.Cut(str, ".")
	if signed {
		left = left[1:]
	}

	fractional := []byte(right)
	for len(fractional) > nf.minDec && fractional[len(fractional)-1] == '0' {
		fractional = fractional[:len(fractional)-1]
	}

	integral := []byte(left)
	if z := len(integral); z < nf.minInt {
		tmp := make([]byte, nf.minInt)
		for i := range tmp {
			tmp[i] = '0'
		}
		copy(tmp[nf.minInt-z:], integral)
		integral = tmp
	}
	if nf.hasGrouping {
		integral = group(integral)
	}

	var all strings.Builder
	all.WriteString(nf.prefix)
	if signed {
		all.WriteByte('-')
	}
	all.Write(integral)
	if len(fractional) > 0 {
		all.WriteByte('.')
		all.Write(fractional)
	}
	all.WriteString(nf.suffix)
	return all.String(), nil
}

func group(digits []byte) []byte {
	slices.Reverse(digits)
	var tmp []byte
	for i := 0; i < len(digits); i += 3 {
		if i > 0 {
			tmp = append(tmp, ',')
		}
		end := min(i+3, len(digits))
		tmp = append(tmp, digits[i:end]...)
	}
	slices.Reverse(tmp)
	return tmp
}
