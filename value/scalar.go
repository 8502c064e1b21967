package value

import (
	"strconv"
)

type Blank struct{}

func Empty() Value {
	return Blank{}
}

func (Blank) Type() string {
	return TypeBlank
}

func (Blank) String() string {
	return ""
}

func (Blank) Scalar() any {
	return nil
}

type Float float64

func (Float) Type() string {
	return TypeNumber
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f Float) Scalar() any {
	return float64(f)
}

type Boolean bool

func (Boolean) Type() string {
	return TypeBool
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (b Boolean) Scalar() any {
	return bool(b)
}

type Text string

func (Text) Type() string {
	return TypeText
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Scalar() any {
	return string(t)
}

// Cached wraps the last value a spreadsheet application stored for a
// formula cell. The formula itself is never evaluated again.
type Cached struct {
	Result Value
}

func CachedResult(v Value) Value {
	if v == nil {
		v = Empty()
	}
	return Cached{Result: v}
}

func (Cached) Type() string {
	return TypeCached
}

func (c Cached) String() string {
	return c.Result.String()
}

func (c Cached) Scalar() any {
	return c.Result.Scalar()
}

// Error holds an error literal stored in a cell, eg #DIV/0! or #N/A.
type Error string

func (Error) Type() string {
	return TypeError
}

func (e Error) String() string {
	return string(e)
}

func (e Error) Scalar() any {
	return string(e)
}
