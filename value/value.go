package value

import (
	"fmt"
)

const (
	TypeBlank  = "blank"
	TypeNumber = "number"
	TypeBool   = "boolean"
	TypeText   = "text"
	TypeCached = "cached"
	TypeError  = "error"
)

// Value is the closed set of scalar values a cell can carry. Consumers
// dispatch on Type which is one of the Type* constants of this package.
type Value interface {
	Type() string
	Scalar() any
	fmt.Stringer
}

// IsBlank reports if v carries no usable content.
func IsBlank(v Value) bool {
	if v == nil {
		return true
	}
	return v.Type() == TypeBlank
}
