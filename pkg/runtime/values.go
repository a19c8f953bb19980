package runtime

import "strconv"

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is implemented by all runtime values.
type Value interface {
	Kind() Kind
}

// IntegerValue is a signed 64-bit integer.
type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind { return KindInteger }

// BoolValue is true or false.
type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

// Format renders v the way print shows it: integers in base 10, booleans as
// true or false.
func Format(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case nil:
		return "<nil>"
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// Equal reports whether two values have the same kind and payload.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case IntegerValue:
		bv, ok := b.(IntegerValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	}
	return false
}
