package ir

import (
	"fmt"

	"go.appointy.com/graphwalk/transform"
	"go.appointy.com/graphwalk/value"
)

// FilterOp names one filter operation (spec §4.4).
type FilterOp int

const (
	IsNull FilterOp = iota
	IsNotNull
	Equals
	NotEquals
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
	Contains
	NotContains
	OneOf
	NotOneOf
	HasPrefix
	NotHasPrefix
	HasSuffix
	NotHasSuffix
	HasSubstring
	NotHasSubstring
	Regex
	NotRegex
)

func (op FilterOp) String() string {
	names := [...]string{
		"is_null", "is_not_null", "=", "!=", "<", "<=", ">", ">=",
		"contains", "not_contains", "one_of", "not_one_of",
		"has_prefix", "not_has_prefix", "has_suffix", "not_has_suffix",
		"has_substring", "not_has_substring", "regex", "not_regex",
	}
	if int(op) < 0 || int(op) >= len(names) {
		return "unknown"
	}
	return names[op]
}

// IsUnary reports whether op takes no right operand.
func (op FilterOp) IsUnary() bool {
	return op == IsNull || op == IsNotNull
}

// Filter is one operation + left operand (+ optional right operand)
// attached to a vertex or a fold's post-filter list.
type Filter struct {
	Op    FilterOp
	Left  FieldRef
	Right Operand // nil when Op.IsUnary()
}

// Transform is one step of a transform chain: a Kind plus, for Add, the
// right-hand operand to add.
type Transform struct {
	Kind    transform.Kind
	Operand Operand // only meaningful when Kind == transform.Add
}

// VariableType infers the expected declared type for a filter's right
// operand, given the resolved type of its left operand, per spec §4.4:
//   - equality: variable type == left type
//   - ordering: left type with top-level nullability forced non-null
//   - contains/not_contains: left's element type (left must be a list)
//   - one_of/not_one_of: a list of left's type
//   - string ops: non-null String
//   - nullability ops: no variable (ok=false)
func VariableType(op FilterOp, left value.Type) (expected value.Type, ok bool, err error) {
	switch op {
	case IsNull, IsNotNull:
		return value.Type{}, false, nil

	case Equals, NotEquals:
		return left, true, nil

	case LessThan, LessOrEqual, GreaterThan, GreaterOrEqual:
		return left.WithNullable(false), true, nil

	case Contains, NotContains:
		if !left.IsList() {
			return value.Type{}, false, fmt.Errorf("ir: %s requires a list-typed field, got %s", op, left)
		}
		return left.Peel(), true, nil

	case OneOf, NotOneOf:
		return value.ListOf(left, false), true, nil

	case HasPrefix, NotHasPrefix, HasSuffix, NotHasSuffix, HasSubstring, NotHasSubstring, Regex, NotRegex:
		return value.Named("String", false), true, nil

	default:
		return value.Type{}, false, fmt.Errorf("ir: unknown filter op %d", op)
	}
}

// IsOrderable reports whether values of type t may be compared with <,
// <=, >, >=: integers, floats, strings, and lists of orderable types.
func IsOrderable(t value.Type) bool {
	if t.IsList() {
		return IsOrderable(t.Peel())
	}
	switch t.Base() {
	case "Int", "UInt", "Float":
		return true
	case "String", "ID":
		return true
	default:
		return false
	}
}
