// Package transform implements the small set of value transforms the
// query engine supports: count (fold-aggregate length), length (of any
// list), absolute value, and saturating add. Grounded on spec §4.4 and
// cross-checked against original_source/trustfall_core/src/interpreter/
// transformation.rs for the exact saturating-arithmetic semantics.
package transform

import (
	"fmt"
	"math"

	"go.appointy.com/graphwalk/value"
)

// Kind names one transform operation.
type Kind int

const (
	Count Kind = iota
	Length
	AbsoluteValue
	Add
)

func (k Kind) String() string {
	switch k {
	case Count:
		return "count"
	case Length:
		return "len"
	case AbsoluteValue:
		return "abs"
	case Add:
		return "add"
	default:
		return "unknown"
	}
}

// ParseKind maps the @transform(op: "...") directive argument to a Kind.
func ParseKind(op string) (Kind, error) {
	switch op {
	case "count":
		return Count, nil
	case "len":
		return Length, nil
	case "abs":
		return AbsoluteValue, nil
	case "add":
		return Add, nil
	default:
		return 0, fmt.Errorf("transform: unknown op %q", op)
	}
}

// Apply evaluates one transform step against an already-computed input
// value. For Add, operand is the right-hand value (resolved by the
// caller from a variable or tag); it is ignored for the other kinds.
//
// Count and Length are null-propagating: a null list yields null. Count
// is only meaningful as the first step of a fold's transform chain,
// where the caller passes the subcontext count directly rather than
// calling Apply(Count, ...) on a value (see interpreter/fold.go); Apply
// still implements it for completeness and for chains that explicitly
// re-count a list-typed field.
func Apply(k Kind, input value.Value, operand value.Value) (value.Value, error) {
	switch k {
	case Count, Length:
		if input.IsNull() {
			return value.Null(), nil
		}
		list, ok := input.AsList()
		if !ok {
			return value.Value{}, fmt.Errorf("transform: %s requires a list input, got %s", k, input.Kind())
		}
		return value.Uint64(uint64(len(list))), nil

	case AbsoluteValue:
		if input.IsNull() {
			return value.Null(), nil
		}
		switch input.Kind() {
		case value.KindInt64:
			i, _ := input.AsInt64()
			return value.Uint64(absInt64(i)), nil
		case value.KindUint64:
			u, _ := input.AsUint64()
			return value.Uint64(u), nil
		case value.KindFloat64:
			f, _ := input.AsFloat64()
			return value.Float64(math.Abs(f)), nil
		default:
			return value.Value{}, fmt.Errorf("transform: abs requires a numeric input, got %s", input.Kind())
		}

	case Add:
		return add(input, operand)

	default:
		return value.Value{}, fmt.Errorf("transform: unknown kind %d", k)
	}
}

// absInt64 maps the full i64 domain, including math.MinInt64, to its
// unsigned magnitude without overflow: |MinInt64| == 2^63, which does
// not fit in an int64 but fits exactly in a uint64.
func absInt64(i int64) uint64 {
	if i >= 0 {
		return uint64(i)
	}
	if i == math.MinInt64 {
		return uint64(math.MaxInt64) + 1
	}
	return uint64(-i)
}

// add implements saturating addition with mixed-signedness handling: if
// the unsigned operand exceeds i64::MAX, or the signed operand is
// itself non-negative, the result is a saturating uint64 add; otherwise
// (the signed operand is negative and the unsigned operand fits the
// positive i64 range) the result is a saturating int64 add of the
// signed value with the unsigned operand's magnitude.
func add(a, b value.Value) (value.Value, error) {
	if a.IsNull() || b.IsNull() {
		return value.Null(), nil
	}

	switch a.Kind() {
	case value.KindUint64:
		au, _ := a.AsUint64()
		return addFromUint(au, b)
	case value.KindInt64:
		ai, _ := a.AsInt64()
		return addFromInt(ai, b)
	case value.KindFloat64:
		af, _ := a.AsFloat64()
		bf, ok := numericAsFloat(b)
		if !ok {
			return value.Value{}, fmt.Errorf("transform: add requires numeric operands")
		}
		return value.Float64(saturateFloat(af + bf)), nil
	default:
		return value.Value{}, fmt.Errorf("transform: add requires a numeric input, got %s", a.Kind())
	}
}

func numericAsFloat(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		return f, true
	case value.KindInt64:
		i, _ := v.AsInt64()
		return float64(i), true
	case value.KindUint64:
		u, _ := v.AsUint64()
		return float64(u), true
	default:
		return 0, false
	}
}

func saturateFloat(f float64) float64 {
	if math.IsInf(f, 1) {
		return math.MaxFloat64
	}
	if math.IsInf(f, -1) {
		return -math.MaxFloat64
	}
	return f
}

func addFromUint(au uint64, b value.Value) (value.Value, error) {
	switch b.Kind() {
	case value.KindUint64:
		bu, _ := b.AsUint64()
		return value.Uint64(saturatingAddUint64(au, bu)), nil
	case value.KindInt64:
		bi, _ := b.AsInt64()
		return addSignedUnsigned(bi, au), nil
	case value.KindFloat64:
		bf, _ := b.AsFloat64()
		return value.Float64(saturateFloat(float64(au) + bf)), nil
	default:
		return value.Value{}, fmt.Errorf("transform: add requires numeric operands")
	}
}

func addFromInt(ai int64, b value.Value) (value.Value, error) {
	switch b.Kind() {
	case value.KindInt64:
		bi, _ := b.AsInt64()
		return value.Int64(saturatingAddInt64(ai, bi)), nil
	case value.KindUint64:
		bu, _ := b.AsUint64()
		return addSignedUnsigned(ai, bu), nil
	case value.KindFloat64:
		bf, _ := b.AsFloat64()
		return value.Float64(saturateFloat(float64(ai) + bf)), nil
	default:
		return value.Value{}, fmt.Errorf("transform: add requires numeric operands")
	}
}

// addSignedUnsigned adds a signed and an unsigned operand, saturating at
// the bounds of whichever width the result lands in. Grounded on
// original_source/trustfall_core/src/interpreter/transformation.rs's
// add_unlike_signedness_integers: the uint64 path is taken whenever
// unsigned exceeds i64::MAX or signed is itself non-negative; the int64
// path is taken only when signed is negative and unsigned fits the
// positive i64 range.
func addSignedUnsigned(signed int64, unsigned uint64) value.Value {
	if unsigned > uint64(math.MaxInt64) || signed >= 0 {
		if signed >= 0 {
			return value.Uint64(saturatingAddUint64(unsigned, uint64(signed)))
		}
		mag := absInt64(signed)
		if mag > unsigned {
			return value.Uint64(0)
		}
		return value.Uint64(unsigned - mag)
	}
	return value.Int64(saturatingAddInt64(signed, int64(unsigned)))
}

func saturatingAddUint64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

func saturatingAddInt64(a, b int64) int64 {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt64
	}
	if b < 0 && sum > a {
		return math.MinInt64
	}
	return sum
}

// ResultKind reports the value.Kind a transform chain started from an
// input of kind `input` would produce, used by the IR indexer to
// type-check filters and outputs that reference a transformed field.
// Count always seeds the chain as Uint64 regardless of input.
func ResultKind(chain []Kind, input value.Kind) value.Kind {
	cur := input
	for _, k := range chain {
		switch k {
		case Count, Length:
			cur = value.KindUint64
		case AbsoluteValue:
			if cur == value.KindInt64 {
				cur = value.KindUint64
			}
			// float/uint64 stay as-is.
		case Add:
			if cur == value.KindInt64 {
				cur = value.KindInt64
			}
			// uint64/float stay as-is; exact result kind is data-dependent
			// between int64/uint64 but Add never changes float<->int.
		}
	}
	return cur
}
