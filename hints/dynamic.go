package hints

import "go.appointy.com/graphwalk/value"

// DynamicValue stands in for a Candidate when a filter's right operand
// is a @tag rather than a query variable: the concrete value can only be
// known once the interpreter resolves the tag for one specific
// DataContext, so ResolveInfo hands the adapter this token instead of a
// Candidate directly (spec §4.5). The interpreter binds resolve when it
// builds the hint, closing over the tag's nonexistent-optional and
// transform-chain handling so the adapter never needs to know about
// either.
type DynamicValue struct {
	Field    string
	Multiple bool
	resolve  func(value.Value) Candidate
}

// NewDynamicValue constructs a DynamicValue naming the tagged field and
// the resolver the interpreter uses to turn one concrete tag value into
// a Candidate (Multiple when the tag was captured inside a fold).
func NewDynamicValue(field string, multiple bool, resolve func(value.Value) Candidate) DynamicValue {
	return DynamicValue{Field: field, Multiple: multiple, resolve: resolve}
}

// Resolve turns a concrete per-context tag value into a Candidate.
func (d DynamicValue) Resolve(tagValue value.Value) Candidate {
	return d.resolve(tagValue)
}
