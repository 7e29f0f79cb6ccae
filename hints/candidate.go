// Package hints implements the candidate-value hint machinery the
// interpreter derives from a query's filters and hands to the adapter
// as a purely advisory optimization signal (spec §4.5): the interpreter
// never filters by these hints itself, so an adapter that ignores them
// entirely is still correct.
//
// Grounded on original_source/trustfall_core/src/interpreter/hints/
// {candidates,constraint,dynamic,vertex_info,filters}.rs; no package in
// the retrieved Go corpus implements anything like it, so this is new
// domain logic built directly from the Rust reference rather than
// adapted from a teacher file.
package hints

import "go.appointy.com/graphwalk/value"

// Kind tags the shape of a Candidate.
type Kind int

const (
	// Impossible means the interpreter has statically proven no value
	// can satisfy the query's filters at this vertex/property.
	Impossible Kind = iota
	// Single means exactly one value is allowed.
	Single
	// Multiple means a known, finite set of values is allowed.
	Multiple
	// RangeKind means an orderable interval of values is allowed.
	RangeKind
	// All means no static constraint is known.
	All
)

// Bound is one endpoint of a Range: a value plus whether it is included.
type Bound struct {
	Value     value.Value
	Inclusive bool
}

// Range is an interval over an orderable value domain. A nil Start or
// End means that side is unbounded.
type Range struct {
	Start *Bound
	End   *Bound
}

// FullNonNull returns the range of every non-null value: unbounded on
// both ends. Used for the candidate contributed by `!= null`.
func FullNonNull() Range { return Range{} }

// Candidate is the over-approximation of the values a property could
// take on a given vertex, derived from the filters applied to it.
type Candidate struct {
	kind     Kind
	single   value.Value
	multiple []value.Value
	rng      Range
}

func ImpossibleCandidate() Candidate { return Candidate{kind: Impossible} }
func AllCandidate() Candidate        { return Candidate{kind: All} }

func SingleCandidate(v value.Value) Candidate {
	return Candidate{kind: Single, single: v}
}

func MultipleCandidate(vs []value.Value) Candidate {
	cp := make([]value.Value, len(vs))
	copy(cp, vs)
	return Candidate{kind: Multiple, multiple: cp}
}

func RangeCandidate(r Range) Candidate {
	return Candidate{kind: RangeKind, rng: r}
}

func (c Candidate) Kind() Kind { return c.kind }

// SingleValue returns the candidate's sole value; ok is false unless Kind() == Single.
func (c Candidate) SingleValue() (value.Value, bool) {
	if c.kind != Single {
		return value.Value{}, false
	}
	return c.single, true
}

// Values returns the candidate's finite set of values; ok is false
// unless Kind() == Multiple.
func (c Candidate) Values() ([]value.Value, bool) {
	if c.kind != Multiple {
		return nil, false
	}
	return c.multiple, true
}

// RangeBounds returns the candidate's interval; ok is false unless
// Kind() == RangeKind.
func (c Candidate) RangeBounds() (Range, bool) {
	if c.kind != RangeKind {
		return Range{}, false
	}
	return c.rng, true
}

func containsValue(vs []value.Value, v value.Value) bool {
	for _, x := range vs {
		if value.Equal(x, v) {
			return true
		}
	}
	return false
}

func intersectSlices(a, b []value.Value) []value.Value {
	var out []value.Value
	for _, v := range a {
		if containsValue(b, v) {
			out = append(out, v)
		}
	}
	return out
}

func inRange(r Range, v value.Value) bool {
	if v.IsNull() {
		return false // a Range only ever covers non-null values
	}
	if r.Start != nil {
		c := value.Compare(v, r.Start.Value)
		if c < 0 || (c == 0 && !r.Start.Inclusive) {
			return false
		}
	}
	if r.End != nil {
		c := value.Compare(v, r.End.Value)
		if c > 0 || (c == 0 && !r.End.Inclusive) {
			return false
		}
	}
	return true
}

// tighterStart returns whichever start bound is more restrictive (higher
// value, or equal value but exclusive).
func tighterStart(a, b *Bound) *Bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	c := value.Compare(a.Value, b.Value)
	switch {
	case c > 0:
		return a
	case c < 0:
		return b
	default:
		if !a.Inclusive {
			return a
		}
		return b
	}
}

// tighterEnd returns whichever end bound is more restrictive (lower
// value, or equal value but exclusive).
func tighterEnd(a, b *Bound) *Bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	c := value.Compare(a.Value, b.Value)
	switch {
	case c < 0:
		return a
	case c > 0:
		return b
	default:
		if !a.Inclusive {
			return a
		}
		return b
	}
}

func rangeIsEmpty(r Range) bool {
	if r.Start == nil || r.End == nil {
		return false
	}
	c := value.Compare(r.Start.Value, r.End.Value)
	if c > 0 {
		return true
	}
	if c == 0 && !(r.Start.Inclusive && r.End.Inclusive) {
		return true
	}
	return false
}

// Intersect combines two independently-derived candidates for the same
// property into their set intersection, per spec §4.5: folding every
// filter whose right operand is a variable produces one candidate each,
// and Intersect combines them pairwise (seeded from All).
func Intersect(a, b Candidate) Candidate {
	switch {
	case a.kind == Impossible || b.kind == Impossible:
		return ImpossibleCandidate()
	case a.kind == All:
		return b
	case b.kind == All:
		return a
	}

	switch a.kind {
	case Single:
		switch b.kind {
		case Single:
			if value.Equal(a.single, b.single) {
				return a
			}
			return ImpossibleCandidate()
		case Multiple:
			if containsValue(b.multiple, a.single) {
				return a
			}
			return ImpossibleCandidate()
		case RangeKind:
			if inRange(b.rng, a.single) {
				return a
			}
			return ImpossibleCandidate()
		}
	case Multiple:
		switch b.kind {
		case Single:
			return Intersect(b, a)
		case Multiple:
			merged := intersectSlices(a.multiple, b.multiple)
			return normalizeMultiple(merged)
		case RangeKind:
			var kept []value.Value
			for _, v := range a.multiple {
				if inRange(b.rng, v) {
					kept = append(kept, v)
				}
			}
			return normalizeMultiple(kept)
		}
	case RangeKind:
		switch b.kind {
		case Single, Multiple:
			return Intersect(b, a)
		case RangeKind:
			start := tighterStart(a.rng.Start, b.rng.Start)
			end := tighterEnd(a.rng.End, b.rng.End)
			r := Range{Start: start, End: end}
			if rangeIsEmpty(r) {
				return ImpossibleCandidate()
			}
			return RangeCandidate(r)
		}
	}
	return ImpossibleCandidate()
}

func normalizeMultiple(vs []value.Value) Candidate {
	if len(vs) == 0 {
		return ImpossibleCandidate()
	}
	if len(vs) == 1 {
		return SingleCandidate(vs[0])
	}
	return MultipleCandidate(vs)
}

// ExcludeValues removes values known to be directly disallowed by a
// post-processing filter (e.g. `!=` or `not_one_of` against a variable),
// per spec §4.5's "contributes an exclusion applied in post-processing"
// rule. Range candidates are narrowed only when the excluded value sits
// exactly on a boundary, matching the conservative Rust reference
// behavior.
func ExcludeValues(c Candidate, excluded []value.Value) Candidate {
	switch c.kind {
	case Single:
		if containsValue(excluded, c.single) {
			return ImpossibleCandidate()
		}
		return c
	case Multiple:
		var kept []value.Value
		for _, v := range c.multiple {
			if !containsValue(excluded, v) {
				kept = append(kept, v)
			}
		}
		return normalizeMultiple(kept)
	case RangeKind:
		r := c.rng
		if r.Start != nil && r.Start.Inclusive && containsValue(excluded, r.Start.Value) {
			r.Start = &Bound{Value: r.Start.Value, Inclusive: false}
		}
		if r.End != nil && r.End.Inclusive && containsValue(excluded, r.End.Value) {
			r.End = &Bound{Value: r.End.Value, Inclusive: false}
		}
		if rangeIsEmpty(r) {
			return ImpossibleCandidate()
		}
		return RangeCandidate(r)
	default:
		return c
	}
}
