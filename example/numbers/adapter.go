package numbers

import (
	"iter"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/value"
)

// Adapter classifies every integer in range on demand, growing its own
// prime sieve lazily (numbers_interpreter.rs's NumbersAdapter, minus the
// fixed Zero/One/Two/Four singleton starting edges, which the root-vid
// naming convention here doesn't need: every query starts from the
// "Number" interface and narrows with min/max).
type Adapter struct{}

var _ adapter.Basic[Vertex] = Adapter{}

func (Adapter) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		if edgeName != "Number" {
			return
		}
		min := int64(0)
		if m, ok := parameters["min"]; ok {
			if v, ok := m.AsInt64(); ok {
				min = v
			}
		}
		max, ok := parameters["max"]
		maxVal, okInt := max.AsInt64()
		if !ok || !okInt {
			return
		}

		primes := newPrimeSet()
		for n := min; n <= maxVal; n++ {
			if !yield(primes.classify(n)) {
				return
			}
		}
	}
}

func (Adapter) ResolveProperty(v Vertex, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	switch propertyName {
	case "value":
		return value.Int64(v.Value)
	case "name":
		if n, ok := name(v.Value); ok {
			return value.String(n)
		}
		return value.Null()
	case "vowelsInName":
		vowels, ok := vowelsInName(v.Value)
		if !ok {
			return value.Null()
		}
		vals := make([]value.Value, len(vowels))
		for i, vv := range vowels {
			vals[i] = value.String(vv)
		}
		return value.List(vals)
	default:
		return value.Null()
	}
}

func (Adapter) ResolveNeighbors(v Vertex, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		primes := newPrimeSet()
		switch edgeName {
		case "predecessor":
			if v.Value > 0 {
				yield(primes.classify(v.Value - 1))
			}
		case "successor":
			yield(primes.classify(v.Value + 1))
		case "multiple":
			max, ok := parameters["max"]
			maxVal, okInt := max.AsInt64()
			if !ok || !okInt {
				return
			}
			start := int64(1)
			if v.Kind == KindPrime {
				start = 2
			}
			if v.Kind == KindNeither {
				return
			}
			for mult := start; mult <= maxVal; mult++ {
				if !yield(primes.classify(v.Value * mult)) {
					return
				}
			}
		case "primeFactor":
			if v.Kind != KindComposite {
				return
			}
			for _, f := range v.Factors {
				if !yield(primes.classify(f)) {
					return
				}
			}
		}
	}
}

func (Adapter) ResolveCoercion(v Vertex, typeName, coerceToType string, info hints.ResolveInfo) bool {
	return v.Kind.TypeName() == coerceToType
}
