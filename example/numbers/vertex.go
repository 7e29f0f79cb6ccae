// Package numbers is a small self-contained adapter over the integers,
// grounded directly on go.appointy.com/graphwalk's own
// original_source/trustfall_core/src/numbers_interpreter.rs: every
// integer is classified as Neither (zero and one), Prime, or Composite,
// and exposes value/name/vowelsInName properties plus
// predecessor/successor/multiple/primeFactor edges.
package numbers

// Kind distinguishes the three vertex subtypes a number classifies into.
type Kind int

const (
	KindNeither Kind = iota
	KindPrime
	KindComposite
)

// TypeName returns the schema vertex type name for k.
func (k Kind) TypeName() string {
	switch k {
	case KindPrime:
		return "Prime"
	case KindComposite:
		return "Composite"
	default:
		return "Neither"
	}
}

// Vertex is one classified integer: its value, its Kind, and — for
// Composite numbers only — its prime factors.
type Vertex struct {
	Kind    Kind
	Value   int64
	Factors []int64
}
