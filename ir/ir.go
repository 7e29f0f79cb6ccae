// Package ir implements the query intermediate representation the
// interpreter executes: components, vertices, edges, folds, filters,
// transforms, and the IndexedQuery that validates and indexes them
// against a schema. The core never parses query text (spec §1); values
// of these types are built programmatically by an (out-of-scope)
// frontend, or directly by tests and the example/frontend package.
//
// Grounded on go.appointy.com/graphwalk's teacher package `graphql`
// (graphql.Selection/SelectionSet/Directive, graphql/types.go) as the
// nearest analog of a parsed-but-not-executed query shape, generalized
// per spec §3 into vid/eid-indexed vertices and edges.
package ir

import "go.appointy.com/graphwalk/value"

// Vid uniquely identifies a vertex within a query.
type Vid int

// Eid uniquely identifies an edge (regular, optional, recursive, or
// fold) within a query.
type Eid int

// ParamValue is an edge parameter binding: either a literal value fixed
// at query-construction time, or a reference to a declared variable
// resolved at execution time.
type ParamValue struct {
	Variable string // non-empty when this parameter is variable-bound
	Literal  value.Value
}

// IsVariable reports whether this parameter is bound to a variable
// rather than carrying a literal value.
func (p ParamValue) IsVariable() bool { return p.Variable != "" }

// FieldRef is the left operand of a Filter, or the source of an Output:
// a local field, a field on a previously-bound (context) vertex, a
// fold's aggregate value, or any of those wrapped in a transform chain.
type FieldRef interface {
	isFieldRef()
}

// Local references a field on the vertex currently being visited.
type Local struct {
	Name string
}

func (Local) isFieldRef() {}

// Context references a field on a vertex bound earlier in the query
// (identified by Vid), rather than the vertex currently being visited.
type Context struct {
	Vid  Vid
	Name string
}

func (Context) isFieldRef() {}

// FoldAggregate references the scalar aggregate value a Fold's own
// Transforms chain computes (e.g. the surviving-subcontext count).
type FoldAggregate struct {
	Eid Eid
}

func (FoldAggregate) isFieldRef() {}

// Transformed wraps another FieldRef in a chain of transforms applied in
// order, left to right.
type Transformed struct {
	Inner FieldRef
	Chain []Transform
}

func (Transformed) isFieldRef() {}

// Operand is the right operand of a Filter, or the operand of an Add
// transform: a query variable, or a tag captured at an earlier vertex.
type Operand interface {
	isOperand()
}

// Variable references a query variable by name.
type Variable struct {
	Name string
}

func (Variable) isOperand() {}

// Tag references a field captured via @tag at an earlier vertex,
// optionally passed through its own transform chain before use.
type Tag struct {
	Vid   Vid
	Name  string
	Chain []Transform
}

func (Tag) isOperand() {}

// TagDecl declares that a vertex's field is captured for downstream
// filters under the given tag name.
type TagDecl struct {
	Name  string
	Field string
}

// Output declares that a field's value is projected into the result row
// under the given name.
type Output struct {
	Name  string
	Field FieldRef
}

// Vertex is one typed node in a component: its filters, the outputs and
// tags rooted at it.
type Vertex struct {
	Vid         Vid
	TypeName    string
	CoercedFrom string // non-empty if this vertex is reached via a type coercion
	Filters     []Filter
	Outputs     []Output
	Tags        []TagDecl
}

// Recursion describes a bounded recursive expansion of an edge.
type Recursion struct {
	Depth int
}

// Edge connects two vertices within the same component. Optional and
// Recursion are mutually exclusive with being a Fold (folds are modeled
// separately, see Fold).
type Edge struct {
	Eid        Eid
	From, To   Vid
	Name       string
	Parameters map[string]ParamValue
	Optional   bool
	Recursion  *Recursion
}

// Fold aggregates a sub-component's results into the parent row: its own
// nested outputs (wrapped in one list layer per spec §3 invariant 7),
// post-filters over the fold's aggregate value, and an optional
// transform chain + output name for the aggregate itself (e.g. a
// directly-projected `count`).
type Fold struct {
	Eid         Eid
	From, To    Vid
	Name        string
	Parameters  map[string]ParamValue
	Component   *Component
	PostFilters []Filter
	Transforms  []Transform
	OutputName  string // "" if the fold has no directly-projected aggregate
}

// Component is a root vertex plus the vertices, edges, and folds
// belonging to it. Folds nest: each Fold's Component is rooted at the
// fold's destination vertex.
//
// RootParameters binds the starting edge's own parameters (e.g. a
// "Number" entry point's min/max bounds) the same way an Edge's
// Parameters do; it is only meaningful on the outermost (query) root —
// a fold's sub-component root has no starting edge of its own, since it
// is reached by expanding the fold's edge instead.
type Component struct {
	RootVid        Vid
	RootParameters map[string]ParamValue
	Vertices       map[Vid]*Vertex
	Edges          []*Edge
	Folds          []*Fold
}

// Query is a complete, not-yet-indexed intermediate representation: the
// root component plus the top-level declared variable types.
type Query struct {
	Root      *Component
	Variables map[string]value.Type
}
