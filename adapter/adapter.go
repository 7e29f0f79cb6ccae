// Package adapter defines the contract a data source implements to be
// queryable by the interpreter (spec §4.2): a polymorphic interface over
// an adapter-chosen Vertex type, expressed with the standard library's
// iter.Seq/iter.Seq2 lazy sequences — the idiomatic Go counterpart to a
// boxed dyn Iterator with a lifetime.
//
// Grounded on go.appointy.com/graphwalk's teacher package `graphql`
// (graphql.Resolver/graphql.BatchResolver function types), generalized
// from a single-object resolver signature into the lazy, order-
// preserving, batch-tolerant four-operation contract the spec requires.
package adapter

import (
	"iter"

	"github.com/oklog/ulid"

	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/value"
)

// ID is a context's opaque, stable identity, assigned at birth by the
// interpreter so an adapter that reads ahead from the context sequence
// can still be matched back to its input (spec §5's batching-reentrancy
// requirement). Backed by a ulid.ULID: sortable and collision-resistant
// without requiring a shared counter, which matters once a frontend
// interleaves multiple queries against the same adapter.
type ID ulid.ULID

// String renders id in ulid's canonical base32 form.
func (id ID) String() string { return ulid.ULID(id).String() }

// Context is the minimal per-row state an adapter needs: its identity
// and its active vertex, or nil when the row was produced by a
// nonexistent optional scope and carries no vertex to resolve against.
type Context[Vertex any] struct {
	ID     ID
	Active *Vertex
}

// Adapter is the data-source contract the interpreter executes queries
// against. Every method takes a lazy input sequence and must produce
// output 1:1 with it, in the same order (spec §4.2).
type Adapter[Vertex any] interface {
	// ResolveStartingVertices produces the root sequence of vertices for
	// a query's entry edge.
	ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[Vertex]

	// ResolveProperty reads one property off each context's active
	// vertex. value is Null wherever Active is nil.
	ResolveProperty(contexts iter.Seq[Context[Vertex]], typeName, propertyName string, info hints.ResolveInfo) iter.Seq2[Context[Vertex], value.Value]

	// ResolveNeighbors expands one edge off each context's active
	// vertex. The neighbor sequence is empty wherever Active is nil.
	ResolveNeighbors(contexts iter.Seq[Context[Vertex]], typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq2[Context[Vertex], iter.Seq[Vertex]]

	// ResolveCoercion reports whether each context's active vertex may
	// be treated as coerceToType. The result is false wherever Active is
	// nil.
	ResolveCoercion(contexts iter.Seq[Context[Vertex]], typeName, coerceToType string, info hints.ResolveInfo) iter.Seq2[Context[Vertex], bool]
}
