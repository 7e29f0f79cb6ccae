package adapter

import (
	"iter"

	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/value"
)

// Basic is the convenience contract for adapters that only need to
// resolve one vertex at a time and don't care about batching (spec §4.2
// calls this out as the common case). FromBasic lifts it into a full
// Adapter.
//
// Grounded on trustfall_core/src/interpreter/basic_adapter.rs's
// BasicAdapter trait.
type Basic[Vertex any] interface {
	ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[Vertex]
	ResolveProperty(vertex Vertex, typeName, propertyName string, info hints.ResolveInfo) value.Value
	ResolveNeighbors(vertex Vertex, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[Vertex]
	ResolveCoercion(vertex Vertex, typeName, coerceToType string, info hints.ResolveInfo) bool
}

type basicWrapper[Vertex any] struct {
	b Basic[Vertex]
}

// FromBasic adapts a Basic adapter into the full batch-shaped Adapter
// interface by resolving each context's active vertex independently,
// preserving input order and emitting the null/empty/false defaults
// wherever a context's Active vertex is nil.
func FromBasic[Vertex any](b Basic[Vertex]) Adapter[Vertex] {
	return basicWrapper[Vertex]{b: b}
}

func (w basicWrapper[Vertex]) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[Vertex] {
	return w.b.ResolveStartingVertices(edgeName, parameters, info)
}

func (w basicWrapper[Vertex]) ResolveProperty(contexts iter.Seq[Context[Vertex]], typeName, propertyName string, info hints.ResolveInfo) iter.Seq2[Context[Vertex], value.Value] {
	return func(yield func(Context[Vertex], value.Value) bool) {
		for ctx := range contexts {
			var v value.Value
			if ctx.Active != nil {
				v = w.b.ResolveProperty(*ctx.Active, typeName, propertyName, info)
			} else {
				v = value.Null()
			}
			if !yield(ctx, v) {
				return
			}
		}
	}
}

func (w basicWrapper[Vertex]) ResolveNeighbors(contexts iter.Seq[Context[Vertex]], typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq2[Context[Vertex], iter.Seq[Vertex]] {
	return func(yield func(Context[Vertex], iter.Seq[Vertex]) bool) {
		for ctx := range contexts {
			var neighbors iter.Seq[Vertex]
			if ctx.Active != nil {
				neighbors = w.b.ResolveNeighbors(*ctx.Active, typeName, edgeName, parameters, info)
			} else {
				neighbors = func(func(Vertex) bool) {}
			}
			if !yield(ctx, neighbors) {
				return
			}
		}
	}
}

func (w basicWrapper[Vertex]) ResolveCoercion(contexts iter.Seq[Context[Vertex]], typeName, coerceToType string, info hints.ResolveInfo) iter.Seq2[Context[Vertex], bool] {
	return func(yield func(Context[Vertex], bool) bool) {
		for ctx := range contexts {
			var ok bool
			if ctx.Active != nil {
				ok = w.b.ResolveCoercion(*ctx.Active, typeName, coerceToType, info)
			}
			if !yield(ctx, ok) {
				return
			}
		}
	}
}
