// Package interpreter executes an ir.IndexedQuery against an
// adapter.Adapter, threading a DataContext through the edge-by-edge walk
// described in spec §4.3: binding vertices, evaluating filters, tagging
// and projecting fields, expanding regular/optional/recursive edges, and
// folding sub-components into aggregate columns.
//
// Grounded on go.appointy.com/graphwalk's teacher package `graphql`
// conceptually (a function threading a context and a selection through a
// resolved value), generalized into the persistent-context walk of
// original_source/trustfall_core/src/interpreter/{mod.rs, recursion.rs,
// tags.rs, helpers.rs}.
package interpreter

import (
	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/value"
)

// DataContext is one in-flight row of the walk: the vertex currently
// being visited (nil once a nonexistent optional or fold scope has been
// entered), every vertex bound so far keyed by its Vid (for Context
// field references back to an earlier vertex), every tag captured so
// far, and the output row under construction.
//
// Persistent by construction: every mutating operation returns a new
// DataContext sharing structure with its parent via pmap, so expanding
// one input context into many neighbor contexts is cheap (spec §9).
type DataContext[Vertex any] struct {
	ID     adapter.ID
	Active *Vertex

	bound          pmap[ir.Vid, *Vertex]
	tags           pmap[string, value.Value]
	outputs        pmap[string, value.Value]
	foldAggregates pmap[ir.Eid, value.Value]
}

// newRoot builds the first DataContext for a freshly-resolved starting
// vertex.
func newRoot[Vertex any](id adapter.ID, rootVid ir.Vid, v Vertex) *DataContext[Vertex] {
	dc := &DataContext[Vertex]{ID: id, Active: &v}
	dc.bound = dc.bound.Insert(rootVid, dc.Active)
	return dc
}

// withActive returns a copy of dc with a new active vertex bound at vid.
// A nil v models a nonexistent optional/fold branch: Active becomes nil
// and vid is left unbound, so later Context field references resolve to
// null (spec §4.3's optional-miss semantics).
func (dc *DataContext[Vertex]) withActive(vid ir.Vid, v *Vertex) *DataContext[Vertex] {
	cp := *dc
	cp.Active = v
	if v != nil {
		cp.bound = cp.bound.Insert(vid, v)
	}
	return &cp
}

func (dc *DataContext[Vertex]) withTag(name string, v value.Value) *DataContext[Vertex] {
	cp := *dc
	cp.tags = cp.tags.Insert(name, v)
	return &cp
}

func (dc *DataContext[Vertex]) withOutput(name string, v value.Value) *DataContext[Vertex] {
	cp := *dc
	cp.outputs = cp.outputs.Insert(name, v)
	return &cp
}

func (dc *DataContext[Vertex]) withFoldAggregate(eid ir.Eid, v value.Value) *DataContext[Vertex] {
	cp := *dc
	cp.foldAggregates = cp.foldAggregates.Insert(eid, v)
	return &cp
}

func (dc *DataContext[Vertex]) foldAggregate(eid ir.Eid) (value.Value, bool) {
	return dc.foldAggregates.Get(eid)
}

// boundVertex looks up the vertex bound at vid, if any (false when vid
// belongs to a branch of the query that turned out not to exist).
func (dc *DataContext[Vertex]) boundVertex(vid ir.Vid) (*Vertex, bool) {
	return dc.bound.Get(vid)
}

// tag looks up a captured tag value, if any (false means the tag's
// vertex was never bound — an optional or fold branch that didn't
// exist — per spec §4.4's tag-from-nonexistent-optional rule, callers
// must treat a missing tag as "the filter referencing it passes").
func (dc *DataContext[Vertex]) tag(name string) (value.Value, bool) {
	return dc.tags.Get(name)
}

// row materializes the final projected output map for outputs in idx.
func (dc *DataContext[Vertex]) row(names map[string]ir.OutputDescriptor) map[string]value.Value {
	out := make(map[string]value.Value, len(names))
	for name := range names {
		v, ok := dc.outputs.Get(name)
		if !ok {
			v = value.Null()
		}
		out[name] = v
	}
	return out
}

// adapterContext projects dc down to the narrow view an Adapter method
// sees.
func (dc *DataContext[Vertex]) adapterContext() adapter.Context[Vertex] {
	return adapter.Context[Vertex]{ID: dc.ID, Active: dc.Active}
}
