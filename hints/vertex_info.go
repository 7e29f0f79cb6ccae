package hints

import (
	"sort"

	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/value"
)

// EdgeInfo describes one edge or fold the interpreter could traverse
// from a vertex, without yet performing the traversal.
type EdgeInfo struct {
	Eid        ir.Eid
	Name       string
	Optional   bool
	Folded     bool
	Recursive  *ir.Recursion
	Parameters map[string]ir.ParamValue
}

// ResolveInfo exposes to an adapter everything it may use to prefilter
// or otherwise optimize a ResolveStartingVertices/ResolveNeighbors call
// for one vertex, without requiring it honor any of it (spec §4.2, §4.5).
type ResolveInfo struct {
	idx       *ir.IndexedQuery
	vid       ir.Vid
	variables map[string]value.Value
}

// NewResolveInfo builds the hint object the interpreter passes to the
// adapter ahead of resolving vid: variables carries the query's runtime
// variable bindings, used to evaluate statically-known-property filters.
func NewResolveInfo(idx *ir.IndexedQuery, vid ir.Vid, variables map[string]value.Value) ResolveInfo {
	return ResolveInfo{idx: idx, vid: vid, variables: variables}
}

// Vid returns the id of the vertex this ResolveInfo describes.
func (r ResolveInfo) Vid() ir.Vid { return r.vid }

// CoercedToType returns the type coercion applied at this vertex, if any.
func (r ResolveInfo) CoercedToType() (string, bool) {
	v := r.idx.Vertices[r.vid]
	if v.CoercedFrom == "" {
		return "", false
	}
	return v.TypeName, true
}

// StaticallyKnownProperty checks whether the query demands this
// vertex's named property to be within a set of values known up front,
// without executing any of the query, by folding every filter on that
// property whose right operand is a variable into an intersection (spec
// §4.5). Returns ok=false when no filter constrains the property this
// way (including when every constraint is tag-bound, hence dynamic).
func (r ResolveInfo) StaticallyKnownProperty(name string) (Candidate, bool) {
	v := r.idx.Vertices[r.vid]

	var matching []ir.Filter
	for _, f := range v.Filters {
		if loc, ok := f.Left.(ir.Local); ok && loc.Name == name {
			matching = append(matching, f)
		}
	}
	if len(matching) == 0 {
		return Candidate{}, false
	}

	var candidateFilters []Candidate
	var postValues []value.Value

	for _, f := range matching {
		switch f.Op {
		case ir.IsNull:
			candidateFilters = append(candidateFilters, SingleCandidate(value.Null()))
			continue
		case ir.IsNotNull:
			candidateFilters = append(candidateFilters, RangeCandidate(FullNonNull()))
			continue
		}

		variable, isVar := f.Right.(ir.Variable)
		if !isVar {
			continue // tag operand: dynamic, contributes no static candidate.
		}
		val, ok := r.variables[variable.Name]
		if !ok {
			continue
		}

		switch f.Op {
		case ir.Equals:
			candidateFilters = append(candidateFilters, SingleCandidate(val))
		case ir.NotEquals:
			postValues = append(postValues, val)
		case ir.LessThan:
			candidateFilters = append(candidateFilters, RangeCandidate(Range{End: &Bound{Value: val, Inclusive: false}}))
		case ir.LessOrEqual:
			candidateFilters = append(candidateFilters, RangeCandidate(Range{End: &Bound{Value: val, Inclusive: true}}))
		case ir.GreaterThan:
			candidateFilters = append(candidateFilters, RangeCandidate(Range{Start: &Bound{Value: val, Inclusive: false}}))
		case ir.GreaterOrEqual:
			candidateFilters = append(candidateFilters, RangeCandidate(Range{Start: &Bound{Value: val, Inclusive: true}}))
		case ir.OneOf:
			if list, ok := val.AsList(); ok {
				candidateFilters = append(candidateFilters, MultipleCandidate(list))
			}
		case ir.NotOneOf:
			if list, ok := val.AsList(); ok {
				postValues = append(postValues, list...)
			}
		}
	}

	if len(candidateFilters) == 0 {
		return Candidate{}, false
	}

	candidate := AllCandidate()
	for _, c := range candidateFilters {
		candidate = Intersect(candidate, c)
	}
	if len(postValues) > 0 {
		candidate = ExcludeValues(candidate, postValues)
	}
	return candidate, true
}

// DynamicallyKnownProperty mirrors StaticallyKnownProperty for filters
// whose right operand is a tag rather than a variable: the constraint on
// name can only be narrowed once the tag's captured value is known at
// execution time, so this returns a DynamicValue closing over the same
// intersection logic, to be resolved once per row by whoever is
// threading tag values through the walk (spec §4.5). Returns ok=false
// when no tag-bound filter constrains the property this way.
func (r ResolveInfo) DynamicallyKnownProperty(name string) (DynamicValue, bool) {
	v := r.idx.Vertices[r.vid]

	var tagFilters []ir.Filter
	for _, f := range v.Filters {
		if loc, ok := f.Left.(ir.Local); ok && loc.Name == name {
			if _, isTag := f.Right.(ir.Tag); isTag {
				tagFilters = append(tagFilters, f)
			}
		}
	}
	if len(tagFilters) == 0 {
		return DynamicValue{}, false
	}

	resolve := func(tagValue value.Value) Candidate {
		candidate := AllCandidate()
		var excluded []value.Value
		for _, f := range tagFilters {
			switch f.Op {
			case ir.Equals:
				candidate = Intersect(candidate, SingleCandidate(tagValue))
			case ir.NotEquals:
				excluded = append(excluded, tagValue)
			case ir.LessThan:
				candidate = Intersect(candidate, RangeCandidate(Range{End: &Bound{Value: tagValue, Inclusive: false}}))
			case ir.LessOrEqual:
				candidate = Intersect(candidate, RangeCandidate(Range{End: &Bound{Value: tagValue, Inclusive: true}}))
			case ir.GreaterThan:
				candidate = Intersect(candidate, RangeCandidate(Range{Start: &Bound{Value: tagValue, Inclusive: false}}))
			case ir.GreaterOrEqual:
				candidate = Intersect(candidate, RangeCandidate(Range{Start: &Bound{Value: tagValue, Inclusive: true}}))
			case ir.OneOf:
				if list, ok := tagValue.AsList(); ok {
					candidate = Intersect(candidate, MultipleCandidate(list))
				}
			case ir.NotOneOf:
				if list, ok := tagValue.AsList(); ok {
					excluded = append(excluded, list...)
				}
			}
		}
		if len(excluded) > 0 {
			candidate = ExcludeValues(candidate, excluded)
		}
		return candidate
	}

	return NewDynamicValue(name, false, resolve), true
}

// EdgesWithName returns every edge or fold by the given name rooted at
// this vertex, in eid-ascending order. This is the building block of
// FirstEdge and FirstMandatoryEdge.
func (r ResolveInfo) EdgesWithName(name string) []EdgeInfo {
	comp := r.idx.VertexComponent[r.vid]
	var out []EdgeInfo
	for _, e := range comp.Edges {
		if e.From == r.vid && e.Name == name {
			out = append(out, EdgeInfo{Eid: e.Eid, Name: e.Name, Optional: e.Optional, Recursive: e.Recursion, Parameters: e.Parameters})
		}
	}
	for _, f := range comp.Folds {
		if f.From == r.vid && f.Name == name {
			out = append(out, EdgeInfo{Eid: f.Eid, Name: f.Name, Folded: true, Parameters: f.Parameters})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Eid < out[j].Eid })
	return out
}

// FirstEdge returns the first edge or fold by the given name.
func (r ResolveInfo) FirstEdge(name string) (EdgeInfo, bool) {
	edges := r.EdgesWithName(name)
	if len(edges) == 0 {
		return EdgeInfo{}, false
	}
	return edges[0], true
}

// FirstMandatoryEdge returns the first edge by the given name that is
// mandatory: not optional, not folded, not recursive, since those never
// require the edge to actually exist for the query to still produce a
// result at this vertex.
func (r ResolveInfo) FirstMandatoryEdge(name string) (EdgeInfo, bool) {
	for _, e := range r.EdgesWithName(name) {
		if !e.Folded && !e.Optional && e.Recursive == nil {
			return e, true
		}
	}
	return EdgeInfo{}, false
}

// ResolveEdgeInfo extends ResolveInfo with the specific edge being
// traversed by a ResolveNeighbors call, including its recursion depth
// if any, matching spec §4.2's distinct `resolve_edge_info` parameter.
type ResolveEdgeInfo struct {
	ResolveInfo
	Edge EdgeInfo
}

// NewResolveEdgeInfo attaches edge to an already-built ResolveInfo.
func NewResolveEdgeInfo(base ResolveInfo, edge EdgeInfo) ResolveEdgeInfo {
	return ResolveEdgeInfo{ResolveInfo: base, Edge: edge}
}
