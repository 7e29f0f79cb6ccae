package interpreter

import (
	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/qerr"
	"go.appointy.com/graphwalk/value"
)

func (in *interp[Vertex]) resolveParams(params map[string]ir.ParamValue) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(params))
	for name, p := range params {
		if p.IsVariable() {
			v, ok := in.variables[p.Variable]
			if !ok {
				return nil, qerr.Execution(nil, "interpreter: unbound edge parameter variable %q", p.Variable)
			}
			out[name] = v
			continue
		}
		out[name] = p.Literal
	}
	return out, nil
}

// oneHopNeighbors resolves one edge hop for every context in ctxs,
// returning the per-input children slices in input order. A row with no
// neighbors gets an empty (possibly nil) slice; callers decide what that
// means (exclude the row, or insert a nonexistent-optional marker).
func (in *interp[Vertex]) oneHopNeighbors(ctxs []*DataContext[Vertex], fromVid, toVid ir.Vid, name string, params map[string]value.Value, info hints.ResolveEdgeInfo) ([][]*DataContext[Vertex], error) {
	typeName := in.idx.Vertices[fromVid].TypeName
	input := make([]adapter.Context[Vertex], len(ctxs))
	for i, ctx := range ctxs {
		input[i] = ctx.adapterContext()
	}

	result := make([][]*DataContext[Vertex], len(ctxs))
	i := 0
	for _, neighbors := range in.adapter.ResolveNeighbors(sliceSeq(input), typeName, name, params, info) {
		if i >= len(ctxs) {
			return nil, qerr.Execution(nil, "adapter ResolveNeighbors returned more rows than %d input contexts", len(ctxs))
		}
		var children []*DataContext[Vertex]
		for v := range neighbors {
			vv := v
			child := ctxs[i].withActive(toVid, &vv)
			child.ID = in.ids.next()
			children = append(children, child)
		}
		result[i] = children
		i++
	}
	if i != len(ctxs) {
		return nil, qerr.Execution(nil, "adapter ResolveNeighbors returned %d rows for %d input contexts", i, len(ctxs))
	}
	return result, nil
}

// coerceVertex applies vid's declared type coercion (spec §4.3: "apply
// any coercion registered on the to-vertex, drop the context on
// failure"). Contexts with a nil Active vertex (a nonexistent optional
// branch that never reached a real neighbor) bypass the coercion call
// entirely and are kept as-is, rather than being dropped for failing a
// coercion they were never meant to attempt.
func (in *interp[Vertex]) coerceVertex(ctxs []*DataContext[Vertex], vid ir.Vid) ([]*DataContext[Vertex], error) {
	v := in.idx.Vertices[vid]
	if v.CoercedFrom == "" || len(ctxs) == 0 {
		return ctxs, nil
	}

	var active []*DataContext[Vertex]
	for _, ctx := range ctxs {
		if ctx.Active != nil {
			active = append(active, ctx)
		}
	}
	if len(active) == 0 {
		return ctxs, nil
	}

	input := make([]adapter.Context[Vertex], len(active))
	for i, ctx := range active {
		input[i] = ctx.adapterContext()
	}
	info := hints.NewResolveInfo(in.idx, vid, in.variables)

	coercible := make(map[adapter.ID]bool, len(active))
	i := 0
	for ctx, ok := range in.adapter.ResolveCoercion(sliceSeq(input), v.CoercedFrom, v.TypeName, info) {
		if i >= len(active) {
			return nil, qerr.Execution(nil, "adapter ResolveCoercion returned more rows than %d input contexts", len(active))
		}
		coercible[ctx.ID] = ok
		i++
	}
	if i != len(active) {
		return nil, qerr.Execution(nil, "adapter ResolveCoercion returned %d rows for %d input contexts", i, len(active))
	}

	var out []*DataContext[Vertex]
	for _, ctx := range ctxs {
		if ctx.Active == nil {
			out = append(out, ctx)
			continue
		}
		if coercible[ctx.ID] {
			out = append(out, ctx)
		}
	}
	return out, nil
}

func edgeInfoFor(e *ir.Edge) hints.EdgeInfo {
	return hints.EdgeInfo{Eid: e.Eid, Name: e.Name, Optional: e.Optional, Recursive: e.Recursion, Parameters: e.Parameters}
}

func foldEdgeInfoFor(f *ir.Fold) hints.EdgeInfo {
	return hints.EdgeInfo{Eid: f.Eid, Name: f.Name, Folded: true, Parameters: f.Parameters}
}

// expandEdge walks a regular (non-recursive, non-fold) edge: rows with
// no neighbors are dropped unless the edge is optional, in which case
// they're kept with a nil active vertex at e.To (spec §4.3).
func (in *interp[Vertex]) expandEdge(ctxs []*DataContext[Vertex], e *ir.Edge) ([]*DataContext[Vertex], error) {
	if len(ctxs) == 0 {
		return ctxs, nil
	}
	params, err := in.resolveParams(e.Parameters)
	if err != nil {
		return nil, err
	}
	info := hints.NewResolveEdgeInfo(hints.NewResolveInfo(in.idx, e.From, in.variables), edgeInfoFor(e))

	perRow, err := in.oneHopNeighbors(ctxs, e.From, e.To, e.Name, params, info)
	if err != nil {
		return nil, err
	}

	var out []*DataContext[Vertex]
	for i, children := range perRow {
		if len(children) == 0 {
			if e.Optional {
				miss := ctxs[i].withActive(e.To, nil)
				miss.ID = in.ids.next()
				out = append(out, miss)
			}
			continue
		}
		out = append(out, children...)
	}
	return out, nil
}

// expandRecursive walks a recursive edge breadth-first up to
// e.Recursion.Depth hops, including depth 0 (the origin vertex itself
// rebound at e.To). Coercion and filters at e.To are applied via
// processVertex at every depth before that depth's survivors expand
// into the next — a row that fails coercion or a filter at depth d
// neither appears in the output for depth d nor feeds depth d+1 (spec
// §4.3's "at every depth, survivors (after coercion and filters) feed
// the next depth"). Since processVertex already runs here, the caller
// must not run it again on expandRecursive's result.
func (in *interp[Vertex]) expandRecursive(ctxs []*DataContext[Vertex], e *ir.Edge) ([]*DataContext[Vertex], error) {
	if len(ctxs) == 0 {
		return ctxs, nil
	}
	depthMax := e.Recursion.Depth

	frontier := make([]*DataContext[Vertex], len(ctxs))
	for i, ctx := range ctxs {
		frontier[i] = ctx.withActive(e.To, ctx.Active)
	}
	frontier, err := in.processVertex(frontier, e.To)
	if err != nil {
		return nil, err
	}
	out := append([]*DataContext[Vertex]{}, frontier...)

	params, err := in.resolveParams(e.Parameters)
	if err != nil {
		return nil, err
	}
	info := hints.NewResolveEdgeInfo(hints.NewResolveInfo(in.idx, e.To, in.variables), edgeInfoFor(e))

	for depth := 1; depth <= depthMax && len(frontier) > 0; depth++ {
		perRow, err := in.oneHopNeighbors(frontier, e.To, e.To, e.Name, params, info)
		if err != nil {
			return nil, err
		}
		var next []*DataContext[Vertex]
		for _, children := range perRow {
			next = append(next, children...)
		}
		next, err = in.processVertex(next, e.To)
		if err != nil {
			return nil, err
		}
		out = append(out, next...)
		frontier = next
	}
	return out, nil
}
