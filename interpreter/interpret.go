package interpreter

import (
	"iter"
	"sort"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/qerr"
	"go.appointy.com/graphwalk/value"
)

// Interpret executes idx against a, threading variables through every
// filter and parameterized edge, and returns the lazily-pulled sequence
// of output rows (spec §4.3). Each row is a flat map from an Output's
// declared name to its projected value.
//
// The orchestration within one call materializes each traversal step's
// contexts into a slice before moving to the next (see interpretComponent),
// so the adapter always receives a genuine batch rather than one context
// at a time; only the outermost sequence returned to the caller is pulled
// lazily. A fully row-at-a-time lazy walk end-to-end is possible but adds
// considerable bookkeeping for coroutine-style suspension across nested
// fold/recursive scopes; this is recorded as a deliberate simplification
// in DESIGN.md rather than left unstated.
func Interpret[Vertex any](a adapter.Adapter[Vertex], idx *ir.IndexedQuery, variables map[string]value.Value) (iter.Seq[map[string]value.Value], error) {
	if err := checkVariables(idx, variables); err != nil {
		return nil, err
	}

	in := &interp[Vertex]{adapter: a, idx: idx, variables: variables, ids: newIDSource()}

	root := idx.Query.Root
	rootType := idx.Vertices[root.RootVid].TypeName
	info := hints.NewResolveInfo(idx, root.RootVid, variables)

	rootParams, err := in.resolveParams(root.RootParameters)
	if err != nil {
		return nil, err
	}

	var ctxs []*DataContext[Vertex]
	for v := range a.ResolveStartingVertices(rootType, rootParams, info) {
		vv := v
		ctxs = append(ctxs, newRoot[Vertex](in.ids.next(), root.RootVid, vv))
	}

	final, err := in.interpretComponent(ctxs, root)
	if err != nil {
		return nil, err
	}

	return func(yield func(map[string]value.Value) bool) {
		for _, ctx := range final {
			if !yield(ctx.row(idx.Outputs)) {
				return
			}
		}
	}, nil
}

func checkVariables(idx *ir.IndexedQuery, variables map[string]value.Value) error {
	for name, declared := range idx.Query.Variables {
		v, ok := variables[name]
		if !ok {
			return qerr.Execution(nil, "interpreter: missing binding for variable %q", name)
		}
		if !value.IsArgumentValid(declared, v) {
			return qerr.Execution(v, "interpreter: variable %q expects %s", name, declared)
		}
	}
	return nil
}

// interpretComponent runs comp's root-vertex filtering/projection, then
// every edge and fold belonging to comp in ascending eid order, threading
// the surviving context slice through each step.
func (in *interp[Vertex]) interpretComponent(ctxs []*DataContext[Vertex], comp *ir.Component) ([]*DataContext[Vertex], error) {
	cur, err := in.processVertex(ctxs, comp.RootVid)
	if err != nil {
		return nil, err
	}

	type step struct {
		eid  ir.Eid
		edge *ir.Edge
		fold *ir.Fold
	}
	var steps []step
	for _, e := range comp.Edges {
		steps = append(steps, step{eid: e.Eid, edge: e})
	}
	for _, f := range comp.Folds {
		steps = append(steps, step{eid: f.Eid, fold: f})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].eid < steps[j].eid })

	for _, st := range steps {
		if len(cur) == 0 {
			break
		}
		switch {
		case st.edge != nil:
			if st.edge.Recursion != nil {
				// expandRecursive applies processVertex itself at every
				// depth (spec §4.3); running it again here would
				// re-evaluate filters/tags/outputs redundantly and, worse,
				// re-run coercion against already-dropped neighbors.
				cur, err = in.expandRecursive(cur, st.edge)
				if err != nil {
					return nil, err
				}
			} else {
				cur, err = in.expandEdge(cur, st.edge)
				if err != nil {
					return nil, err
				}
				cur, err = in.processVertex(cur, st.edge.To)
				if err != nil {
					return nil, err
				}
			}
		case st.fold != nil:
			cur, err = in.applyFold(cur, st.fold)
			if err != nil {
				return nil, err
			}
		}
	}
	return cur, nil
}

// processVertex applies vid's declared type coercion (dropping active
// contexts that fail it), evaluates vid's filters (dropping contexts
// that fail any), captures its declared tags, and projects its declared
// outputs, in that order (spec §4.3).
func (in *interp[Vertex]) processVertex(ctxs []*DataContext[Vertex], vid ir.Vid) ([]*DataContext[Vertex], error) {
	if len(ctxs) == 0 {
		return ctxs, nil
	}
	v := in.idx.Vertices[vid]

	ctxs, err := in.coerceVertex(ctxs, vid)
	if err != nil {
		return nil, err
	}
	if len(ctxs) == 0 {
		return ctxs, nil
	}

	leftVals := make([][]value.Value, len(v.Filters))
	for j, f := range v.Filters {
		vals, err := in.resolveFieldRef(ctxs, vid, f.Left)
		if err != nil {
			return nil, err
		}
		leftVals[j] = vals
	}
	survivors, err := in.evalFilters(ctxs, v.Filters, leftVals)
	if err != nil {
		return nil, err
	}
	if len(survivors) == 0 {
		return survivors, nil
	}

	for _, decl := range v.Tags {
		vals, err := in.resolveFieldRef(survivors, vid, ir.Local{Name: decl.Field})
		if err != nil {
			return nil, err
		}
		for i, ctx := range survivors {
			survivors[i] = ctx.withTag(decl.Name, vals[i])
		}
	}

	for _, o := range v.Outputs {
		vals, err := in.resolveFieldRef(survivors, vid, o.Field)
		if err != nil {
			return nil, err
		}
		for i, ctx := range survivors {
			survivors[i] = ctx.withOutput(o.Name, vals[i])
		}
	}

	return survivors, nil
}
