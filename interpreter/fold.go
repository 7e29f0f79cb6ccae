package interpreter

import (
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/transform"
	"go.appointy.com/graphwalk/value"
)

// componentVids collects every Vid belonging to comp, including those
// nested inside folds of comp (each level deeper is wrapped in one more
// list layer by ir.Index, matching the nesting walked here).
func componentVids(comp *ir.Component) map[ir.Vid]bool {
	vids := map[ir.Vid]bool{}
	for vid := range comp.Vertices {
		vids[vid] = true
	}
	for _, f := range comp.Folds {
		for vid := range componentVids(f.Component) {
			vids[vid] = true
		}
	}
	return vids
}

// applyFold resolves a fold's edge once per input context, interprets
// the fold's sub-component independently over every resulting neighbor,
// collects each of the sub-component's declared outputs into a list
// column, computes the fold's own scalar aggregate (seeded from the
// surviving subcontext count), applies the fold's post-filters against
// that aggregate, and merges both back into the parent row (spec §4.3's
// fold semantics).
func (in *interp[Vertex]) applyFold(ctxs []*DataContext[Vertex], f *ir.Fold) ([]*DataContext[Vertex], error) {
	if len(ctxs) == 0 {
		return ctxs, nil
	}
	params, err := in.resolveParams(f.Parameters)
	if err != nil {
		return nil, err
	}
	info := hints.NewResolveEdgeInfo(hints.NewResolveInfo(in.idx, f.From, in.variables), foldEdgeInfoFor(f))

	perRow, err := in.oneHopNeighbors(ctxs, f.From, f.To, f.Name, params, info)
	if err != nil {
		return nil, err
	}

	vids := componentVids(f.Component)
	var outputNames []string
	for name, desc := range in.idx.Outputs {
		if _, isAggregate := desc.Field.(ir.FoldAggregate); isAggregate {
			continue // projected via f.OutputName below, not a per-element column
		}
		if vids[desc.Vid] {
			outputNames = append(outputNames, name)
		}
	}

	var out []*DataContext[Vertex]
	for i, entries := range perRow {
		subResults, err := in.interpretComponent(entries, f.Component)
		if err != nil {
			return nil, err
		}

		aggregate := value.Uint64(uint64(len(subResults)))
		for j, step := range f.Transforms {
			if j == 0 && step.Kind == transform.Count {
				continue // aggregate already holds the sub-result count
			}
			operand, _, err := in.resolveOperand(ctxs[i], step.Operand)
			if err != nil {
				return nil, err
			}
			aggregate, err = transform.Apply(step.Kind, aggregate, operand)
			if err != nil {
				return nil, err
			}
		}

		withAgg := ctxs[i].withFoldAggregate(f.Eid, aggregate)

		keep := true
		for _, pf := range f.PostFilters {
			left, err := in.resolveFieldRef([]*DataContext[Vertex]{withAgg}, f.From, pf.Left)
			if err != nil {
				return nil, err
			}
			ok, err := in.evalOne(withAgg, pf, left[0])
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}

		newCtx := withAgg
		for _, name := range outputNames {
			values := make([]value.Value, len(subResults))
			for k, sr := range subResults {
				v, ok := sr.outputs.Get(name)
				if !ok {
					v = value.Null()
				}
				values[k] = v
			}
			newCtx = newCtx.withOutput(name, value.List(values))
		}
		if f.OutputName != "" {
			newCtx = newCtx.withOutput(f.OutputName, aggregate)
		}
		out = append(out, newCtx)
	}
	return out, nil
}
