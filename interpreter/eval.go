package interpreter

import (
	"fmt"
	"iter"
	"regexp"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/qerr"
	"go.appointy.com/graphwalk/transform"
	"go.appointy.com/graphwalk/value"
)

// interp holds the fixed inputs threaded through one query execution:
// the adapter being walked, the validated query, and the caller-supplied
// variable bindings.
type interp[Vertex any] struct {
	adapter   adapter.Adapter[Vertex]
	idx       *ir.IndexedQuery
	variables map[string]value.Value
	ids       *idSource
}

func sliceSeq[T any](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// resolveProperty batch-resolves one property off each context's vertex
// bound at propVid (not necessarily the context's current Active
// vertex, e.g. for ir.Context field references), preserving order.
func (in *interp[Vertex]) resolveProperty(ctxs []*DataContext[Vertex], propVid ir.Vid, propName string) ([]value.Value, error) {
	typeName := in.idx.Vertices[propVid].TypeName
	input := make([]adapter.Context[Vertex], len(ctxs))
	for i, ctx := range ctxs {
		v, _ := ctx.boundVertex(propVid)
		input[i] = adapter.Context[Vertex]{ID: ctx.ID, Active: v}
	}

	info := hints.NewResolveInfo(in.idx, propVid, in.variables)
	results := in.adapter.ResolveProperty(sliceSeq(input), typeName, propName, info)

	out := make([]value.Value, 0, len(ctxs))
	for _, v := range results {
		out = append(out, v)
	}
	if len(out) != len(ctxs) {
		return nil, qerr.Execution(nil, "adapter ResolveProperty returned %d values for %d input contexts", len(out), len(ctxs))
	}
	return out, nil
}

// resolveFieldRef resolves ref for every context in ctxs, where vid is
// the vertex currently being processed (the FieldRef may still reach
// back to an earlier vertex via ir.Context, or sideways to a fold
// aggregate via ir.FoldAggregate).
func (in *interp[Vertex]) resolveFieldRef(ctxs []*DataContext[Vertex], vid ir.Vid, ref ir.FieldRef) ([]value.Value, error) {
	switch r := ref.(type) {
	case ir.Local:
		return in.resolveProperty(ctxs, vid, r.Name)

	case ir.Context:
		return in.resolveProperty(ctxs, r.Vid, r.Name)

	case ir.FoldAggregate:
		out := make([]value.Value, len(ctxs))
		for i, ctx := range ctxs {
			v, ok := ctx.foldAggregate(r.Eid)
			if !ok {
				v = value.Null()
			}
			out[i] = v
		}
		return out, nil

	case ir.Transformed:
		inner, err := in.resolveFieldRef(ctxs, vid, r.Inner)
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(ctxs))
		for i, ctx := range ctxs {
			cur := inner[i]
			for _, step := range r.Chain {
				operand, _, err := in.resolveOperand(ctx, step.Operand)
				if err != nil {
					return nil, err
				}
				cur, err = transform.Apply(step.Kind, cur, operand)
				if err != nil {
					return nil, qerr.Execution(ctx, "%s", err)
				}
			}
			out[i] = cur
		}
		return out, nil

	default:
		return nil, qerr.Execution(nil, "interpreter: unknown field ref %T", ref)
	}
}

// resolveOperand resolves a filter's (or Add transform's) right operand
// for one context: a query variable resolves the same for every row, a
// tag resolves per row from what was captured earlier in the walk.
func (in *interp[Vertex]) resolveOperand(ctx *DataContext[Vertex], op ir.Operand) (value.Value, bool, error) {
	switch o := op.(type) {
	case nil:
		return value.Value{}, false, nil
	case ir.Variable:
		v, ok := in.variables[o.Name]
		if !ok {
			return value.Value{}, false, qerr.Execution(ctx, "interpreter: unbound variable %q", o.Name)
		}
		return v, true, nil
	case ir.Tag:
		v, ok := ctx.tag(o.Name)
		if !ok {
			return value.Value{}, false, nil
		}
		for _, step := range o.Chain {
			operand, _, err := in.resolveOperand(ctx, step.Operand)
			if err != nil {
				return value.Value{}, false, err
			}
			v, err = transform.Apply(step.Kind, v, operand)
			if err != nil {
				return value.Value{}, false, qerr.Execution(ctx, "%s", err)
			}
		}
		return v, true, nil
	default:
		return value.Value{}, false, fmt.Errorf("interpreter: unknown operand %T", op)
	}
}

// evalFilters applies every filter on vid's vertex to ctxs, given the
// already-resolved left-hand values for each filter (leftVals[j][i] is
// filter j's left value for ctxs[i]), returning the surviving contexts
// in order.
func (in *interp[Vertex]) evalFilters(ctxs []*DataContext[Vertex], filters []ir.Filter, leftVals [][]value.Value) ([]*DataContext[Vertex], error) {
	survivors := ctxs
	for j, f := range filters {
		var next []*DataContext[Vertex]
		for i, ctx := range survivors {
			left := leftVals[j][i]
			keep, err := in.evalOne(ctx, f, left)
			if err != nil {
				return nil, err
			}
			if keep {
				next = append(next, ctx)
			}
		}
		survivors = next
	}
	return survivors, nil
}

func (in *interp[Vertex]) evalOne(ctx *DataContext[Vertex], f ir.Filter, left value.Value) (bool, error) {
	if f.Op == ir.IsNull {
		return left.IsNull(), nil
	}
	if f.Op == ir.IsNotNull {
		return !left.IsNull(), nil
	}

	right, ok, err := in.resolveOperand(ctx, f.Right)
	if err != nil {
		return false, err
	}
	if !ok {
		// Tag captured at a vertex that turned out not to exist (a missed
		// optional or an empty fold): the filter passes through rather
		// than eliminating the row (spec §4.4).
		return true, nil
	}

	switch f.Op {
	case ir.Equals:
		return !left.IsNull() && !right.IsNull() && value.Equal(left, right), nil
	case ir.NotEquals:
		return !left.IsNull() && !right.IsNull() && !value.Equal(left, right), nil
	case ir.LessThan:
		return !left.IsNull() && !right.IsNull() && value.Compare(left, right) < 0, nil
	case ir.LessOrEqual:
		return !left.IsNull() && !right.IsNull() && value.Compare(left, right) <= 0, nil
	case ir.GreaterThan:
		return !left.IsNull() && !right.IsNull() && value.Compare(left, right) > 0, nil
	case ir.GreaterOrEqual:
		return !left.IsNull() && !right.IsNull() && value.Compare(left, right) >= 0, nil
	case ir.Contains:
		return listContains(left, right), nil
	case ir.NotContains:
		return !left.IsNull() && !listContains(left, right), nil
	case ir.OneOf:
		return listContains(right, left), nil
	case ir.NotOneOf:
		return !right.IsNull() && !listContains(right, left), nil
	case ir.HasPrefix, ir.NotHasPrefix, ir.HasSuffix, ir.NotHasSuffix, ir.HasSubstring, ir.NotHasSubstring:
		return stringOp(f.Op, left, right)
	case ir.Regex, ir.NotRegex:
		return regexOp(f.Op, left, right)
	default:
		return false, qerr.Execution(ctx, "interpreter: unsupported filter op %s", f.Op)
	}
}

func listContains(list, needle value.Value) bool {
	if list.IsNull() || needle.IsNull() {
		return false
	}
	items, ok := list.AsList()
	if !ok {
		return false
	}
	for _, item := range items {
		if value.Equal(item, needle) {
			return true
		}
	}
	return false
}

func stringOp(op ir.FilterOp, left, right value.Value) (bool, error) {
	if left.IsNull() || right.IsNull() {
		return false, nil
	}
	l, ok := left.AsString()
	if !ok {
		return false, nil
	}
	r, ok := right.AsString()
	if !ok {
		return false, nil
	}
	switch op {
	case ir.HasPrefix:
		return len(l) >= len(r) && l[:len(r)] == r, nil
	case ir.NotHasPrefix:
		return !(len(l) >= len(r) && l[:len(r)] == r), nil
	case ir.HasSuffix:
		return len(l) >= len(r) && l[len(l)-len(r):] == r, nil
	case ir.NotHasSuffix:
		return !(len(l) >= len(r) && l[len(l)-len(r):] == r), nil
	case ir.HasSubstring:
		return stringContains(l, r), nil
	case ir.NotHasSubstring:
		return !stringContains(l, r), nil
	default:
		return false, fmt.Errorf("interpreter: not a string op %s", op)
	}
}

func stringContains(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func regexOp(op ir.FilterOp, left, right value.Value) (bool, error) {
	if left.IsNull() || right.IsNull() {
		return false, nil
	}
	l, _ := left.AsString()
	pattern, _ := right.AsString()
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, qerr.Execution(nil, "interpreter: invalid regex %q: %s", pattern, err)
	}
	matched := re.MatchString(l)
	if op == ir.NotRegex {
		return !matched, nil
	}
	return matched, nil
}
