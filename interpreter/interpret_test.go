package interpreter_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/interpreter"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/schema"
	"go.appointy.com/graphwalk/value"
)

func numberSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New("Number")
	require.NoError(t, s.AddType(&schema.VertexType{
		Name: "Number",
		Fields: map[string]*schema.Field{
			"value":     {Name: "value", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "Int"}},
			"successor": {Name: "successor", Kind: schema.FieldEdge, NeighborType: "Number"},
			"neighbors": {Name: "neighbors", Kind: schema.FieldEdge, NeighborType: "Number"},
		},
	}))
	s.AddScalar("Int")
	return s
}

// fixedNumbers is a Basic adapter over a fixed starting set, where every
// vertex's successor is itself plus one — grounded directly on spec §8's
// seed "Number" scenarios.
type fixedNumbers struct {
	start []int64
}

func (f fixedNumbers) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for _, n := range f.start {
			if !yield(n) {
				return
			}
		}
	}
}

func (fixedNumbers) ResolveProperty(vertex int64, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	if propertyName != "value" {
		return value.Null()
	}
	return value.Int64(vertex)
}

func (fixedNumbers) ResolveNeighbors(vertex int64, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if edgeName == "successor" {
			yield(vertex + 1)
		}
	}
}

func (fixedNumbers) ResolveCoercion(vertex int64, typeName, coerceToType string, info hints.ResolveInfo) bool {
	return coerceToType == "Number"
}

func buildQuery() *ir.Query {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {
				Vid:      1,
				TypeName: "Number",
				Outputs:  []ir.Output{{Name: "v", Field: ir.Local{Name: "value"}}},
			},
			2: {
				Vid:      2,
				TypeName: "Number",
				Filters: []ir.Filter{
					{Op: ir.GreaterThan, Left: ir.Local{Name: "value"}, Right: ir.Variable{Name: "min"}},
				},
				Outputs: []ir.Output{{Name: "next", Field: ir.Local{Name: "value"}}},
			},
		},
		Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor"}},
	}
	return &ir.Query{Root: root, Variables: map[string]value.Type{"min": value.Named("Int", false)}}
}

func TestInterpretFiltersAndProjects(t *testing.T) {
	idx, err := ir.Index(buildQuery(), numberSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](fixedNumbers{start: []int64{1, 2, 3, 10}})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{"min": value.Int64(5)})
	require.NoError(t, err)

	var got []map[string]value.Value
	for row := range rows {
		got = append(got, row)
	}

	require.Len(t, got, 1)
	v, _ := got[0]["v"].AsInt64()
	next, _ := got[0]["next"].AsInt64()
	assert.Equal(t, int64(10), v)
	assert.Equal(t, int64(11), next)
}

func buildOptionalQuery() *ir.Query {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {Vid: 1, TypeName: "Number", Outputs: []ir.Output{{Name: "v", Field: ir.Local{Name: "value"}}}},
			2: {Vid: 2, TypeName: "Number", Outputs: []ir.Output{{Name: "next", Field: ir.Local{Name: "value"}}}},
		},
		Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor", Optional: true}},
	}
	return &ir.Query{Root: root, Variables: map[string]value.Type{}}
}

// missingSuccessor never yields a neighbor, exercising the
// nonexistent-optional null-projection path.
type missingSuccessor struct{}

func (missingSuccessor) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) { yield(7) }
}

func (missingSuccessor) ResolveProperty(vertex int64, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	return value.Int64(vertex)
}

func (missingSuccessor) ResolveNeighbors(vertex int64, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) {}
}

func (missingSuccessor) ResolveCoercion(vertex int64, typeName, coerceToType string, info hints.ResolveInfo) bool {
	return true
}

func TestInterpretOptionalEdgeMissProjectsNull(t *testing.T) {
	idx, err := ir.Index(buildOptionalQuery(), numberSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](missingSuccessor{})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []map[string]value.Value
	for row := range rows {
		got = append(got, row)
	}
	require.Len(t, got, 1)
	v, _ := got[0]["v"].AsInt64()
	assert.Equal(t, int64(7), v)
	assert.True(t, got[0]["next"].IsNull())
}

func buildFoldQuery() *ir.Query {
	root := &ir.Component{
		RootVid:  1,
		Vertices: map[ir.Vid]*ir.Vertex{1: {Vid: 1, TypeName: "Number", Outputs: []ir.Output{{Name: "v", Field: ir.Local{Name: "value"}}}}},
		Folds: []*ir.Fold{{
			Eid:  1,
			From: 1,
			To:   2,
			Name: "neighbors",
			Component: &ir.Component{
				RootVid:  2,
				Vertices: map[ir.Vid]*ir.Vertex{2: {Vid: 2, TypeName: "Number", Outputs: []ir.Output{{Name: "nv", Field: ir.Local{Name: "value"}}}}},
			},
			OutputName: "neighbor_count",
		}},
	}
	return &ir.Query{Root: root, Variables: map[string]value.Type{}}
}

type neighborFold struct{}

func (neighborFold) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) { yield(5) }
}

func (neighborFold) ResolveProperty(vertex int64, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	return value.Int64(vertex)
}

func (neighborFold) ResolveNeighbors(vertex int64, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if edgeName == "neighbors" {
			if !yield(vertex + 1) {
				return
			}
			yield(vertex + 2)
		}
	}
}

func (neighborFold) ResolveCoercion(vertex int64, typeName, coerceToType string, info hints.ResolveInfo) bool {
	return true
}

func TestInterpretFoldCollectsListAndCount(t *testing.T) {
	idx, err := ir.Index(buildFoldQuery(), numberSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](neighborFold{})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []map[string]value.Value
	for row := range rows {
		got = append(got, row)
	}
	require.Len(t, got, 1)

	v, _ := got[0]["v"].AsInt64()
	assert.Equal(t, int64(5), v)

	count, _ := got[0]["neighbor_count"].AsUint64()
	assert.Equal(t, uint64(2), count)

	list, ok := got[0]["nv"].AsList()
	require.True(t, ok)
	require.Len(t, list, 2)
	n0, _ := list[0].AsInt64()
	n1, _ := list[1].AsInt64()
	assert.Equal(t, int64(6), n0)
	assert.Equal(t, int64(7), n1)
}

func buildRecursiveQuery() *ir.Query {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {Vid: 1, TypeName: "Number"},
			2: {Vid: 2, TypeName: "Number", Outputs: []ir.Output{{Name: "v", Field: ir.Local{Name: "value"}}}},
		},
		Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor", Recursion: &ir.Recursion{Depth: 2}}},
	}
	return &ir.Query{Root: root, Variables: map[string]value.Type{}}
}

// buildTagAcrossFoldQuery tags a field inside a fold's sub-component,
// then filters a sibling (non-fold) vertex against that tag. A tag
// declared inside a fold is captured only on the fold's own sub-results,
// never on the parent row's context; here the fold also yields zero
// sub-results, so the tag is not captured anywhere and the sibling filter
// must fall back to the pass-through rule (spec §4.4) rather than
// treating the row as though the tag resolved to null.
func buildTagAcrossFoldQuery() *ir.Query {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {Vid: 1, TypeName: "Number", Outputs: []ir.Output{{Name: "v", Field: ir.Local{Name: "value"}}}},
			3: {
				Vid:      3,
				TypeName: "Number",
				Filters: []ir.Filter{
					{Op: ir.Equals, Left: ir.Local{Name: "value"}, Right: ir.Tag{Vid: 2, Name: "fold_tag"}},
				},
				Outputs: []ir.Output{{Name: "next", Field: ir.Local{Name: "value"}}},
			},
		},
		Edges: []*ir.Edge{{Eid: 2, From: 1, To: 3, Name: "successor"}},
		Folds: []*ir.Fold{{
			Eid:  1,
			From: 1,
			To:   2,
			Name: "neighbors",
			Component: &ir.Component{
				RootVid:  2,
				Vertices: map[ir.Vid]*ir.Vertex{2: {Vid: 2, TypeName: "Number", Tags: []ir.TagDecl{{Name: "fold_tag", Field: "value"}}}},
			},
		}},
	}
	return &ir.Query{Root: root, Variables: map[string]value.Type{}}
}

// emptyFoldWithSuccessor yields no neighbors for "neighbors" (leaving
// the fold's tag uncaptured) and a single successor for "successor".
type emptyFoldWithSuccessor struct{}

func (emptyFoldWithSuccessor) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) { yield(9) }
}

func (emptyFoldWithSuccessor) ResolveProperty(vertex int64, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	return value.Int64(vertex)
}

func (emptyFoldWithSuccessor) ResolveNeighbors(vertex int64, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if edgeName == "successor" {
			yield(vertex + 1)
		}
	}
}

func (emptyFoldWithSuccessor) ResolveCoercion(vertex int64, typeName, coerceToType string, info hints.ResolveInfo) bool {
	return true
}

func TestInterpretTagFromEmptyFoldPassesThroughSiblingFilter(t *testing.T) {
	idx, err := ir.Index(buildTagAcrossFoldQuery(), numberSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](emptyFoldWithSuccessor{})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []map[string]value.Value
	for row := range rows {
		got = append(got, row)
	}
	require.Len(t, got, 1)
	v, _ := got[0]["v"].AsInt64()
	next, _ := got[0]["next"].AsInt64()
	assert.Equal(t, int64(9), v)
	assert.Equal(t, int64(10), next)
}

func TestInterpretRecursionIncludesDepthZeroThroughMax(t *testing.T) {
	idx, err := ir.Index(buildRecursiveQuery(), numberSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](fixedNumbers{start: []int64{1}})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []int64
	for row := range rows {
		n, _ := row["v"].AsInt64()
		got = append(got, n)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, got)
}

// parityNumbers coerces a successor to "Even" or "Odd" based on its
// value's parity, exercising coerceVertex's batched ResolveCoercion call
// and its drop-on-failure path.
type parityNumbers struct{}

func (parityNumbers) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) { yield(1); yield(2) }
}

func (parityNumbers) ResolveProperty(vertex int64, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	if propertyName != "value" {
		return value.Null()
	}
	return value.Int64(vertex)
}

func (parityNumbers) ResolveNeighbors(vertex int64, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if edgeName == "successor" {
			yield(vertex + 1)
		}
	}
}

func (parityNumbers) ResolveCoercion(vertex int64, typeName, coerceToType string, info hints.ResolveInfo) bool {
	if coerceToType == "Even" {
		return vertex%2 == 0
	}
	return vertex%2 != 0
}

func buildCoercionQuery(coerceTo string) *ir.Query {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {Vid: 1, TypeName: "Number"},
			2: {Vid: 2, TypeName: coerceTo, CoercedFrom: "Number", Outputs: []ir.Output{{Name: "v", Field: ir.Local{Name: "value"}}}},
		},
		Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor"}},
	}
	return &ir.Query{Root: root, Variables: map[string]value.Type{}}
}

func coercionSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := numberSchema(t)
	require.NoError(t, s.AddType(&schema.VertexType{Name: "Even", Implements: []string{"Number"}, Fields: map[string]*schema.Field{}}))
	require.NoError(t, s.AddType(&schema.VertexType{Name: "Odd", Implements: []string{"Number"}, Fields: map[string]*schema.Field{}}))
	return s
}

func TestInterpretCoercionKeepsMatchingNeighbor(t *testing.T) {
	// start=1, successor=2, coerced to Even: 2 is even, so the row survives.
	// start=2, successor=3, coerced to Even: 3 is not even, row dropped.
	idx, err := ir.Index(buildCoercionQuery("Even"), coercionSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](parityNumbers{})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []int64
	for row := range rows {
		v, ok := row["v"].AsInt64()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.ElementsMatch(t, []int64{2}, got)
}

func TestInterpretCoercionDropsNonMatchingNeighbor(t *testing.T) {
	// start=1, successor=2, coerced to Odd: 2 is not odd, row dropped.
	// start=2, successor=3, coerced to Odd: 3 is odd, row survives.
	idx, err := ir.Index(buildCoercionQuery("Odd"), coercionSchema(t))
	require.NoError(t, err)

	a := adapter.FromBasic[int64](parityNumbers{})
	rows, err := interpreter.Interpret[int64](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []int64
	for row := range rows {
		v, ok := row["v"].AsInt64()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, []int64{3}, got)
}
