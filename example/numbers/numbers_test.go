package numbers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/example/numbers"
	"go.appointy.com/graphwalk/interpreter"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/value"
)

func rangeQuery(min, max int64) *ir.Query {
	return &ir.Query{
		Root: &ir.Component{
			RootVid: 1,
			RootParameters: map[string]ir.ParamValue{
				"min": {Literal: value.Int64(min)},
				"max": {Literal: value.Int64(max)},
			},
			Vertices: map[ir.Vid]*ir.Vertex{
				1: {
					Vid:      1,
					TypeName: "Number",
					Outputs: []ir.Output{
						{Name: "value", Field: ir.Local{Name: "value"}},
						{Name: "name", Field: ir.Local{Name: "name"}},
					},
				},
			},
		},
		Variables: map[string]value.Type{},
	}
}

func run(t *testing.T, q *ir.Query) []map[string]value.Value {
	t.Helper()
	idx, err := ir.Index(q, numbers.Schema())
	require.NoError(t, err)

	a := adapter.FromBasic[numbers.Vertex](numbers.Adapter{})
	rows, err := interpreter.Interpret[numbers.Vertex](a, idx, map[string]value.Value{})
	require.NoError(t, err)

	var got []map[string]value.Value
	for row := range rows {
		got = append(got, row)
	}
	return got
}

func TestResolveStartingVerticesHonorsMinMax(t *testing.T) {
	got := run(t, rangeQuery(0, 5))
	require.Len(t, got, 6)
	for i, row := range got {
		v, _ := row["value"].AsInt64()
		assert.Equal(t, int64(i), v)
	}
}

func TestResolveStartingVerticesEmptyWhenMinAboveMax(t *testing.T) {
	got := run(t, rangeQuery(5, 2))
	assert.Empty(t, got)
}

func TestNameWithinKnownRange(t *testing.T) {
	got := run(t, rangeQuery(7, 7))
	require.Len(t, got, 1)
	name, ok := got[0]["name"].AsString()
	require.True(t, ok)
	assert.Equal(t, "seven", name)
}

func TestNameIsNullOutsideKnownRange(t *testing.T) {
	got := run(t, rangeQuery(21, 21))
	require.Len(t, got, 1)
	assert.True(t, got[0]["name"].IsNull())
}

func successorQuery() *ir.Query {
	return &ir.Query{
		Root: &ir.Component{
			RootVid: 1,
			RootParameters: map[string]ir.ParamValue{
				"min": {Literal: value.Int64(4)},
				"max": {Literal: value.Int64(4)},
			},
			Vertices: map[ir.Vid]*ir.Vertex{
				1: {Vid: 1, TypeName: "Number", Outputs: []ir.Output{{Name: "value", Field: ir.Local{Name: "value"}}}},
				2: {Vid: 2, TypeName: "Number", Outputs: []ir.Output{{Name: "next", Field: ir.Local{Name: "value"}}}},
			},
			Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor"}},
		},
		Variables: map[string]value.Type{},
	}
}

func TestSuccessorEdgeWalksOneStep(t *testing.T) {
	got := run(t, successorQuery())
	require.Len(t, got, 1)
	v, _ := got[0]["value"].AsInt64()
	next, _ := got[0]["next"].AsInt64()
	assert.Equal(t, int64(4), v)
	assert.Equal(t, int64(5), next)
}

// primeFactorQuery walks from a plain Number root to its successor,
// coerces that successor down to Composite (value 11's successor, 12,
// is Composite), then walks primeFactor — an edge the schema only
// declares on Composite — exercising coerceVertex's drop-on-failure
// path together with a coercion-gated edge in the same query.
func primeFactorQuery() *ir.Query {
	return &ir.Query{
		Root: &ir.Component{
			RootVid: 1,
			RootParameters: map[string]ir.ParamValue{
				"min": {Literal: value.Int64(11)},
				"max": {Literal: value.Int64(11)},
			},
			Vertices: map[ir.Vid]*ir.Vertex{
				1: {Vid: 1, TypeName: "Number"},
				2: {Vid: 2, TypeName: "Composite", CoercedFrom: "Number"},
				3: {Vid: 3, TypeName: "Number", Outputs: []ir.Output{{Name: "factor", Field: ir.Local{Name: "value"}}}},
			},
			Edges: []*ir.Edge{
				{Eid: 1, From: 1, To: 2, Name: "successor"},
				{Eid: 2, From: 2, To: 3, Name: "primeFactor"},
			},
		},
		Variables: map[string]value.Type{},
	}
}

func TestPrimeFactorEdgeOnComposite(t *testing.T) {
	got := run(t, primeFactorQuery())
	require.Len(t, got, 2)
	var factors []int64
	for _, row := range got {
		f, _ := row["factor"].AsInt64()
		factors = append(factors, f)
	}
	assert.ElementsMatch(t, []int64{2, 3}, factors)
}

// coercionFailureQuery's successor (value 7's successor, 8) is also
// Composite, so coercing it down to Prime must drop the row entirely —
// not fall back to passing it through.
func coercionFailureQuery() *ir.Query {
	return &ir.Query{
		Root: &ir.Component{
			RootVid: 1,
			RootParameters: map[string]ir.ParamValue{
				"min": {Literal: value.Int64(7)},
				"max": {Literal: value.Int64(7)},
			},
			Vertices: map[ir.Vid]*ir.Vertex{
				1: {Vid: 1, TypeName: "Number"},
				2: {Vid: 2, TypeName: "Prime", CoercedFrom: "Number", Outputs: []ir.Output{{Name: "value", Field: ir.Local{Name: "value"}}}},
			},
			Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor"}},
		},
		Variables: map[string]value.Type{},
	}
}

func TestCoercionDropsNonMatchingRow(t *testing.T) {
	got := run(t, coercionFailureQuery())
	assert.Empty(t, got)
}

func multipleQuery() *ir.Query {
	return &ir.Query{
		Root: &ir.Component{
			RootVid: 1,
			RootParameters: map[string]ir.ParamValue{
				"min": {Literal: value.Int64(3)},
				"max": {Literal: value.Int64(3)},
			},
			Vertices: map[ir.Vid]*ir.Vertex{
				1: {Vid: 1, TypeName: "Number", Outputs: []ir.Output{{Name: "value", Field: ir.Local{Name: "value"}}}},
				2: {Vid: 2, TypeName: "Number", Outputs: []ir.Output{{Name: "mult", Field: ir.Local{Name: "value"}}}},
			},
			Edges: []*ir.Edge{{
				Eid: 1, From: 1, To: 2, Name: "multiple",
				Parameters: map[string]ir.ParamValue{"max": {Literal: value.Int64(3)}},
			}},
		},
		Variables: map[string]value.Type{},
	}
}

func TestMultipleEdgeOnPrimeStartsAtTwo(t *testing.T) {
	got := run(t, multipleQuery())
	require.Len(t, got, 2)
	var mults []int64
	for _, row := range got {
		m, _ := row["mult"].AsInt64()
		mults = append(mults, m)
	}
	assert.ElementsMatch(t, []int64{6, 9}, mults)
}
