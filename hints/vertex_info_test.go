package hints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/hints"
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
		},
	}))
	s.AddScalar("Int")
	return s
}

func buildIndexed(t *testing.T, root *ir.Component, vars map[string]value.Type) *ir.IndexedQuery {
	t.Helper()
	q := &ir.Query{Root: root, Variables: vars}
	idx, err := ir.Index(q, numberSchema(t))
	require.NoError(t, err)
	return idx
}

func TestStaticallyKnownPropertyFromEquals(t *testing.T) {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {
				Vid:      1,
				TypeName: "Number",
				Filters: []ir.Filter{
					{Op: ir.Equals, Left: ir.Local{Name: "value"}, Right: ir.Variable{Name: "target"}},
				},
			},
		},
	}
	idx := buildIndexed(t, root, map[string]value.Type{"target": value.Named("Int", false)})

	info := hints.NewResolveInfo(idx, 1, map[string]value.Value{"target": value.Int64(42)})
	c, ok := info.StaticallyKnownProperty("value")
	require.True(t, ok)
	v, ok := c.SingleValue()
	require.True(t, ok)
	i, _ := v.AsInt64()
	assert.Equal(t, int64(42), i)
}

func TestStaticallyKnownPropertyRangeFromOrdering(t *testing.T) {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {
				Vid:      1,
				TypeName: "Number",
				Filters: []ir.Filter{
					{Op: ir.GreaterOrEqual, Left: ir.Local{Name: "value"}, Right: ir.Variable{Name: "lo"}},
					{Op: ir.LessThan, Left: ir.Local{Name: "value"}, Right: ir.Variable{Name: "hi"}},
				},
			},
		},
	}
	idx := buildIndexed(t, root, map[string]value.Type{
		"lo": value.Named("Int", false),
		"hi": value.Named("Int", false),
	})

	info := hints.NewResolveInfo(idx, 1, map[string]value.Value{"lo": value.Int64(0), "hi": value.Int64(10)})
	c, ok := info.StaticallyKnownProperty("value")
	require.True(t, ok)
	require.Equal(t, hints.RangeKind, c.Kind())
	r, _ := c.RangeBounds()
	lo, _ := r.Start.Value.AsInt64()
	hi, _ := r.End.Value.AsInt64()
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(10), hi)
}

func TestStaticallyKnownPropertyAbsentWhenUnfiltered(t *testing.T) {
	root := &ir.Component{
		RootVid:  1,
		Vertices: map[ir.Vid]*ir.Vertex{1: {Vid: 1, TypeName: "Number"}},
	}
	idx := buildIndexed(t, root, map[string]value.Type{})
	info := hints.NewResolveInfo(idx, 1, nil)
	_, ok := info.StaticallyKnownProperty("value")
	assert.False(t, ok)
}

func TestStaticallyKnownPropertyTagOperandIsDynamicNotStatic(t *testing.T) {
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {Vid: 1, TypeName: "Number", Tags: []ir.TagDecl{{Name: "v", Field: "value"}}},
			2: {
				Vid:      2,
				TypeName: "Number",
				Filters: []ir.Filter{
					{Op: ir.Equals, Left: ir.Local{Name: "value"}, Right: ir.Tag{Vid: 1, Name: "v"}},
				},
			},
		},
		Edges: []*ir.Edge{{Eid: 1, From: 1, To: 2, Name: "successor"}},
	}
	idx := buildIndexed(t, root, map[string]value.Type{})
	info := hints.NewResolveInfo(idx, 2, nil)
	_, ok := info.StaticallyKnownProperty("value")
	assert.False(t, ok)
}

func TestEdgesWithNameDistinguishesFoldedAndMandatory(t *testing.T) {
	foldComp := &ir.Component{RootVid: 2, Vertices: map[ir.Vid]*ir.Vertex{2: {Vid: 2, TypeName: "Number"}}}
	root := &ir.Component{
		RootVid: 1,
		Vertices: map[ir.Vid]*ir.Vertex{
			1: {Vid: 1, TypeName: "Number"},
			3: {Vid: 3, TypeName: "Number"},
		},
		Edges: []*ir.Edge{{Eid: 2, From: 1, To: 3, Name: "successor", Optional: true}},
		Folds: []*ir.Fold{{Eid: 1, From: 1, To: 2, Name: "successor", Component: foldComp}},
	}
	idx := buildIndexed(t, root, map[string]value.Type{})
	info := hints.NewResolveInfo(idx, 1, nil)

	edges := info.EdgesWithName("successor")
	require.Len(t, edges, 2)
	assert.True(t, edges[0].Folded)
	assert.False(t, edges[1].Folded)
	assert.True(t, edges[1].Optional)

	_, ok := info.FirstMandatoryEdge("successor")
	assert.False(t, ok, "both edges are non-mandatory (one folded, one optional)")
}
