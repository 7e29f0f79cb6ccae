package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/schema"
)

func buildAnimalSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New("Query")

	require.NoError(t, s.AddType(&schema.VertexType{
		Name:        "Named",
		IsInterface: true,
		Fields: map[string]*schema.Field{
			"name": {Name: "name", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
		},
	}))

	require.NoError(t, s.AddType(&schema.VertexType{
		Name:       "Dog",
		Implements: []string{"Named"},
		Fields: map[string]*schema.Field{
			"name":  {Name: "name", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
			"breed": {Name: "breed", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
		},
	}))

	s.AddScalar("String")
	return s
}

func TestIsSubtype(t *testing.T) {
	s := buildAnimalSchema(t)
	assert.True(t, s.IsSubtype("Dog", "Named"))
	assert.True(t, s.IsSubtype("Dog", "Dog"))
	assert.False(t, s.IsSubtype("Named", "Dog"))
	assert.False(t, s.IsSubtype("Dog", "Cat"))
}

func TestFieldOriginResolvesInherited(t *testing.T) {
	s := buildAnimalSchema(t)

	origin, f, err := s.FieldOrigin("Dog", "name")
	require.NoError(t, err)
	assert.Equal(t, "Named", origin)
	assert.Equal(t, "String", f.PropertyType.Base)

	origin, _, err = s.FieldOrigin("Dog", "breed")
	require.NoError(t, err)
	assert.Equal(t, "Dog", origin)
}

func TestFieldOriginErrorsOnDisagreement(t *testing.T) {
	s := schema.New("Query")
	require.NoError(t, s.AddType(&schema.VertexType{
		Name: "A", IsInterface: true,
		Fields: map[string]*schema.Field{"x": {Name: "x", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "Int"}}},
	}))
	require.NoError(t, s.AddType(&schema.VertexType{
		Name: "B", IsInterface: true,
		Fields: map[string]*schema.Field{"x": {Name: "x", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}}},
	}))
	require.NoError(t, s.AddType(&schema.VertexType{
		Name: "C", Implements: []string{"A", "B"},
	}))

	_, _, err := s.FieldOrigin("C", "x")
	assert.Error(t, err)
}

func TestFieldUnknown(t *testing.T) {
	s := buildAnimalSchema(t)
	_, err := s.Field("Dog", "nonexistent")
	assert.Error(t, err)
}
