package numbers

import "go.appointy.com/graphwalk/schema"

// Schema builds the vertex-type hierarchy every query against this
// adapter is validated against: a "Number" interface implemented by
// Prime, Composite, and Neither, matching the three NumbersToken variants
// in numbers_interpreter.rs.
func Schema() *schema.Schema {
	s := schema.New("Number")
	s.AddScalar("Int")
	s.AddScalar("String")

	properties := map[string]*schema.Field{
		"value":       {Name: "value", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "Int"}},
		"name":        {Name: "name", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String", Nullable: true}},
		"vowelsInName": {Name: "vowelsInName", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String", Nullable: false, ListLayers: []bool{true}}},
	}
	edges := map[string]*schema.Field{
		"predecessor": {Name: "predecessor", Kind: schema.FieldEdge, NeighborType: "Number"},
		"successor":   {Name: "successor", Kind: schema.FieldEdge, NeighborType: "Number"},
		"multiple": {
			Name: "multiple", Kind: schema.FieldEdge, NeighborType: "Number",
			Parameters: map[string]schema.TypeRef{"max": {Base: "Int"}},
		},
	}

	numberFields := map[string]*schema.Field{}
	for name, f := range properties {
		numberFields[name] = f
	}
	for name, f := range edges {
		numberFields[name] = f
	}
	_ = s.AddType(&schema.VertexType{Name: "Number", IsInterface: true, Fields: numberFields})

	_ = s.AddType(&schema.VertexType{Name: "Neither", Implements: []string{"Number"}, Fields: map[string]*schema.Field{}})
	_ = s.AddType(&schema.VertexType{Name: "Prime", Implements: []string{"Number"}, Fields: map[string]*schema.Field{}})
	_ = s.AddType(&schema.VertexType{Name: "Composite", Implements: []string{"Number"}, Fields: map[string]*schema.Field{
		"primeFactor": {Name: "primeFactor", Kind: schema.FieldEdge, NeighborType: "Number"},
	}})

	return s
}
