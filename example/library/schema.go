package library

import "go.appointy.com/graphwalk/schema"

// Schema builds the vertex-type hierarchy this adapter is validated
// against: a "Publication" interface implemented by Book and Magazine,
// an "Author" type that wrote zero or more publications, and a "Tag"
// type reached by folding a publication's tag list — modeled on
// demo-hackernews's Item interface (implemented by Story and Job) with
// its byUser/byUsername author edges and comment-thread walk.
func Schema() *schema.Schema {
	s := schema.New("Publication")
	s.AddScalar("String")
	s.AddScalar("Int")

	publicationFields := map[string]*schema.Field{
		"title": {Name: "title", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
		"year":  {Name: "year", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "Int"}},
		"author": {
			Name: "author", Kind: schema.FieldEdge, NeighborType: "Author",
		},
		"tags": {
			Name: "tags", Kind: schema.FieldEdge, NeighborType: "Tag",
		},
	}
	_ = s.AddType(&schema.VertexType{Name: "Publication", IsInterface: true, Fields: publicationFields})

	_ = s.AddType(&schema.VertexType{
		Name:       "Book",
		Implements: []string{"Publication"},
		Fields: map[string]*schema.Field{
			"sequel": {Name: "sequel", Kind: schema.FieldEdge, NeighborType: "Book"},
		},
	})
	_ = s.AddType(&schema.VertexType{
		Name:       "Magazine",
		Implements: []string{"Publication"},
		Fields:     map[string]*schema.Field{},
	})

	_ = s.AddType(&schema.VertexType{
		Name: "Author",
		Fields: map[string]*schema.Field{
			"id":   {Name: "id", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
			"name": {Name: "name", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
			"wrote": {
				Name: "wrote", Kind: schema.FieldEdge, NeighborType: "Publication",
			},
		},
	})

	_ = s.AddType(&schema.VertexType{
		Name: "Tag",
		Fields: map[string]*schema.Field{
			"name": {Name: "name", Kind: schema.FieldProperty, PropertyType: schema.TypeRef{Base: "String"}},
		},
	})

	return s
}
