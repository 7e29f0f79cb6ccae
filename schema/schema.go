// Package schema implements the schema abstraction the interpreter
// validates and executes queries against: named vertex types with
// inheritance, their fields (properties and edges), and the subtype
// relation derived from `implements`.
//
// Grounded on go.appointy.com/graphwalk's teacher package `graphql`
// (graphql.Schema/Object/Interface/Field), generalized from jaal's
// GraphQL-server type system (which only needs enough structure to
// resolve and marshal a single selection set) into the richer vertex/edge
// abstraction the query engine's interpreter needs to walk.
package schema

import "fmt"

// FieldKind distinguishes a scalar/property field from an edge field.
type FieldKind int

const (
	FieldProperty FieldKind = iota
	FieldEdge
)

// Field is a named member of a VertexType: either a property (leaf
// value) or an edge (a relation to zero or more neighbor vertices).
type Field struct {
	Name string
	Kind FieldKind

	// PropertyType is set when Kind == FieldProperty.
	PropertyType TypeRef

	// NeighborType/Parameters are set when Kind == FieldEdge.
	NeighborType string
	Parameters   map[string]TypeRef
}

// TypeRef is a lightweight reference to a named type plus a list-modifier
// stack, mirroring value.Type's shape without importing package value;
// ir converts a TypeRef into a value.Type via value.Named/value.ListOf.
type TypeRef struct {
	Base     string
	Nullable bool
	// ListLayers describes list nesting outward from the base; each entry
	// is that layer's nullability. Empty means a non-list type.
	ListLayers []bool
}

// VertexType is a named object or interface type in the schema.
type VertexType struct {
	Name        string
	IsInterface bool
	Implements  []string // names of interfaces this type implements
	Fields      map[string]*Field
}

// Schema is the set of vertex types plus scalars and the name of the
// designated root query type. ir.Index does not check a query's root
// vertex type against RootQuery.
type Schema struct {
	Types      map[string]*VertexType
	Scalars    map[string]bool
	RootQuery  string
}

// New returns an empty schema ready to receive vertex types via AddType.
func New(rootQuery string) *Schema {
	return &Schema{
		Types:     map[string]*VertexType{},
		Scalars:   map[string]bool{},
		RootQuery: rootQuery,
	}
}

// AddType registers a vertex type. Returns an error on duplicate names.
func (s *Schema) AddType(vt *VertexType) error {
	if _, ok := s.Types[vt.Name]; ok {
		return fmt.Errorf("schema: duplicate vertex type %q", vt.Name)
	}
	s.Types[vt.Name] = vt
	return nil
}

// AddScalar registers a scalar type name (Int, String, custom scalars, ...).
func (s *Schema) AddScalar(name string) { s.Scalars[name] = true }

// IsSubtype reports whether `sub` is the same type as `super`, or
// declares (transitively) that it implements `super`. Ignores
// nullability entirely, since the subtype relation is about vertex
// identity, not the value-level type descriptor.
func (s *Schema) IsSubtype(sub, super string) bool {
	if sub == super {
		return true
	}
	visited := map[string]bool{}
	var walk func(name string) bool
	walk = func(name string) bool {
		if visited[name] {
			return false
		}
		visited[name] = true
		vt, ok := s.Types[name]
		if !ok {
			return false
		}
		for _, iface := range vt.Implements {
			if iface == super {
				return true
			}
			if walk(iface) {
				return true
			}
		}
		return false
	}
	return walk(sub)
}

// FieldOrigin resolves which ancestor (including typ itself) originates
// the named field on typ, by walking typ and everything it (transitively)
// implements. It returns an error if two unrelated ancestors both define
// the field with disagreeing types: spec §3 makes this an error rather
// than a silent pick.
func (s *Schema) FieldOrigin(typ, field string) (origin string, f *Field, err error) {
	type found struct {
		origin string
		field  *Field
	}
	var all []found

	visited := map[string]bool{}
	var walk func(name string)
	walk = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		vt, ok := s.Types[name]
		if !ok {
			return
		}
		if fld, ok := vt.Fields[field]; ok {
			all = append(all, found{origin: name, field: fld})
		}
		for _, iface := range vt.Implements {
			walk(iface)
		}
	}
	walk(typ)

	if len(all) == 0 {
		return "", nil, fmt.Errorf("schema: type %q has no field %q", typ, field)
	}

	first := all[0]
	for _, other := range all[1:] {
		if !fieldTypesAgree(first.field, other.field) {
			return "", nil, fmt.Errorf(
				"schema: field %q on %q is ambiguous between ancestors %q and %q with disagreeing types",
				field, typ, first.origin, other.origin)
		}
	}
	origin, f = first.origin, first.field
	for _, other := range all[1:] {
		if s.IsSubtype(origin, other.origin) {
			origin, f = other.origin, other.field
		}
	}
	return origin, f, nil
}

func fieldTypesAgree(a, b *Field) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == FieldProperty {
		return a.PropertyType.Base == b.PropertyType.Base && len(a.PropertyType.ListLayers) == len(b.PropertyType.ListLayers)
	}
	return a.NeighborType == b.NeighborType
}

// Field looks up a field by name on typ, resolving through FieldOrigin so
// inherited fields are found without duplicating definitions on every
// implementor.
func (s *Schema) Field(typ, field string) (*Field, error) {
	_, f, err := s.FieldOrigin(typ, field)
	return f, err
}
