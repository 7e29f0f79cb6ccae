package ir

import (
	"sort"

	"go.appointy.com/graphwalk/qerr"
	"go.appointy.com/graphwalk/schema"
	"go.appointy.com/graphwalk/transform"
	"go.appointy.com/graphwalk/value"
)

// EdgeOrFold is a uniform view over an Edge or a Fold, since both are
// indexed by Eid and walked in the same eid-ascending order (spec §4.1).
type EdgeOrFold struct {
	Edge *Edge
	Fold *Fold
}

func (ef EdgeOrFold) From() Vid {
	if ef.Edge != nil {
		return ef.Edge.From
	}
	return ef.Fold.From
}

func (ef EdgeOrFold) To() Vid {
	if ef.Edge != nil {
		return ef.Edge.To
	}
	return ef.Fold.To
}

func (ef EdgeOrFold) ID() Eid {
	if ef.Edge != nil {
		return ef.Edge.Eid
	}
	return ef.Fold.Eid
}

func (ef EdgeOrFold) edgeName() string {
	if ef.Edge != nil {
		return ef.Edge.Name
	}
	return ef.Fold.Name
}

// OutputDescriptor describes one named output in the global output
// schema: which field it projects and its fully-wrapped result type
// (one extra list layer per enclosing fold, per spec §3 invariant 7).
type OutputDescriptor struct {
	Vid   Vid
	Field FieldRef
	Type  value.Type
}

// IndexedQuery is a Query augmented with the indices and validation the
// interpreter relies on: vid -> vertex/component, eid -> edge-or-fold,
// and name -> output descriptor.
type IndexedQuery struct {
	Query  *Query
	Schema *schema.Schema

	Vertices        map[Vid]*Vertex
	VertexComponent map[Vid]*Component
	VertexFoldDepth map[Vid]int

	Edges     map[Eid]EdgeOrFold
	FoldDepth map[Eid]int

	Outputs map[string]OutputDescriptor

	tagOwner map[string]Vid // tag name -> declaring vid, populated during indexing
}

// Index validates q against sch and builds an IndexedQuery, or returns a
// *qerr.Error describing the first violated invariant (spec §3, §4.1).
func Index(q *Query, sch *schema.Schema) (*IndexedQuery, error) {
	if q.Root == nil {
		return nil, qerr.Index("query has no root component")
	}

	idx := &IndexedQuery{
		Query:           q,
		Schema:          sch,
		Vertices:        map[Vid]*Vertex{},
		VertexComponent: map[Vid]*Component{},
		VertexFoldDepth: map[Vid]int{},
		Edges:           map[Eid]EdgeOrFold{},
		FoldDepth:       map[Eid]int{},
		Outputs:         map[string]OutputDescriptor{},
		tagOwner:        map[string]Vid{},
	}

	type pendingEdge struct {
		ef    EdgeOrFold
		depth int
	}
	var pending []pendingEdge

	// Collect every component's edges/folds depth-first, tagging each
	// with its fold nesting depth. Eid/vid ordering is validated below,
	// once every edge across every component has been gathered into one
	// globally eid-sortable list.
	var collect func(comp *Component, depth int) error
	collect = func(comp *Component, depth int) error {
		if _, ok := comp.Vertices[comp.RootVid]; !ok {
			return qerr.Index("component root vid %d is not a vertex of that component", comp.RootVid)
		}
		for _, e := range comp.Edges {
			pending = append(pending, pendingEdge{ef: EdgeOrFold{Edge: e}, depth: depth})
		}
		for _, f := range comp.Folds {
			pending = append(pending, pendingEdge{ef: EdgeOrFold{Fold: f}, depth: depth})
			if err := collect(f.Component, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(q.Root, 0); err != nil {
		return nil, err
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].ef.ID() < pending[j].ef.ID() })

	if err := idx.registerVertex(q.Root, q.Root.RootVid, 0); err != nil {
		return nil, err
	}

	seen := map[Eid]bool{}
	for _, pe := range pending {
		ef := pe.ef
		eid := ef.ID()
		if seen[eid] {
			return nil, qerr.Index("duplicate eid %d", eid)
		}
		seen[eid] = true

		fromVid, toVid := ef.From(), ef.To()

		if _, ok := idx.Vertices[fromVid]; !ok {
			return nil, qerr.Index("edge %d references from-vid %d before it is visited", eid, fromVid)
		}
		if int(toVid) != int(eid)+1 {
			return nil, qerr.Index("edge %d has to-vid %d, expected eid+1 = %d", eid, toVid, int(eid)+1)
		}
		if _, ok := idx.Vertices[toVid]; ok {
			return nil, qerr.Index("duplicate vid %d", toVid)
		}

		fromType := idx.Vertices[fromVid].TypeName
		edgeField, err := idx.Schema.Field(fromType, ef.edgeName())
		if err != nil {
			return nil, qerr.Index("edge %d: %v", eid, err)
		}
		if edgeField.Kind != schema.FieldEdge {
			return nil, qerr.Index("edge %d: field %q on %q is a property, not an edge", eid, ef.edgeName(), fromType)
		}

		var toComponent *Component
		var toDepth int
		if ef.Edge != nil {
			parentComp := idx.VertexComponent[fromVid]
			if _, ok := parentComp.Vertices[toVid]; !ok {
				return nil, qerr.Index("edge %d connects vertices in different components", eid)
			}
			toComponent = parentComp
			toDepth = pe.depth
		} else {
			fold := ef.Fold
			if fold.Component.RootVid != toVid {
				return nil, qerr.Index("fold %d's to-vid %d does not match its sub-component root %d", eid, toVid, fold.Component.RootVid)
			}
			toComponent = fold.Component
			toDepth = pe.depth + 1
			idx.FoldDepth[eid] = toDepth
		}
		toType := toComponent.Vertices[toVid].TypeName
		if !idx.Schema.IsSubtype(toType, edgeField.NeighborType) {
			return nil, qerr.Index("edge %d: destination type %q is not a subtype of declared neighbor type %q", eid, toType, edgeField.NeighborType)
		}
		idx.Edges[eid] = ef

		if err := idx.registerVertex(toComponent, toVid, toDepth); err != nil {
			return nil, err
		}
	}

	// Fold post-filters and directly-projected aggregates are validated
	// last, since a fold's post-filters may reference tags declared
	// anywhere inside the fold's own sub-component, which is only fully
	// registered once every vertex in the eid-ordered walk above is done.
	for _, pe := range pending {
		if pe.ef.Fold == nil {
			continue
		}
		fold := pe.ef.Fold
		for _, f := range fold.PostFilters {
			if err := idx.validateFilter(fold.Component.RootVid, f); err != nil {
				return nil, err
			}
		}
		if fold.OutputName != "" {
			if _, dup := idx.Outputs[fold.OutputName]; dup {
				return nil, qerr.Index("duplicate output name %q", fold.OutputName)
			}
			t := idx.foldAggregateType(fold)
			idx.Outputs[fold.OutputName] = OutputDescriptor{Vid: fold.To, Field: FoldAggregate{Eid: fold.Eid}, Type: t}
		}
	}

	return idx, nil
}

// registerVertex inserts vid into the indices, then validates and
// indexes its filters, outputs, and tag declarations. Must be called in
// an order such that every tag and variable a vertex's filters reference
// has already been registered, which holds by construction since
// vertices are visited in eid-ascending (equivalently vid-ascending)
// order.
func (idx *IndexedQuery) registerVertex(comp *Component, vid Vid, depth int) error {
	v, ok := comp.Vertices[vid]
	if !ok {
		return qerr.Index("component has no vertex for vid %d", vid)
	}
	if _, dup := idx.Vertices[vid]; dup {
		return qerr.Index("duplicate vid %d", vid)
	}

	if _, ok := idx.Schema.Types[v.TypeName]; !ok {
		return qerr.Index("vid %d has unknown type %q", vid, v.TypeName)
	}

	idx.Vertices[vid] = v
	idx.VertexComponent[vid] = comp
	idx.VertexFoldDepth[vid] = depth

	for _, t := range v.Tags {
		if _, dup := idx.tagOwner[t.Name]; dup {
			return qerr.Index("duplicate tag name %q", t.Name)
		}
		if _, err := idx.Schema.Field(v.TypeName, t.Field); err != nil {
			return qerr.Index("tag %%%s: %v", t.Name, err)
		}
		idx.tagOwner[t.Name] = vid
	}

	for _, f := range v.Filters {
		if err := idx.validateFilter(vid, f); err != nil {
			return err
		}
	}

	for _, o := range v.Outputs {
		if _, dup := idx.Outputs[o.Name]; dup {
			return qerr.Index("duplicate output name %q", o.Name)
		}
		t, err := idx.resolveFieldType(vid, o.Field)
		if err != nil {
			return err
		}
		for i := 0; i < depth; i++ {
			t = value.ListOf(t, false)
		}
		idx.Outputs[o.Name] = OutputDescriptor{Vid: vid, Field: o.Field, Type: t}
	}

	return nil
}

func (idx *IndexedQuery) validateFilter(localVid Vid, f Filter) error {
	leftType, err := idx.resolveFieldType(localVid, f.Left)
	if err != nil {
		return err
	}

	if f.Op.IsUnary() {
		return nil
	}
	if f.Right == nil {
		return qerr.Index("filter %s requires a right operand", f.Op)
	}

	switch r := f.Right.(type) {
	case Variable:
		expected, hasVar, err := VariableType(f.Op, leftType)
		if err != nil {
			return qerr.Index("%v", err)
		}
		if !hasVar {
			return nil
		}
		declared, ok := idx.Query.Variables[r.Name]
		if !ok {
			return qerr.Index("undefined variable $%s", r.Name)
		}
		if !value.IsSubtype(declared, expected) {
			return qerr.Index("variable $%s of type %s is not a subtype of expected type %s", r.Name, declared, expected)
		}
	case Tag:
		if _, ok := idx.tagOwner[r.Name]; !ok {
			return qerr.Index("tag %%%s used before it is declared", r.Name)
		}
	default:
		return qerr.Index("unsupported right operand type %T", f.Right)
	}
	return nil
}

// resolveFieldType computes the value.Type of a FieldRef as seen at the
// vertex currently being visited (localVid).
func (idx *IndexedQuery) resolveFieldType(localVid Vid, ref FieldRef) (value.Type, error) {
	switch r := ref.(type) {
	case Local:
		return idx.fieldTypeOnVertex(localVid, r.Name)
	case Context:
		return idx.fieldTypeOnVertex(r.Vid, r.Name)
	case FoldAggregate:
		fold := idx.lookupFold(r.Eid)
		if fold == nil {
			return value.Type{}, qerr.Index("fold aggregate references unknown eid %d", r.Eid)
		}
		return idx.foldAggregateType(fold), nil
	case Transformed:
		inner, err := idx.resolveFieldType(localVid, r.Inner)
		if err != nil {
			return value.Type{}, err
		}
		return chainResultType(inner, r.Chain), nil
	default:
		return value.Type{}, qerr.Index("unsupported field ref type %T", ref)
	}
}

func (idx *IndexedQuery) fieldTypeOnVertex(vid Vid, name string) (value.Type, error) {
	v, ok := idx.Vertices[vid]
	if !ok {
		return value.Type{}, qerr.Index("field ref to unregistered vid %d", vid)
	}
	f, err := idx.Schema.Field(v.TypeName, name)
	if err != nil {
		return value.Type{}, qerr.Index("%v", err)
	}
	if f.Kind != schema.FieldProperty {
		return value.Type{}, qerr.Index("field %q on %q is an edge, not a property", name, v.TypeName)
	}
	return typeRefToValueType(f.PropertyType), nil
}

func (idx *IndexedQuery) lookupFold(eid Eid) *Fold {
	ef, ok := idx.Edges[eid]
	if !ok || ef.Fold == nil {
		return nil
	}
	return ef.Fold
}

// foldAggregateType infers the result type of a fold's own (un-nested)
// transform chain, which always starts from the fold's subcontext count
// (a non-nullable UInt), per spec §4.4.
func (idx *IndexedQuery) foldAggregateType(fold *Fold) value.Type {
	return chainResultType(value.Named("UInt", false), fold.Transforms)
}

// typeRefToValueType converts a schema.TypeRef into a value.Type,
// wrapping list layers from innermost to outermost.
func typeRefToValueType(tr schema.TypeRef) value.Type {
	t := value.Named(tr.Base, tr.Nullable)
	for i := len(tr.ListLayers) - 1; i >= 0; i-- {
		t = value.ListOf(t, tr.ListLayers[i])
	}
	return t
}

// chainResultType applies transform.ResultKind's per-step kind inference
// to a starting value.Type, producing the value.Type a FieldRef's
// transform chain resolves to. Transform outputs are always non-nullable
// except where the chain null-propagates, which the interpreter (not the
// static indexer) decides per-row; statically we report the non-null
// result kind's canonical type.
func chainResultType(start value.Type, chain []Transform) value.Type {
	kinds := make([]transform.Kind, len(chain))
	for i, step := range chain {
		kinds[i] = step.Kind
	}
	resultKind := transform.ResultKind(kinds, startKind(start))
	return kindToType(resultKind)
}

func startKind(t value.Type) value.Kind {
	switch t.Base() {
	case "Int":
		return value.KindInt64
	case "UInt":
		return value.KindUint64
	case "Float":
		return value.KindFloat64
	case "Boolean":
		return value.KindBool
	case "String", "ID":
		return value.KindString
	default:
		return value.KindString
	}
}

func kindToType(k value.Kind) value.Type {
	switch k {
	case value.KindInt64:
		return value.Named("Int", false)
	case value.KindUint64:
		return value.Named("UInt", false)
	case value.KindFloat64:
		return value.Named("Float", false)
	case value.KindBool:
		return value.Named("Boolean", false)
	default:
		return value.Named("String", false)
	}
}
