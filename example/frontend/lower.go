// Package frontend lowers GraphQL-flavored query text (extended with
// @output/@filter/@tag/@optional/@fold/@recurse/@transform directives,
// per spec §6) into an *ir.Query, the same shape example/numbers and
// example/library's tests build by hand. It exists to give
// github.com/graphql-go/graphql's parser a concrete home: the core never
// parses query text itself (ir's package doc), so this package is where
// that dependency's AST actually gets walked.
//
// Grounded on trustfall_core's own frontend (graphql_query/directives.rs
// for the directive argument grammar) and, for the shape of "walk an AST
// and build something else from it," on the teacher's schemabuilder
// package (which walks Go struct tags to build a graphql.Schema rather
// than a query, but shares the recursive-descent-over-an-AST structure).
package frontend

import (
	"github.com/graphql-go/graphql/language/ast"

	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/schema"
	"go.appointy.com/graphwalk/value"
)

// Compile parses queryText and lowers it into an *ir.Query against sch.
// Declared variable types come from the query's own GraphQL variable
// definitions (e.g. "query($min: Int) { ... }"); the caller still
// supplies variable *values* separately, at interpret time.
//
// The returned Query is not yet validated against sch — pass it to
// ir.Index before interpreting, exactly as example/numbers and
// example/library's hand-built queries do.
func Compile(queryText string, sch *schema.Schema) (*ir.Query, error) {
	doc, err := parseDocument(queryText)
	if err != nil {
		return nil, err
	}
	rootField, varDefs, err := rootSelection(doc)
	if err != nil {
		return nil, err
	}
	if rootField.Name == nil {
		return nil, errorf("", "root field has no name")
	}
	if rootField.SelectionSet == nil || len(rootField.SelectionSet.Selections) == 0 {
		return nil, errorf(rootField.Name.Value, "root field requires a sub-selection")
	}

	b := &builder{sch: sch, nextVid: 2, nextEid: 1, variables: map[string]value.Type{}}
	for _, vd := range varDefs {
		if vd.Variable == nil || vd.Variable.Name == nil {
			return nil, errorf("", "malformed variable definition")
		}
		t, err := typeFromAST(vd.Type)
		if err != nil {
			return nil, err
		}
		b.variables[vd.Variable.Name.Value] = t
	}

	rootParams, err := b.arguments(rootField.Arguments)
	if err != nil {
		return nil, err
	}

	comp := &ir.Component{RootVid: 1, RootParameters: rootParams, Vertices: map[ir.Vid]*ir.Vertex{}}
	if err := b.buildVertex(comp, 1, rootField.Name.Value, "", rootField.SelectionSet); err != nil {
		return nil, err
	}

	return &ir.Query{Root: comp, Variables: b.variables}, nil
}

// builder accumulates the query-wide vid/eid counters and declared
// variable types while lowering one Compile call's AST. Vid/Eid are
// unique across the whole query (every nested fold included), not just
// within one component, per ir.Index's eid-ordering invariant.
type builder struct {
	sch       *schema.Schema
	nextVid   ir.Vid
	nextEid   ir.Eid
	variables map[string]value.Type
}

func (b *builder) arguments(args []*ast.Argument) (map[string]ir.ParamValue, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make(map[string]ir.ParamValue, len(args))
	for _, a := range args {
		if a.Name == nil {
			return nil, errorf("", "argument has no name")
		}
		if v, ok := a.Value.(*ast.Variable); ok {
			if v.Name == nil {
				return nil, errorf(a.Name.Value, "variable reference has no name")
			}
			out[a.Name.Value] = ir.ParamValue{Variable: v.Name.Value}
			continue
		}
		lit, err := literalValue(a.Value)
		if err != nil {
			return nil, err
		}
		out[a.Name.Value] = ir.ParamValue{Literal: lit}
	}
	return out, nil
}

// flattenFragment splits sel's selections into plain fields and (at
// most one) inline fragment, standard GraphQL syntax for type coercion
// ("... on Subtype { ... }"); trustfall_core's own frontend sources in
// this corpus cover directive grammar only, not coercion syntax, so this
// follows plain GraphQL instead of inventing a bespoke directive for it.
// The fragment's own fields are merged into the vertex's field list,
// resolved against the coerced-to type.
func flattenFragment(sel *ast.SelectionSet, typeName string) (fields []*ast.Field, effectiveType, coercedFrom string, err error) {
	effectiveType = typeName
	for _, s := range sel.Selections {
		switch node := s.(type) {
		case *ast.Field:
			fields = append(fields, node)
		case *ast.InlineFragment:
			if coercedFrom != "" {
				return nil, "", "", errorf("", "a vertex may only be coerced once")
			}
			if node.TypeCondition == nil || node.TypeCondition.Name == nil {
				return nil, "", "", errorf("", "inline fragment is missing a type condition")
			}
			coercedFrom = typeName
			effectiveType = node.TypeCondition.Name.Value
			if node.SelectionSet == nil {
				continue
			}
			innerFields, _, innerCoerced, err := flattenFragment(node.SelectionSet, effectiveType)
			if err != nil {
				return nil, "", "", err
			}
			if innerCoerced != "" {
				return nil, "", "", errorf("", "nested type coercion is not supported")
			}
			fields = append(fields, innerFields...)
		default:
			return nil, "", "", errorf("", "unsupported selection kind %T", s)
		}
	}
	return fields, effectiveType, coercedFrom, nil
}

// buildVertex fully populates comp.Vertices[vid] (filters, outputs,
// tags) and appends any edge/fold children to comp (or, for a fold
// child, to the fold's own freshly created sub-component).
func (b *builder) buildVertex(comp *ir.Component, vid ir.Vid, typeName, coercedFrom string, sel *ast.SelectionSet) error {
	fields, effectiveType, innerCoercedFrom, err := flattenFragment(sel, typeName)
	if err != nil {
		return err
	}
	if innerCoercedFrom != "" {
		coercedFrom = innerCoercedFrom
		typeName = effectiveType
	}

	v := &ir.Vertex{Vid: vid, TypeName: typeName, CoercedFrom: coercedFrom}
	comp.Vertices[vid] = v

	for _, f := range fields {
		if f.Name == nil {
			return errorf("", "field has no name")
		}
		name := f.Name.Value
		fieldDef, err := b.sch.Field(typeName, name)
		if err != nil {
			return errorf(name, "%v", err)
		}
		switch fieldDef.Kind {
		case schema.FieldProperty:
			if err := b.buildProperty(v, name, f); err != nil {
				return err
			}
		case schema.FieldEdge:
			if err := b.buildEdge(comp, vid, name, fieldDef, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildProperty lowers a leaf (property-kind) field's directives onto v:
// @tag declares a capture, @filter(s) add vertex filters, @output
// projects the (possibly @transform-wrapped) value.
func (b *builder) buildProperty(v *ir.Vertex, propName string, f *ast.Field) error {
	for _, forbidden := range []string{"optional", "fold", "recurse"} {
		if directiveByName(f.Directives, forbidden) != nil {
			return errorf(propName, "@%s may only be attached to an edge field", forbidden)
		}
	}
	if f.SelectionSet != nil && len(f.SelectionSet.Selections) > 0 {
		return errorf(propName, "a property field may not have a sub-selection")
	}

	defaultName := propName
	if f.Alias != nil {
		defaultName = f.Alias.Value
	}

	var ref ir.FieldRef = ir.Local{Name: propName}
	chain, err := buildTransformChain(directivesByName(f.Directives, "transform"))
	if err != nil {
		return err
	}
	if len(chain) > 0 {
		ref = ir.Transformed{Inner: ref, Chain: chain}
	}

	if tagDir := directiveByName(f.Directives, "tag"); tagDir != nil {
		name, err := outputOrTagName("@tag", tagDir, defaultName)
		if err != nil {
			return err
		}
		v.Tags = append(v.Tags, ir.TagDecl{Name: name, Field: propName})
	}

	for _, filterDir := range directivesByName(f.Directives, "filter") {
		filt, err := buildFilter(ref, filterDir)
		if err != nil {
			return err
		}
		v.Filters = append(v.Filters, filt)
	}

	if outDir := directiveByName(f.Directives, "output"); outDir != nil {
		name, err := outputOrTagName("@output", outDir, defaultName)
		if err != nil {
			return err
		}
		v.Outputs = append(v.Outputs, ir.Output{Name: name, Field: ref})
	}

	return nil
}

// buildEdge lowers an edge-kind field into an ir.Edge (plain, optional,
// or recursive) or, under @fold, an ir.Fold with its own sub-component,
// then recurses into the field's sub-selection to build the destination
// vertex.
func (b *builder) buildEdge(comp *ir.Component, fromVid ir.Vid, edgeName string, fieldDef *schema.Field, f *ast.Field) error {
	params, err := b.arguments(f.Arguments)
	if err != nil {
		return err
	}

	optDir := directiveByName(f.Directives, "optional")
	foldDir := directiveByName(f.Directives, "fold")
	recurseDir := directiveByName(f.Directives, "recurse")
	if foldDir != nil && (optDir != nil || recurseDir != nil) {
		return errorf(edgeName, "@fold cannot be combined with @optional or @recurse")
	}

	eid := b.nextEid
	b.nextEid++
	toVid := b.nextVid
	b.nextVid++

	if foldDir != nil {
		return b.buildFold(comp, fromVid, toVid, eid, edgeName, fieldDef, params, f)
	}

	edge := &ir.Edge{Eid: eid, From: fromVid, To: toVid, Name: edgeName, Parameters: params}
	if optDir != nil {
		edge.Optional = true
	}
	if recurseDir != nil {
		depth, err := recurseDepth(recurseDir)
		if err != nil {
			return err
		}
		edge.Recursion = &ir.Recursion{Depth: depth}
	}

	for _, forbidden := range []string{"output", "filter", "tag"} {
		if directiveByName(f.Directives, forbidden) != nil {
			return errorf(edgeName, "@%s may only be attached to a property field or a folded edge", forbidden)
		}
	}
	if f.SelectionSet == nil || len(f.SelectionSet.Selections) == 0 {
		return errorf(edgeName, "edge field requires a sub-selection")
	}

	comp.Edges = append(comp.Edges, edge)
	return b.buildVertex(comp, toVid, fieldDef.NeighborType, "", f.SelectionSet)
}

// buildFold lowers a @fold-annotated edge field: the fold's own
// directly-projected aggregate (an optional @transform chain plus
// @output/@filter, per spec §6/§9) and its sub-component, rooted at a
// fresh vertex built from the field's sub-selection.
func (b *builder) buildFold(comp *ir.Component, fromVid, toVid ir.Vid, eid ir.Eid, edgeName string, fieldDef *schema.Field, params map[string]ir.ParamValue, f *ast.Field) error {
	if directiveByName(f.Directives, "tag") != nil {
		return errorf(edgeName, "@tag may not be attached to a folded edge")
	}

	fold := &ir.Fold{Eid: eid, From: fromVid, To: toVid, Name: edgeName, Parameters: params}

	chain, err := buildTransformChain(directivesByName(f.Directives, "transform"))
	if err != nil {
		return err
	}
	fold.Transforms = chain

	for _, filterDir := range directivesByName(f.Directives, "filter") {
		filt, err := buildFilter(ir.FoldAggregate{Eid: eid}, filterDir)
		if err != nil {
			return err
		}
		fold.PostFilters = append(fold.PostFilters, filt)
	}

	if outDir := directiveByName(f.Directives, "output"); outDir != nil {
		defaultName := edgeName
		if f.Alias != nil {
			defaultName = f.Alias.Value
		}
		name, err := outputOrTagName("@output", outDir, defaultName)
		if err != nil {
			return err
		}
		fold.OutputName = name
	}

	if f.SelectionSet == nil || len(f.SelectionSet.Selections) == 0 {
		return errorf(edgeName, "folded edge requires a sub-selection")
	}

	sub := &ir.Component{RootVid: toVid, Vertices: map[ir.Vid]*ir.Vertex{}}
	fold.Component = sub
	comp.Folds = append(comp.Folds, fold)

	return b.buildVertex(sub, toVid, fieldDef.NeighborType, "", f.SelectionSet)
}
