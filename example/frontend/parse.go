package frontend

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"go.appointy.com/graphwalk/value"
)

// parseDocument parses query text into a GraphQL AST, using the same
// parser package the teacher's schemabuilder/introspection code already
// depends on for schema-definition-language parsing. This package only
// ever reads the resulting AST; it never builds a graphql.Schema or
// executes anything through graphql-go/graphql's own executor.
func parseDocument(queryText string) (*ast.Document, error) {
	doc, err := parser.Parse(parser.ParseParams{Source: queryText})
	if err != nil {
		return nil, errorf("", "%v", err)
	}
	return doc, nil
}

// rootSelection returns the single top-level field of queryText's sole
// operation: spec §6's query syntax has exactly one root entry point per
// query (e.g. "Number(min: 0, max: 2) { ... }"), unlike general GraphQL
// which allows multiple top-level fields.
func rootSelection(doc *ast.Document) (*ast.Field, []*ast.VariableDefinition, error) {
	var op *ast.OperationDefinition
	for _, def := range doc.Definitions {
		o, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if op != nil {
			return nil, nil, errorf("", "query text must contain exactly one operation")
		}
		op = o
	}
	if op == nil {
		return nil, nil, errorf("", "query text contains no operation")
	}
	if op.Operation != "" && op.Operation != "query" {
		return nil, nil, errorf("", "only query operations are supported, found %q", op.Operation)
	}
	if op.SelectionSet == nil || len(op.SelectionSet.Selections) != 1 {
		return nil, nil, errorf("", "query must have exactly one top-level field")
	}
	field, ok := op.SelectionSet.Selections[0].(*ast.Field)
	if !ok {
		return nil, nil, errorf("", "top-level selection must be a field")
	}
	return field, op.VariableDefinitions, nil
}

// typeFromAST lowers a GraphQL type reference ("Int", "[Int!]!", ...)
// from a variable definition into a value.Type.
func typeFromAST(t ast.Type) (value.Type, error) {
	switch n := t.(type) {
	case *ast.NonNull:
		inner, err := typeFromAST(n.Type)
		if err != nil {
			return value.Type{}, err
		}
		return inner.WithNullable(false), nil
	case *ast.List:
		inner, err := typeFromAST(n.Type)
		if err != nil {
			return value.Type{}, err
		}
		return value.ListOf(inner, true), nil
	case *ast.Named:
		return value.Named(n.Name.Value, true), nil
	default:
		return value.Type{}, errorf("", "unsupported type reference %T", t)
	}
}

// literalValue lowers a GraphQL literal (not a variable reference) into
// a value.Value.
func literalValue(v ast.Value) (value.Value, error) {
	switch n := v.(type) {
	case *ast.IntValue:
		i, err := parseIntLiteral(n.Value)
		if err != nil {
			return value.Value{}, err
		}
		return value.Int64(i), nil
	case *ast.FloatValue:
		f, err := parseFloatLiteral(n.Value)
		if err != nil {
			return value.Value{}, err
		}
		return value.Float64(f), nil
	case *ast.StringValue:
		return value.String(n.Value), nil
	case *ast.BooleanValue:
		return value.Bool(n.Value), nil
	case *ast.EnumValue:
		return value.Enum(n.Value), nil
	case *ast.NullValue:
		return value.Null(), nil
	case *ast.ListValue:
		vals := make([]value.Value, len(n.Values))
		for i, el := range n.Values {
			ev, err := literalValue(el)
			if err != nil {
				return value.Value{}, err
			}
			vals[i] = ev
		}
		return value.List(vals), nil
	default:
		return value.Value{}, errorf("", "unsupported literal value %T", v)
	}
}

func parseFloatLiteral(raw string) (float64, error) {
	var whole, frac float64
	var fracDiv float64 = 1
	inFrac := false
	neg := false
	for i, r := range raw {
		switch {
		case i == 0 && r == '-':
			neg = true
		case r == '.':
			inFrac = true
		case r >= '0' && r <= '9':
			if inFrac {
				fracDiv *= 10
				frac = frac*10 + float64(r-'0')
			} else {
				whole = whole*10 + float64(r-'0')
			}
		default:
			return 0, errorf("", "invalid float literal %q", raw)
		}
	}
	out := whole + frac/fracDiv
	if neg {
		out = -out
	}
	return out, nil
}
