package frontend

import (
	"strings"

	"github.com/graphql-go/graphql/language/ast"

	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/transform"
)

// operatorArgument is a parsed @filter/@transform "value" list entry:
// a reference to a declared variable ($name) or an earlier @tag (%name),
// per directives.rs's OperatorArgument.
type operatorArgument struct {
	isTag bool
	name  string
}

func (a operatorArgument) operand() ir.Operand {
	if a.isTag {
		return ir.Tag{Name: a.name}
	}
	return ir.Variable{Name: a.name}
}

// parseOperatorArgument splits a leading '$' or '%' sigil off a filter or
// transform value-list entry, per directives.rs's identical convention.
func parseOperatorArgument(where, raw string) (operatorArgument, error) {
	if raw == "" {
		return operatorArgument{}, errorf(where, "argument name must not be empty")
	}
	sigil, name := raw[0], raw[1:]
	if sigil != '$' && sigil != '%' {
		return operatorArgument{}, errorf(where, "argument %q must start with '$' or '%%'", raw)
	}
	if name == "" {
		return operatorArgument{}, errorf(where, "argument %q has an empty name", raw)
	}
	if !isValidName(name) {
		return operatorArgument{}, errorf(where, "argument name %q must start with a letter or underscore and contain only ASCII alphanumerics/underscore", name)
	}
	return operatorArgument{isTag: sigil == '%', name: name}, nil
}

func isValidName(name string) bool {
	for i, r := range name {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
		if !alnum {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// directiveByName returns the first directive named name, or nil.
func directiveByName(dirs []*ast.Directive, name string) *ast.Directive {
	for _, d := range dirs {
		if d.Name != nil && d.Name.Value == name {
			return d
		}
	}
	return nil
}

func directivesByName(dirs []*ast.Directive, name string) []*ast.Directive {
	var out []*ast.Directive
	for _, d := range dirs {
		if d.Name != nil && d.Name.Value == name {
			out = append(out, d)
		}
	}
	return out
}

func namedArgument(dir *ast.Directive, name string) *ast.Argument {
	for _, a := range dir.Arguments {
		if a.Name != nil && a.Name.Value == name {
			return a
		}
	}
	return nil
}

// outputOrTagName parses the sole optional "name" string argument shared
// by @output and @tag, defaulting to fallback when absent.
func outputOrTagName(dirName string, dir *ast.Directive, fallback string) (string, error) {
	arg := namedArgument(dir, "name")
	if arg == nil {
		return fallback, nil
	}
	s, ok := arg.Value.(*ast.StringValue)
	if !ok {
		return "", errorf(dirName, "\"name\" argument must be a string")
	}
	if !isValidName(s.Value) {
		return "", errorf(dirName, "name %q must start with a letter or underscore and contain only ASCII alphanumerics/underscore", s.Value)
	}
	return s.Value, nil
}

// parseFilterOp maps a @filter "op" string to an ir.FilterOp, per
// directives.rs's FilterDirective::try_from match arms.
func parseFilterOp(op string) (ir.FilterOp, bool) {
	switch op {
	case "is_null":
		return ir.IsNull, true
	case "is_not_null":
		return ir.IsNotNull, true
	case "=":
		return ir.Equals, true
	case "!=":
		return ir.NotEquals, true
	case "<":
		return ir.LessThan, true
	case "<=":
		return ir.LessOrEqual, true
	case ">":
		return ir.GreaterThan, true
	case ">=":
		return ir.GreaterOrEqual, true
	case "contains":
		return ir.Contains, true
	case "not_contains":
		return ir.NotContains, true
	case "one_of":
		return ir.OneOf, true
	case "not_one_of":
		return ir.NotOneOf, true
	case "has_prefix":
		return ir.HasPrefix, true
	case "not_has_prefix":
		return ir.NotHasPrefix, true
	case "has_suffix":
		return ir.HasSuffix, true
	case "not_has_suffix":
		return ir.NotHasSuffix, true
	case "has_substring":
		return ir.HasSubstring, true
	case "not_has_substring":
		return ir.NotHasSubstring, true
	case "regex":
		return ir.Regex, true
	case "not_regex":
		return ir.NotRegex, true
	default:
		return 0, false
	}
}

// filterValueArguments parses the shared @filter/@transform(op:"add")
// "value: [String!]" argument into operatorArguments, in list order.
func filterValueArguments(where string, dir *ast.Directive) ([]operatorArgument, error) {
	arg := namedArgument(dir, "value")
	if arg == nil {
		return nil, nil
	}
	list, ok := arg.Value.(*ast.ListValue)
	if !ok {
		return nil, errorf(where, "\"value\" argument must be a list")
	}
	out := make([]operatorArgument, 0, len(list.Values))
	for _, v := range list.Values {
		s, ok := v.(*ast.StringValue)
		if !ok {
			return nil, errorf(where, "\"value\" entries must be strings")
		}
		parsed, err := parseOperatorArgument(where, s.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// buildFilter lowers one @filter directive attached to a leaf field into
// an ir.Filter, given the field's already-resolved left-hand FieldRef.
func buildFilter(left ir.FieldRef, dir *ast.Directive) (ir.Filter, error) {
	opArg := namedArgument(dir, "op")
	if opArg == nil {
		return ir.Filter{}, errorf("@filter", "missing required \"op\" argument")
	}
	opStr, ok := opArg.Value.(*ast.StringValue)
	if !ok {
		return ir.Filter{}, errorf("@filter", "\"op\" argument must be a string")
	}
	op, ok := parseFilterOp(opStr.Value)
	if !ok {
		return ir.Filter{}, errorf("@filter", "unsupported filter operator %q", opStr.Value)
	}

	args, err := filterValueArguments("@filter", dir)
	if err != nil {
		return ir.Filter{}, err
	}
	want := 0
	if !op.IsUnary() {
		want = 1
	}
	if len(args) != want {
		return ir.Filter{}, errorf("@filter", "operator %q expects %d value argument(s), found %d", opStr.Value, want, len(args))
	}

	f := ir.Filter{Op: op, Left: left}
	if want == 1 {
		f.Right = args[0].operand()
	}
	return f, nil
}

// buildTransformChain lowers every @transform directive on a field, in
// source order, into an ir.Transform chain. Only "add" carries an
// operand; directives.rs's TransformDirective has no operand field since
// the upstream transform set (count/len/abs) is all unary, so "add"'s
// "value" argument follows @filter's own $/%-sigil convention rather
// than one borrowed from the original source.
func buildTransformChain(dirs []*ast.Directive) ([]ir.Transform, error) {
	chain := make([]ir.Transform, 0, len(dirs))
	for _, dir := range dirs {
		opArg := namedArgument(dir, "op")
		if opArg == nil {
			return nil, errorf("@transform", "missing required \"op\" argument")
		}
		opStr, ok := opArg.Value.(*ast.StringValue)
		if !ok {
			return nil, errorf("@transform", "\"op\" argument must be a string")
		}
		kind, err := transform.ParseKind(opStr.Value)
		if err != nil {
			return nil, errorf("@transform", "%v", err)
		}

		args, err := filterValueArguments("@transform", dir)
		if err != nil {
			return nil, err
		}
		step := ir.Transform{Kind: kind}
		if kind == transform.Add {
			if len(args) != 1 {
				return nil, errorf("@transform", "op \"add\" requires exactly one \"value\" argument")
			}
			step.Operand = args[0].operand()
		} else if len(args) != 0 {
			return nil, errorf("@transform", "op %q takes no \"value\" argument", opStr.Value)
		}
		chain = append(chain, step)
	}
	return chain, nil
}

// recurseDepth parses @recurse(depth: Int!), per directives.rs's
// RecurseDirective (a NonZeroUsize there; depth >= 1 is an ir.Index-time
// invariant here, so this only checks the argument is a positive int
// literal).
func recurseDepth(dir *ast.Directive) (int, error) {
	arg := namedArgument(dir, "depth")
	if arg == nil {
		return 0, errorf("@recurse", "missing required \"depth\" argument")
	}
	iv, ok := arg.Value.(*ast.IntValue)
	if !ok {
		return 0, errorf("@recurse", "\"depth\" argument must be an integer")
	}
	depth, err := parseIntLiteral(iv.Value)
	if err != nil {
		return 0, errorf("@recurse", "%v", err)
	}
	if depth < 1 {
		return 0, errorf("@recurse", "depth must be >= 1, found %d", depth)
	}
	return int(depth), nil
}

func parseIntLiteral(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	var neg bool
	if strings.HasPrefix(raw, "-") {
		neg = true
		raw = raw[1:]
	}
	var n int64
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errorf("", "invalid integer literal")
		}
		n = n*10 + int64(r-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
