package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go.appointy.com/graphwalk/value"
)

// bundle is a YAML-described demo query: which example domain to run it
// against, the GraphQL-flavored query text itself (compiled by
// example/frontend), and any variable bindings the query declares.
// Grounded on the teacher's schemabuilder scalar-registration style of
// plain data-in, data-out conversion rather than any upstream Rust
// bundle format (trustfall's own CLI is out of this port's scope, per
// spec §1's "no frontend in the core").
type bundle struct {
	Domain    string         `yaml:"domain"`
	Query     string         `yaml:"query"`
	Variables map[string]any `yaml:"variables"`
}

func loadBundle(path string) (*bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}
	var b bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", path, err)
	}
	if b.Domain == "" {
		return nil, fmt.Errorf("bundle %s: \"domain\" is required", path)
	}
	if b.Query == "" {
		return nil, fmt.Errorf("bundle %s: \"query\" is required", path)
	}
	return &b, nil
}

// toValue lowers a YAML-decoded scalar (int, float64, string, bool, nil,
// or a []any of the same) into a value.Value. yaml.v3 decodes integer
// literals as int, unlike encoding/json's float64-only numbers.
func toValue(v any) (value.Value, error) {
	switch n := v.(type) {
	case nil:
		return value.Null(), nil
	case int:
		return value.Int64(int64(n)), nil
	case int64:
		return value.Int64(n), nil
	case uint64:
		return value.Uint64(n), nil
	case float64:
		return value.Float64(n), nil
	case string:
		return value.String(n), nil
	case bool:
		return value.Bool(n), nil
	case []any:
		vals := make([]value.Value, len(n))
		for i, el := range n {
			ev, err := toValue(el)
			if err != nil {
				return value.Value{}, err
			}
			vals[i] = ev
		}
		return value.List(vals), nil
	default:
		return value.Value{}, fmt.Errorf("unsupported variable value of type %T", v)
	}
}

// fromValue lifts a value.Value back into a plain Go value suitable for
// JSON output.
func fromValue(v value.Value) any {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindInt64:
		i, _ := v.AsInt64()
		return i
	case value.KindUint64:
		u, _ := v.AsUint64()
		return u
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		return f
	case value.KindString, value.KindEnum:
		s, _ := v.AsString()
		return s
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindList:
		list, _ := v.AsList()
		out := make([]any, len(list))
		for i, el := range list {
			out[i] = fromValue(el)
		}
		return out
	default:
		return nil
	}
}
