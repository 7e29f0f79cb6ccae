package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/example/frontend"
	"go.appointy.com/graphwalk/example/library"
	"go.appointy.com/graphwalk/example/numbers"
	"go.appointy.com/graphwalk/interpreter"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/schema"
	"go.appointy.com/graphwalk/value"
)

// runBundle loads the bundle at path, resolves its declared domain to a
// schema/adapter pair, compiles and runs its query, and writes every
// output row to stdout as one JSON object per line.
func runBundle(path string) error {
	b, err := loadBundle(path)
	if err != nil {
		return err
	}

	vars := make(map[string]value.Value, len(b.Variables))
	for name, raw := range b.Variables {
		v, err := toValue(raw)
		if err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		vars[name] = v
	}

	slog.Info("running bundle", "path", path, "domain", b.Domain)

	switch b.Domain {
	case "numbers":
		return runQuery(b.Query, vars, numbers.Schema(), adapter.FromBasic[numbers.Vertex](numbers.Adapter{}))
	case "library":
		return runQuery(b.Query, vars, library.Schema(), adapter.FromBasic[library.Vertex](library.Adapter{}))
	default:
		return fmt.Errorf("unknown domain %q (want \"numbers\" or \"library\")", b.Domain)
	}
}

// runQuery compiles queryText against sch, indexes and interprets it
// through a, and streams the resulting rows to stdout.
func runQuery[Vertex any](queryText string, vars map[string]value.Value, sch *schema.Schema, a adapter.Adapter[Vertex]) error {
	q, err := frontend.Compile(queryText, sch)
	if err != nil {
		return fmt.Errorf("compiling query: %w", err)
	}

	idx, err := ir.Index(q, sch)
	if err != nil {
		return fmt.Errorf("indexing query: %w", err)
	}

	rows, err := interpreter.Interpret[Vertex](a, idx, vars)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	n := 0
	for row := range rows {
		out := make(map[string]any, len(row))
		for k, v := range row {
			out[k] = fromValue(v)
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding row: %w", err)
		}
		n++
	}

	slog.Info("query complete", "rows", n)
	return nil
}
