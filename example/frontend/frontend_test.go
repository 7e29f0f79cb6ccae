package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/example/frontend"
	"go.appointy.com/graphwalk/example/numbers"
	"go.appointy.com/graphwalk/interpreter"
	"go.appointy.com/graphwalk/ir"
	"go.appointy.com/graphwalk/value"
)

// compileAndRun parses queryText, indexes it against the numbers
// adapter's schema, and runs it, returning every output row. Exercises
// frontend.Compile end to end rather than hand-building *ir.Query, the
// way example/numbers and example/library's own test suites do.
func compileAndRun(t *testing.T, queryText string, variables map[string]value.Value) []map[string]value.Value {
	t.Helper()
	q, err := frontend.Compile(queryText, numbers.Schema())
	require.NoError(t, err)

	idx, err := ir.Index(q, numbers.Schema())
	require.NoError(t, err)

	if variables == nil {
		variables = map[string]value.Value{}
	}
	a := adapter.FromBasic[numbers.Vertex](numbers.Adapter{})
	rows, err := interpreter.Interpret[numbers.Vertex](a, idx, variables)
	require.NoError(t, err)

	var got []map[string]value.Value
	for row := range rows {
		got = append(got, row)
	}
	return got
}

// TestNumberRangeProjectsValuesInOrder mirrors the "plain range" seed
// scenario: three rows with value in 0, 1, 2, in order.
func TestNumberRangeProjectsValuesInOrder(t *testing.T) {
	got := compileAndRun(t, `{ Number(min: 0, max: 2) { value @output } }`, nil)
	require.Len(t, got, 3)
	for i, row := range got {
		v, ok := row["value"].AsInt64()
		require.True(t, ok)
		assert.Equal(t, int64(i), v)
	}
}

// TestNumberRangeFilteredByVariable mirrors the ">= variable" seed
// scenario: min=2, max=6 narrowed by "value >= $v" with v=4 keeps 4, 5
// (the range's upper bound is exclusive).
func TestNumberRangeFilteredByVariable(t *testing.T) {
	got := compileAndRun(t, `
		query($v: Int!) {
			Number(min: 2, max: 6) {
				value @filter(op: ">=", value: ["$v"]) @output
			}
		}`,
		map[string]value.Value{"v": value.Int64(4)},
	)
	var values []int64
	for _, row := range got {
		v, _ := row["value"].AsInt64()
		values = append(values, v)
	}
	assert.Equal(t, []int64{4, 5}, values)
}

// TestSuccessorRecursionWalksThreeDepths mirrors the recursion seed
// scenario, starting from Number(min: 2, max: 2) rather than a
// standalone "Two" entry point, since this adapter (unlike the upstream
// one) only exposes a single "Number" starting edge.
func TestSuccessorRecursionWalksThreeDepths(t *testing.T) {
	got := compileAndRun(t, `{
		Number(min: 2, max: 2) {
			successor @recurse(depth: 2) {
				value @output
			}
		}
	}`, nil)
	var values []int64
	for _, row := range got {
		v, _ := row["value"].AsInt64()
		values = append(values, v)
	}
	assert.ElementsMatch(t, []int64{2, 3, 4}, values)
}

// TestFoldCollectsEverySuccessor mirrors the fold seed scenario: each of
// 1, 2, 3 gets its own successor folded into a one-element "succ" list.
func TestFoldCollectsEverySuccessor(t *testing.T) {
	got := compileAndRun(t, `{
		Number(min: 1, max: 3) {
			value @output
			successor @fold {
				succ: value @output
			}
		}
	}`, nil)
	require.Len(t, got, 3)
	for _, row := range got {
		v, _ := row["value"].AsInt64()
		list, ok := row["succ"].AsList()
		require.True(t, ok)
		require.Len(t, list, 1)
		succ, _ := list[0].AsInt64()
		assert.Equal(t, v+1, succ)
	}
}

// TestOptionalPredecessorOfZeroIsNull mirrors the optional-with-null
// seed scenario using Number(min: 0, max: 0) in place of a standalone
// "One" entry point: 0 has no predecessor, so the optional edge keeps
// exactly one row with a null value.
func TestOptionalPredecessorOfZeroIsNull(t *testing.T) {
	got := compileAndRun(t, `{
		Number(min: 0, max: 0) {
			predecessor @optional {
				value: value @output
			}
		}
	}`, nil)
	require.Len(t, got, 1)
	assert.True(t, got[0]["value"].IsNull())
}

// TestTagFilterComparesSuccessorAgainstParent mirrors the tag-filter
// seed scenario: each number's successor is filtered against the
// parent's own tagged value via "%v", keeping sv = v + 1 in every row.
func TestTagFilterComparesSuccessorAgainstParent(t *testing.T) {
	got := compileAndRun(t, `{
		Number(min: 2, max: 4) {
			value @tag(name: "v") @output
			successor {
				sv: value @filter(op: ">", value: ["%v"]) @output
			}
		}
	}`, nil)
	require.Len(t, got, 3)
	for _, row := range got {
		v, _ := row["value"].AsInt64()
		sv, _ := row["sv"].AsInt64()
		assert.Equal(t, v+1, sv)
	}
}

// TestCoercionToCompositeExposesPrimeFactor exercises inline-fragment
// type coercion (this port's GraphQL-native substitute for a dedicated
// coercion directive, see lower.go's flattenFragment) by coercing the
// Number interface down to Composite to reach its "primeFactor" edge,
// which only Composite declares. The coercion sits on 3's successor (4,
// a Composite) rather than on the root vertex itself: coercing a root
// vertex would change the starting-edge name the interpreter passes to
// ResolveStartingVertices to the coerced-to type, which this adapter
// (like most) does not recognize as its own entry point.
func TestCoercionToCompositeExposesPrimeFactor(t *testing.T) {
	got := compileAndRun(t, `{
		Number(min: 3, max: 3) {
			successor {
				... on Composite {
					primeFactor {
						value @output
					}
				}
			}
		}
	}`, nil)
	var factors []int64
	for _, row := range got {
		f, _ := row["value"].AsInt64()
		factors = append(factors, f)
	}
	assert.Equal(t, []int64{2}, factors)
}

// TestUnknownFilterOperatorIsRejected exercises Compile's own error path
// rather than ir.Index's: an unsupported @filter op is caught while
// lowering, before a schema is ever consulted for validation.
func TestUnknownFilterOperatorIsRejected(t *testing.T) {
	_, err := frontend.Compile(`{
		Number(min: 0, max: 2) {
			value @filter(op: "between", value: ["$lo", "$hi"]) @output
		}
	}`, numbers.Schema())
	require.Error(t, err)
}
