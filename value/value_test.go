package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/value"
)

func TestSignednessCorrectOrdering(t *testing.T) {
	cases := []struct {
		name string
		a    value.Value
		b    value.Value
		want int
	}{
		{"negative i64 less than any u64", value.Int64(-1), value.Uint64(math.MaxUint64), -1},
		{"negative i64 less than zero u64", value.Int64(-1), value.Uint64(0), -1},
		{"equal magnitude", value.Int64(42), value.Uint64(42), 0},
		{"u64 beyond i64 range greater", value.Int64(math.MaxInt64), value.Uint64(math.MaxUint64), -1},
		{"positive i64 less than bigger u64", value.Int64(5), value.Uint64(6), -1},
		{"positive i64 greater than smaller u64", value.Int64(6), value.Uint64(5), 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, value.Compare(c.a, c.b))
			assert.Equal(t, -c.want, value.Compare(c.b, c.a))
		})
	}
}

func TestFloatMustBeFinite(t *testing.T) {
	assert.Panics(t, func() { value.Float64(math.NaN()) })
	assert.Panics(t, func() { value.Float64(math.Inf(1)) })
	assert.NotPanics(t, func() { value.Float64(1.5) })
}

func TestListOrderingIsLexicographic(t *testing.T) {
	a := value.List([]value.Value{value.Int64(1), value.Int64(2)})
	b := value.List([]value.Value{value.Int64(1), value.Int64(3)})
	assert.True(t, value.Less(a, b))

	c := value.List([]value.Value{value.Int64(1)})
	assert.True(t, value.Less(c, a), "shorter prefix sorts before longer list")
}

func TestTypePeelAndNullability(t *testing.T) {
	inner := value.Named("Int", false)
	listTy := value.ListOf(inner, true)

	require.True(t, listTy.IsList())
	require.True(t, listTy.Nullable())

	peeled := listTy.Peel()
	assert.False(t, peeled.IsList())
	assert.False(t, peeled.Nullable())
	assert.Equal(t, "Int", peeled.Base())
}

func TestTypeEqualityIgnoresOrRespectsNullability(t *testing.T) {
	a := value.ListOf(value.Named("Int", false), true)
	b := value.ListOf(value.Named("Int", true), false)

	assert.False(t, a.Equal(b))
	assert.True(t, value.IgnoringNullability(a, b))
}

func TestTypeString(t *testing.T) {
	ty := value.ListOf(value.Named("Int", false), true)
	assert.Equal(t, "[Int!]", ty.String())

	nested := value.ListOf(ty, false)
	assert.Equal(t, "[[Int!]]!", nested.String())
}

func TestIsArgumentValid(t *testing.T) {
	nullableInt := value.Named("Int", true)
	assert.True(t, value.IsArgumentValid(nullableInt, value.Null()))

	nonNullInt := value.Named("Int", false)
	assert.False(t, value.IsArgumentValid(nonNullInt, value.Null()))
	assert.True(t, value.IsArgumentValid(nonNullInt, value.Int64(3)))

	listOfNullable := value.ListOf(value.Named("String", true), false)
	list := value.List([]value.Value{value.String("a"), value.Null()})
	assert.True(t, value.IsArgumentValid(listOfNullable, list))

	listOfNonNull := value.ListOf(value.Named("String", false), false)
	assert.False(t, value.IsArgumentValid(listOfNonNull, list))
}
