package serialize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/graphwalk/serialize"
	"go.appointy.com/graphwalk/value"
)

type numberRow struct {
	V       int64
	Next    *int64
	Tags    []string
	Created time.Time
}

func TestIntoBasicFieldsAndLowerCamelMatching(t *testing.T) {
	row := map[string]value.Value{
		"v":       value.Int64(10),
		"next":    value.Null(),
		"tags":    value.List([]value.Value{value.String("a"), value.String("b")}),
		"created": value.Int64(1700000000),
	}

	var dest numberRow
	require.NoError(t, serialize.Into(row, &dest))

	assert.Equal(t, int64(10), dest.V)
	assert.Nil(t, dest.Next)
	assert.Equal(t, []string{"a", "b"}, dest.Tags)
	assert.Equal(t, int64(1700000000), dest.Created.Unix())
}

func TestIntoPointerFieldPopulatedWhenNonNull(t *testing.T) {
	row := map[string]value.Value{
		"v":       value.Int64(1),
		"next":    value.Int64(2),
		"tags":    value.List(nil),
		"created": value.Int64(0),
	}

	var dest numberRow
	require.NoError(t, serialize.Into(row, &dest))
	require.NotNil(t, dest.Next)
	assert.Equal(t, int64(2), *dest.Next)
}

type taggedRow struct {
	UserID string `graphwalk:"user_id"`
}

func TestIntoHonorsExplicitTag(t *testing.T) {
	row := map[string]value.Value{"user_id": value.String("abc")}
	var dest taggedRow
	require.NoError(t, serialize.Into(row, &dest))
	assert.Equal(t, "abc", dest.UserID)
}

type snakeCaseRow struct {
	ScreenName string
}

func TestIntoFallsBackToSnakeCase(t *testing.T) {
	row := map[string]value.Value{"screen_name": value.String("neo")}
	var dest snakeCaseRow
	require.NoError(t, serialize.Into(row, &dest))
	assert.Equal(t, "neo", dest.ScreenName)
}

type durationRow struct {
	Elapsed time.Duration
}

func TestIntoConvertsDurationField(t *testing.T) {
	row := map[string]value.Value{"elapsed": value.Int64(int64(90 * time.Second))}
	var dest durationRow
	require.NoError(t, serialize.Into(row, &dest))
	assert.Equal(t, 90*time.Second, dest.Elapsed)
}

func TestIntoRejectsNonPointer(t *testing.T) {
	var dest numberRow
	err := serialize.Into(map[string]value.Value{}, dest)
	assert.Error(t, err)
}

type edgeParams struct {
	Min int64
}

func TestEdgeParametersDeserializesEdgeArgs(t *testing.T) {
	params := map[string]value.Value{"min": value.Int64(5)}
	var dest edgeParams
	require.NoError(t, serialize.EdgeParameters(params, &dest))
	assert.Equal(t, int64(5), dest.Min)
}
