package pathutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	t.Parallel()

	tree := map[string]any{}
	Set(tree, "model.credentials.api_key", "secret")

	val, ok := Get(tree, "model.credentials.api_key")
	require.True(t, ok)
	require.Equal(t, "secret", val)
}

func TestGetMissingPathReturnsFalse(t *testing.T) {
	t.Parallel()

	tree := map[string]any{"a": map[string]any{"b": 1}}
	_, ok := Get(tree, "a.c")
	require.False(t, ok)

	_, ok = Get(tree, "a.b.c")
	require.False(t, ok, "descending into a scalar must fail")
}

func TestFlattenNestedTree(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": 2},
		},
		"e": "top",
	}
	flat := Flatten(tree)
	require.Equal(t, map[string]any{"a.b": 1, "a.c.d": 2, "e": "top"}, flat)
}

func TestApplyPatchOverwritesLeaf(t *testing.T) {
	t.Parallel()

	tree := map[string]any{"stages": map[string]any{"retries": int64(1)}}
	patched, err := ApplyPatch(tree, map[string]string{"stages.retries": "3"})
	require.NoError(t, err)

	val, _ := Get(patched, "stages.retries")
	require.Equal(t, int64(3), val)

	orig, _ := Get(tree, "stages.retries")
	require.Equal(t, int64(1), orig, "ApplyPatch must not mutate the source tree")
}

func TestApplyPatchRefusesToOverwriteSubtree(t *testing.T) {
	t.Parallel()

	tree := map[string]any{"model": map[string]any{"name": "gpt-4o", "endpoint": "https://x"}}
	_, err := ApplyPatch(tree, map[string]string{"model": "oops"})

	var overwrite *OverwriteError
	require.ErrorAs(t, err, &overwrite)
	require.ElementsMatch(t, []string{"model.name", "model.endpoint"}, overwrite.Hints)
}

func TestParsePatchesRejectsMissingEquals(t *testing.T) {
	t.Parallel()

	_, err := ParsePatches([]string{"no-equals-sign"})
	require.Error(t, err)
}

func TestCoercePatchValueTypes(t *testing.T) {
	t.Parallel()

	require.Equal(t, true, coercePatchValue("true"))
	require.Equal(t, false, coercePatchValue("false"))
	require.Equal(t, int64(42), coercePatchValue("42"))
	require.Equal(t, 3.14, coercePatchValue("3.14"))
	require.Equal(t, "hello", coercePatchValue("hello"))
}
