package dagcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, c *Context) (any, error) { return nil, nil }

func TestBuild_EmptySpec(t *testing.T) {
	_, err := Build(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty graph specification")
}

func TestBuild_DuplicateName(t *testing.T) {
	_, err := Build([]NodeSpec{
		{Name: "a", Fn: noop},
		{Name: "a", Fn: noop},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node name")
}

func TestBuild_DuplicateInput(t *testing.T) {
	_, err := Build([]NodeSpec{
		{Name: "a", Fn: noop},
		{Name: "b", Fn: noop, Inputs: []string{"a", "a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate input")
}

func TestBuild_UnknownInput(t *testing.T) {
	_, err := Build([]NodeSpec{
		{Name: "a", Fn: noop, Inputs: []string{"missing"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot find input")
}

func TestBuild_NoSource(t *testing.T) {
	_, err := Build([]NodeSpec{
		{Name: "a", Fn: noop, Inputs: []string{"b"}},
		{Name: "b", Fn: noop, Inputs: []string{"a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no nodes ready to run")
}

func TestBuild_Cycle(t *testing.T) {
	_, err := Build([]NodeSpec{
		{Name: "A", Fn: noop},
		{Name: "B", Fn: noop, Inputs: []string{"A", "D"}},
		{Name: "D", Fn: noop, Inputs: []string{"B"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cycle detected: A -> B -> D -> B")
}

func TestBuild_Unreachable(t *testing.T) {
	_, err := Build([]NodeSpec{
		{Name: "a", Fn: noop},
		{Name: "isolated", Fn: noop, Inputs: []string{"isolated2"}},
		{Name: "isolated2", Fn: noop, Inputs: []string{"isolated"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable nodes")
}

func TestBuild_Valid(t *testing.T) {
	dag, err := Build([]NodeSpec{
		{Name: "a", Fn: noop},
		{Name: "b", Fn: noop, Inputs: []string{"a"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dag.Names())
}
