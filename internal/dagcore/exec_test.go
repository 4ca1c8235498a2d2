package dagcore

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecute_LinearDAG runs a simple linear chain: a(ctx) = {x:1},
// b(ctx) = {y: stages.a.x + 2}.
func TestExecute_LinearDAG(t *testing.T) {
	dag, err := Build([]NodeSpec{
		{Name: "a", Fn: func(ctx context.Context, c *Context) (any, error) {
			return map[string]any{"x": 1}, nil
		}},
		{Name: "b", Fn: func(ctx context.Context, c *Context) (any, error) {
			a, _ := c.Stage("a")
			x := a.(map[string]any)["x"].(int)
			return map[string]any{"y": x + 2}, nil
		}, Inputs: []string{"a"}},
	})
	require.NoError(t, err)

	caseCtx := NewContext(map[string]any{"uuid": "00000000-0000-0000-0000-000000000001"})
	err = Execute(context.Background(), dag, caseCtx)
	require.NoError(t, err)

	b, ok := caseCtx.Stage("b")
	require.True(t, ok)
	assert.Equal(t, 3, b.(map[string]any)["y"])
}

// TestExecute_Diamond runs a diamond shape: A -> {B, C} -> D, with a
// monotonic per-execution sequence counter proving ordering.
func TestExecute_Diamond(t *testing.T) {
	var seq int64
	next := func() int64 { return atomic.AddInt64(&seq, 1) }

	var aSeq, bSeq, cSeq, dSeq int64

	dag, err := Build([]NodeSpec{
		{Name: "A", Fn: func(ctx context.Context, c *Context) (any, error) {
			aSeq = next()
			return aSeq, nil
		}},
		{Name: "B", Fn: func(ctx context.Context, c *Context) (any, error) {
			bSeq = next()
			return bSeq, nil
		}, Inputs: []string{"A"}},
		{Name: "C", Fn: func(ctx context.Context, c *Context) (any, error) {
			cSeq = next()
			return cSeq, nil
		}, Inputs: []string{"A"}},
		{Name: "D", Fn: func(ctx context.Context, c *Context) (any, error) {
			dSeq = next()
			return dSeq, nil
		}, Inputs: []string{"B", "C"}},
	})
	require.NoError(t, err)

	caseCtx := NewContext(map[string]any{"uuid": "00000000-0000-0000-0000-000000000002"})
	require.NoError(t, Execute(context.Background(), dag, caseCtx))

	assert.Greater(t, bSeq, aSeq)
	assert.Greater(t, cSeq, aSeq)
	assert.Greater(t, dSeq, bSeq)
	assert.Greater(t, dSeq, cSeq)
}

// TestExecute_SiblingFailureDoesNotCancel confirms a failing stage does
// not stop an independent sibling from completing.
func TestExecute_SiblingFailureDoesNotCancel(t *testing.T) {
	var siblingRan atomic.Bool

	dag, err := Build([]NodeSpec{
		{Name: "a", Fn: noop},
		{Name: "fails", Fn: func(ctx context.Context, c *Context) (any, error) {
			return nil, errors.New("boom")
		}, Inputs: []string{"a"}},
		{Name: "sibling", Fn: func(ctx context.Context, c *Context) (any, error) {
			siblingRan.Store(true)
			return "ok", nil
		}, Inputs: []string{"a"}},
	})
	require.NoError(t, err)

	caseCtx := NewContext(map[string]any{"uuid": "00000000-0000-0000-0000-000000000003"})
	err = Execute(context.Background(), dag, caseCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, siblingRan.Load())
}

func TestExecute_NoDuplicateStageWrites(t *testing.T) {
	dag, err := Build([]NodeSpec{
		{Name: "a", Fn: func(ctx context.Context, c *Context) (any, error) {
			return 1, nil
		}},
	})
	require.NoError(t, err)

	caseCtx := NewContext(map[string]any{"uuid": "00000000-0000-0000-0000-000000000004"})
	require.NoError(t, Execute(context.Background(), dag, caseCtx))

	_, ok := caseCtx.Stage("a")
	assert.True(t, ok)
	assert.Len(t, caseCtx.Stages(), 1)
}
