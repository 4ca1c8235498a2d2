package caserun

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotag/gotag/internal/dagcore"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time {
	t := f.t
	f.t = f.t.Add(time.Second)
	return t
}

func TestRun_Success(t *testing.T) {
	dag, err := dagcore.Build([]dagcore.NodeSpec{
		{Name: "a", Fn: func(ctx context.Context, c *dagcore.Context) (any, error) {
			return "ok", nil
		}},
	})
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)}
	result := Run(context.Background(), dag, map[string]any{"uuid": "x"}, clock)

	assert.True(t, result.Succeeded)
	assert.Nil(t, result.Exception)
	assert.Equal(t, "ok", result.Stages["a"])
	assert.NotEmpty(t, result.Metadata.Start)
	assert.NotEmpty(t, result.Metadata.End)
}

func TestRun_StageFailureRecordsException(t *testing.T) {
	dag, err := dagcore.Build([]dagcore.NodeSpec{
		{Name: "a", Fn: func(ctx context.Context, c *dagcore.Context) (any, error) {
			return nil, errors.New("stage exploded")
		}},
	})
	require.NoError(t, err)

	result := Run(context.Background(), dag, map[string]any{"uuid": "x"}, nil)

	assert.False(t, result.Succeeded)
	require.NotNil(t, result.Exception)
	assert.Contains(t, result.Exception.Message, "stage exploded")
}

func TestRun_StagePanicIsolated(t *testing.T) {
	dag, err := dagcore.Build([]dagcore.NodeSpec{
		{Name: "a", Fn: func(ctx context.Context, c *dagcore.Context) (any, error) {
			panic("boom")
		}},
	})
	require.NoError(t, err)

	result := Run(context.Background(), dag, map[string]any{"uuid": "x"}, nil)
	assert.False(t, result.Succeeded)
	require.NotNil(t, result.Exception)
	assert.Contains(t, result.Exception.Message, "boom")
}
