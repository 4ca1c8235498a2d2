package samples

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gotag/gotag/internal/caserun"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/registry"
)

func TestRegistry_ListsAllThreeSamples(t *testing.T) {
	reg := Registry()
	require.Len(t, reg, 3)
	require.NotNil(t, reg["menu"])
	require.NotNil(t, reg["calc"])
	require.NotNil(t, reg["realtime"])
}

func TestMenu_PerfectModelAlwaysPasses(t *testing.T) {
	p, err := pipeline.New(Menu(), nil, map[string]string{"model": "perfect"}, registry.New(nil))
	require.NoError(t, err)

	result := caserun.Run(context.Background(), p.DAG(), map[string]any{
		"uuid":     "8e6e9f3a-26b2-4a36-8c9a-1d5a6e4b9a11",
		"question": "What comes with the burger?",
		"expected": "fries and a drink",
	}, nil)

	require.True(t, result.Succeeded)
	require.True(t, Menu().Passed(result))
	require.Equal(t, "fries and a drink", result.Stages["answer"])
}

func TestMenu_FlakeyModelEventuallyFails(t *testing.T) {
	p, err := pipeline.New(Menu(), nil, map[string]string{"model": "flakey"}, registry.New(nil))
	require.NoError(t, err)

	makeCase := func() map[string]any {
		return map[string]any{
			"uuid":     "8e6e9f3a-26b2-4a36-8c9a-1d5a6e4b9a11",
			"question": "What comes with the burger?",
			"expected": "fries and a drink",
		}
	}

	first := caserun.Run(context.Background(), p.DAG(), makeCase(), nil)
	require.True(t, first.Succeeded)
	require.Equal(t, "fries and a drink", first.Stages["answer"])

	second := caserun.Run(context.Background(), p.DAG(), makeCase(), nil)
	require.True(t, second.Succeeded)
	require.Equal(t, "hello world", second.Stages["answer"])

	third := caserun.Run(context.Background(), p.DAG(), makeCase(), nil)
	require.False(t, third.Succeeded)
}

func TestCalc_PerfectModelComputesExactAnswer(t *testing.T) {
	p, err := pipeline.New(Calc(), nil, map[string]string{"model": "perfect"}, registry.New(nil))
	require.NoError(t, err)

	result := caserun.Run(context.Background(), p.DAG(), map[string]any{
		"uuid":       "8e6e9f3a-26b2-4a36-8c9a-1d5a6e4b9a12",
		"expression": "6 * 7",
		"expected":   42.0,
	}, nil)

	require.True(t, result.Succeeded)
	require.True(t, Calc().Passed(result))
	require.InDelta(t, 42.0, result.Stages["value"], calcTolerance)
}

type fakeRealtimeModel struct{}

func (fakeRealtimeModel) Infer(_ []map[string]any, caseContext map[string]any) (string, error) {
	caseContext["realtime_events"] = []string{"session.update", "response.done"}
	return "hello there, welcome", nil
}

func (fakeRealtimeModel) Metadata() map[string]any {
	return map[string]any{"type": "AZURE_OPEN_AI_REALTIME"}
}

func TestRealtime_TranscriptMatchesExpectedSubstring(t *testing.T) {
	parent := registry.New(nil)
	require.NoError(t, parent.RegisterModel("voice", fakeRealtimeModel{}))

	p, err := pipeline.New(Realtime(), nil, map[string]string{"model": "voice"}, parent)
	require.NoError(t, err)

	result := caserun.Run(context.Background(), p.DAG(), map[string]any{
		"uuid":               "8e6e9f3a-26b2-4a36-8c9a-1d5a6e4b9a13",
		"audio":              "greeting.wav",
		"audio_bytes":        []byte{0, 0, 1, 0},
		"expected_substring": "welcome",
	}, nil)

	require.True(t, result.Succeeded)
	require.True(t, Realtime().Passed(result))
	require.Equal(t, "hello there, welcome", result.Stages["transcript"])
}
