package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSessionConfig_Defaults(t *testing.T) {
	cfg, err := resolveSessionConfig(map[string]any{}, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "alloy", cfg.Voice)
	require.Equal(t, []string{"text"}, cfg.Modalities)
	require.Equal(t, map[string]any{"type": "none"}, cfg.TurnDetection)
	require.False(t, cfg.HasInstructions)
}

func TestResolveSessionConfig_CaseContextWins(t *testing.T) {
	caseContext := map[string]any{"voice": "shimmer"}
	modelConfig := map[string]any{"voice": "echo"}
	cfg, err := resolveSessionConfig(caseContext, modelConfig)
	require.NoError(t, err)
	require.Equal(t, "shimmer", cfg.Voice)
}

func TestResolveSessionConfig_NestedRealtimeBeatsModelConfig(t *testing.T) {
	caseContext := map[string]any{"realtime": map[string]any{"voice": "shimmer"}}
	modelConfig := map[string]any{"voice": "echo"}
	cfg, err := resolveSessionConfig(caseContext, modelConfig)
	require.NoError(t, err)
	require.Equal(t, "shimmer", cfg.Voice)
}

func TestResolveSessionConfig_ModalitiesDeduplicatesInOrder(t *testing.T) {
	caseContext := map[string]any{"modalities": []any{"audio", "text", "audio"}}
	cfg, err := resolveSessionConfig(caseContext, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, []string{"audio", "text"}, cfg.Modalities)
}

func TestResolveSessionConfig_UnknownModalityRejected(t *testing.T) {
	caseContext := map[string]any{"modalities": []any{"video"}}
	_, err := resolveSessionConfig(caseContext, map[string]any{})
	require.Error(t, err)
}

func TestResolveSessionConfig_EmptyVoiceRejected(t *testing.T) {
	caseContext := map[string]any{"voice": ""}
	_, err := resolveSessionConfig(caseContext, map[string]any{})
	require.Error(t, err)
}

func TestResolveSessionConfig_ServerVADKeepsAllowedKeysOnly(t *testing.T) {
	caseContext := map[string]any{"turn_detection": map[string]any{
		"type": "server_vad", "threshold": 0.5, "bogus": "drop-me",
	}}
	cfg, err := resolveSessionConfig(caseContext, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"type": "server_vad", "threshold": 0.5}, cfg.TurnDetection)
}

func TestResolveSessionConfig_SemanticVADKeepsAllowedKeysOnly(t *testing.T) {
	caseContext := map[string]any{"turn_detection": map[string]any{
		"type": "semantic_vad", "eagerness": "high", "threshold": 0.5,
	}}
	cfg, err := resolveSessionConfig(caseContext, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"type": "semantic_vad", "eagerness": "high"}, cfg.TurnDetection)
}

func TestResolveSessionConfig_UnknownTurnDetectionTypeRejected(t *testing.T) {
	caseContext := map[string]any{"turn_detection": map[string]any{"type": "bogus"}}
	_, err := resolveSessionConfig(caseContext, map[string]any{})
	require.Error(t, err)
}
