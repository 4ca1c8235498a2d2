package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePatch_SplitsKeyValuePairs(t *testing.T) {
	patch, err := parsePatch([]string{"model=perfect", "prompt_template=hi {{.name}}"})
	require.NoError(t, err)
	require.Equal(t, "perfect", patch["model"])
	require.Equal(t, "hi {{.name}}", patch["prompt_template"])
}

func TestParsePatch_RejectsArgWithoutEquals(t *testing.T) {
	_, err := parsePatch([]string{"model"})
	require.Error(t, err)
}

func TestLoadCases_RoundTripsThroughWriteCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	original := []map[string]any{
		{"uuid": "8e6e9f3a-26b2-4a36-8c9a-1d5a6e4b9a11", "question": "what comes with the burger?"},
	}
	require.NoError(t, writeCases(path, original))

	loaded, err := loadCases(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "what comes with the burger?", loaded[0]["question"])
}

func TestLoadCases_RejectsNonArrayJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err := loadCases(path)
	require.Error(t, err)
}
