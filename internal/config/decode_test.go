package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type modelSettings struct {
	Name     string `config:"name"`
	Endpoint string `config:"endpoint"`
}

func TestDecodeIntoTypedStruct(t *testing.T) {
	t.Parallel()

	merged, err := Merge(defaultsFixture(), nil, map[string]string{"model.name": "gpt-4o"})
	require.NoError(t, err)

	var settings modelSettings
	require.NoError(t, DecodeInto(merged["model"].(map[string]any), &settings))
	require.Equal(t, "gpt-4o", settings.Name)
	require.Equal(t, "https://default.example.com", settings.Endpoint)
}
