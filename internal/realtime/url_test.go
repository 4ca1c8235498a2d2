package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildURL_RewritesSchemeAndTrimsTrailingSlash(t *testing.T) {
	cfg := Config{Endpoint: "https://my-resource.openai.azure.com/", API: "2024-10-01", Deployment: "gpt-realtime"}
	got, err := buildURL(cfg)
	require.NoError(t, err)
	require.Equal(t, "wss://my-resource.openai.azure.com/openai/realtime?api-version=2024-10-01&deployment=gpt-realtime", got)
}

func TestBuildURL_NoTrailingSlash(t *testing.T) {
	cfg := Config{Endpoint: "https://my-resource.openai.azure.com", API: "v1", Deployment: "d1"}
	got, err := buildURL(cfg)
	require.NoError(t, err)
	require.Equal(t, "wss://my-resource.openai.azure.com/openai/realtime?api-version=v1&deployment=d1", got)
}
