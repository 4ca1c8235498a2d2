package appconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogFolderPathIsRelativeToBaseFolder(t *testing.T) {
	t.Parallel()

	cfg := Config{BaseFolder: "/srv/gotag", LogFolder: "logs"}
	require.Equal(t, filepath.Join("/srv/gotag", "logs"), cfg.LogFolderPath())
}

func TestModelPathsAreRelativeToBaseFolder(t *testing.T) {
	t.Parallel()

	cfg := Config{
		BaseFolder:           "/srv/gotag",
		ModelConfigFile:      "models.json",
		ModelCredentialsFile: ".credentials.json",
	}
	require.Equal(t, filepath.Join("/srv/gotag", "models.json"), cfg.ModelConfigPath())
	require.Equal(t, filepath.Join("/srv/gotag", ".credentials.json"), cfg.ModelCredentialsPath())
}

func TestDefaultPopulatesBaselineSettings(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotEmpty(t, cfg.BaseFolder)
	require.Equal(t, "logs", cfg.LogFolder)
	require.Equal(t, DefaultConcurrency, cfg.DefaultConcurrency)
}
