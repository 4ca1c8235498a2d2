// Package appconfig holds the small set of process-wide runtime settings
// that every component needs regardless of which pipeline is running: where
// run logs live, where the model descriptor/credentials files are, and the
// default scheduler concurrency. Its single job is resolving a few
// path-shaped keys relative to a base folder.
package appconfig

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ProgramName is the CLI program name reported in usage/help text.
const ProgramName = "gotag"

// DefaultConcurrency is the scheduler worker-pool size used when neither a
// flag nor a config value overrides it.
const DefaultConcurrency = 2

// relativeKeys lists the settings resolved relative to BaseFolder, matching
// AppConfiguration.base_relative.
var relativeKeys = map[string]bool{
	"log_folder":             true,
	"model_config_file":      true,
	"model_credentials_file": true,
}

// Config is the resolved set of process-wide settings.
type Config struct {
	BaseFolder            string
	LogFolder             string
	ModelConfigFile       string
	ModelCredentialsFile  string
	DefaultConcurrency    int
}

// Default returns the built-in defaults, with BaseFolder resolved to the
// user's XDG data directory when one isn't supplied by the caller, rather
// than falling back to the current working directory.
func Default() Config {
	base, err := xdg.DataFile(ProgramName)
	if err != nil {
		base = "."
	} else {
		base = filepath.Dir(base)
	}
	return Config{
		BaseFolder:           base,
		LogFolder:            "logs",
		ModelConfigFile:      "models.json",
		ModelCredentialsFile: ".credentials.json",
		DefaultConcurrency:   DefaultConcurrency,
	}
}

// LogFolderPath returns LogFolder resolved relative to BaseFolder.
func (c Config) LogFolderPath() string {
	return filepath.Join(c.BaseFolder, c.LogFolder)
}

// ModelConfigPath returns ModelConfigFile resolved relative to BaseFolder.
func (c Config) ModelConfigPath() string {
	return filepath.Join(c.BaseFolder, c.ModelConfigFile)
}

// ModelCredentialsPath returns ModelCredentialsFile resolved relative to
// BaseFolder.
func (c Config) ModelCredentialsPath() string {
	return filepath.Join(c.BaseFolder, c.ModelCredentialsFile)
}
