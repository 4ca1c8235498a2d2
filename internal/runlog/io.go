package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gotag/gotag/internal/gerr"
)

// WriteFile serializes log to path as indented JSON, creating path's
// parent directory if needed.
func WriteFile(path string, log *RunLog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return gerr.NewMisconfigured(path, "failed to create log folder", err)
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return gerr.NewMisconfigured(path, "failed to encode run log", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return gerr.NewMisconfigured(path, "failed to write run log", err)
	}
	return nil
}

// ReadFile parses the run log document at path.
func ReadFile(path string) (*RunLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gerr.NewNotFound("run log", path)
	}
	var log RunLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, gerr.NewMisconfigured(path, "failed to parse run log", err)
	}
	return &log, nil
}

// PathFor returns the canonical run-log file path under logFolder for a
// given run UUID: "<logFolder>/<uuid>.json".
func PathFor(logFolder, runUUID string) string {
	return filepath.Join(logFolder, runUUID+".json")
}
