package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gotag/gotag/internal/gerr"
)

// FileDescriptor is the minimal {name, description} shape a
// "*.pipeline.json" sidecar file carries. It exists purely for listing:
// the DAG factory for a pipeline is always Go code (CreateDAGFunc), never
// loaded from this file.
type FileDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DiscoverFiles finds every "*.pipeline.json" sidecar file under root
// (recursively) and parses its {name, description} pair. Used by the
// `pipelines` subcommand to list what's available without importing
// every sample package's Go symbols directly.
func DiscoverFiles(root string) ([]FileDescriptor, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.pipeline.json")
	if err != nil {
		return nil, gerr.NewInvalidInput("pipeline discovery", err.Error(), err)
	}

	descriptors := make([]FileDescriptor, 0, len(matches))
	for _, rel := range matches {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, gerr.NewInvalidInput("pipeline discovery", err.Error(), err)
		}
		var d FileDescriptor
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, gerr.NewInvalidInput("pipeline discovery", "parsing "+rel+": "+err.Error(), err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}
