package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/sink"
)

// loadCases reads a JSON array of case objects from path.
func loadCases(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gerr.NewInvalidInput("cases", err.Error(), err)
	}
	var cases []map[string]any
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, gerr.NewInvalidInput("cases", "not a JSON array of case objects: "+err.Error(), err)
	}
	return cases, nil
}

// writeCases serializes cases back to path as indented JSON, matching the
// formatting loadCases expects to round-trip.
func writeCases(path string, cases []map[string]any) error {
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return gerr.NewInvalidInput("cases", err.Error(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return gerr.NewMisconfigured(path, "failed to write cases file", err)
	}
	return nil
}

// parsePatch turns "k=v" CLI args into the flat dotted-path patch map
// config.Merge expects, failing on any argument missing an "=".
func parsePatch(args []string) (map[string]string, error) {
	patch := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, gerr.NewInvalidInput("patch", "expected key=value, got "+arg, nil)
		}
		patch[key] = value
	}
	return patch, nil
}

func stdoutSink() sink.Sink { return sink.WriterSink{W: os.Stdout} }
