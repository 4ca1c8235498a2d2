package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"

	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/pathutil"
)

// Merge produces the effective configuration for one pipeline run: start
// from replacement if the caller supplied one (a whole alternate config,
// e.g. loaded from a file), otherwise start from defaults; take a deep copy
// of that base via mergo (merging it onto an empty map with WithOverride
// stands in for a dedicated deep-copy library); then apply the flat
// dotted-path patch on top, refusing to collapse any subtree into a
// scalar.
func Merge(defaults, replacement map[string]any, patch map[string]string) (map[string]any, error) {
	base := defaults
	if replacement != nil {
		base = replacement
	}

	copied := map[string]any{}
	if err := mergo.Merge(&copied, base, mergo.WithOverride); err != nil {
		return nil, gerr.NewMisconfigured("<merge>", "failed to copy base configuration", err)
	}

	patched, err := pathutil.ApplyPatch(copied, patch)
	if err != nil {
		return nil, gerr.NewMisconfigured("<patch>", err.Error(), err)
	}
	return patched, nil
}

// Validate walks config looking for leaves still holding a Required
// sentinel and returns a gerr.MissingRequiredError listing every such
// dotted path, annotated with the description from defaults, the same
// check ensure_required_configs performed before a pipeline could run.
func Validate(pipelineName string, defaults, config map[string]any) error {
	flatConfig := pathutil.Flatten(config)

	var missing []string
	for _, path := range pathutil.SortedKeys(flatConfig) {
		if isRequired(flatConfig[path]) {
			missing = append(missing, path)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	descriptions := DescribeRequired(defaults)
	var help strings.Builder
	help.WriteString("Required settings:")
	for _, path := range missing {
		desc := descriptions[path]
		if r, ok := asRequired(flatConfig[path]); ok && desc == "" {
			desc = r.Description
		}
		help.WriteString("\n  " + path + ": " + desc)
	}
	return fmt.Errorf("%w\n%s", gerr.NewMissingRequired(missing), help.String())
}

// DescribeRequired returns the dotted path -> description of every Required
// leaf declared in defaults, used to render the "Required settings:" help
// block a missing-config error shows.
func DescribeRequired(defaults map[string]any) map[string]string {
	flat := pathutil.Flatten(defaults)
	out := map[string]string{}
	for path, v := range flat {
		if r, ok := asRequired(v); ok {
			out[path] = r.Description
		}
	}
	return out
}

func isRequired(v any) bool {
	_, ok := asRequired(v)
	return ok
}

func asRequired(v any) (Required, bool) {
	switch t := v.(type) {
	case Required:
		return t, true
	case *Required:
		return *t, true
	default:
		return Required{}, false
	}
}

func isInternal(v any) bool {
	switch v.(type) {
	case Internal, *Internal:
		return true
	default:
		return false
	}
}

// DiffEntry is one row of a configuration diff: the dotted path, the
// default value (nil if the key is new), and the effective value (nil if
// the key was removed).
type DiffEntry struct {
	Path    string
	Default any
	Value   any
}

// Diff compares config against defaults leaf by leaf, excluding Internal
// keys in both directions, and rendering any remaining Required default as
// the literal "PROMPT" — the Go form of Pipeline.diff_configs.
func Diff(defaults, config map[string]any) []DiffEntry {
	flatDefaults := pathutil.Flatten(defaults)
	flatConfig := pathutil.Flatten(config)

	var entries []DiffEntry
	for _, path := range pathutil.SortedKeys(flatConfig) {
		v := flatConfig[path]
		def, present := flatDefaults[path]
		if !present {
			entries = append(entries, DiffEntry{Path: path, Default: nil, Value: v})
			continue
		}
		if isInternal(def) {
			continue
		}
		if def != v {
			entries = append(entries, DiffEntry{Path: path, Default: FormatValue(def), Value: v})
		}
	}
	for _, path := range pathutil.SortedKeys(flatDefaults) {
		def := flatDefaults[path]
		if isInternal(def) {
			continue
		}
		if _, present := flatConfig[path]; !present {
			entries = append(entries, DiffEntry{Path: path, Default: FormatValue(def), Value: nil})
		}
	}
	return entries
}
