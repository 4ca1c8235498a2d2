// Package config implements the layered pipeline configuration model:
// defaults declare each setting's shape using two sentinel markers —
// Required (must arrive via a "key=value" patch on the command line) and
// Internal (filled in by the pipeline runtime itself, never shown to a
// user) — and Merge/Validate/Diff operate over a tree of map[string]any
// that mixes plain values with those sentinels.
package config

// Required marks a configuration leaf that must be supplied by the caller,
// either via a replacement configuration or a "key=value" patch argument,
// before a pipeline can run. Description is shown in the help text Validate assembles when the
// value is still missing.
type Required struct {
	Description string
}

// Internal marks a configuration leaf that the pipeline runtime itself
// populates (for example, a registry handle built after merge). Internal
// values are never listed as missing by Validate and never appear in a
// Diff, because showing a user "this differs from the default" is
// meaningless for something they can't set.
type Internal struct{}

// FormatValue renders a default value for display, turning a Required
// sentinel into the literal string "PROMPT" and passing everything else
// through unchanged.
func FormatValue(v any) any {
	if _, ok := v.(Required); ok {
		return "PROMPT"
	}
	if _, ok := v.(*Required); ok {
		return "PROMPT"
	}
	return v
}
