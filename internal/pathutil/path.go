// Package pathutil implements the dotted-path map operations the rest of
// gotag builds on: Get/Set/Flatten over nested map[string]any trees (the
// Go equivalent of glom's path syntax), a patch applier with an
// overwrite-guard that refuses to collapse a subtree, UUID short-id
// computation, and a small boolean keyword-filter expression evaluator.
package pathutil

import (
	"strconv"
	"strings"
)

// Split breaks a dotted path like "model.credentials.api_key" into its
// segments. Segments are never themselves allowed to contain a dot.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Get walks tree following path's segments, returning (value, true) if every
// segment resolves through a map[string]any, or (nil, false) otherwise.
func Get(tree map[string]any, path string) (any, bool) {
	segments := Split(path)
	if len(segments) == 0 {
		return nil, false
	}
	var cur any = tree
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set writes value at path, creating intermediate maps as needed. An
// existing non-map value in the way of descent is silently replaced by a
// new map — callers that want the overwrite-guard semantics of ApplyPatch
// should use that function instead.
func Set(tree map[string]any, path string, value any) {
	segments := Split(path)
	if len(segments) == 0 {
		return
	}
	cur := tree
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg]
		if !ok {
			created := map[string]any{}
			cur[seg] = created
			cur = created
			continue
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			nextMap = map[string]any{}
			cur[seg] = nextMap
		}
		cur = nextMap
	}
	cur[segments[len(segments)-1]] = value
}

// Flatten recursively flattens a nested map into a single-level map keyed
// by dotted paths.
func Flatten(tree map[string]any) map[string]any {
	out := map[string]any{}
	flattenInto(tree, "", out)
	return out
}

func flattenInto(tree map[string]any, prefix string, out map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(nested, key, out)
		} else {
			out[key] = v
		}
	}
}

// ParsePatches turns "key=value" argument strings into a flat map, the way
// parse_patches did.
func ParsePatches(bindings []string) (map[string]string, error) {
	patch := map[string]string{}
	for _, binding := range bindings {
		key, value, ok := strings.Cut(binding, "=")
		if !ok {
			return nil, &InvalidPatchError{Binding: binding}
		}
		patch[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return patch, nil
}

// InvalidPatchError reports a "key=value" binding that has no '='.
type InvalidPatchError struct {
	Binding string
}

func (e *InvalidPatchError) Error() string {
	return "invalid patch: '" + e.Binding + "'. Expected key=value."
}

// OverwriteError reports a patch path that would collapse an existing
// subtree into a scalar, along with hints toward the subtree's leaves.
type OverwriteError struct {
	Path  string
	Value string
	Hints []string
}

func (e *OverwriteError) Error() string {
	msg := "invalid patch for '" + e.Path + "=" + e.Value + "'. Patch would overwrite a dict."
	if len(e.Hints) > 0 {
		msg += " Did you mean\n"
		for _, h := range e.Hints {
			msg += "  " + h + "\n"
		}
	}
	return msg
}

// ApplyPatch returns a deep copy of tree with each dotted-path binding in
// patch applied. It refuses to overwrite an existing subtree (a map) with
// a scalar, returning an OverwriteError that enumerates the subtree's
// non-map leaf paths as a hint, the way apply_patch_in_place did.
func ApplyPatch(tree map[string]any, patch map[string]string) (map[string]any, error) {
	result := DeepCopy(tree)
	for path, raw := range patch {
		existing, ok := Get(result, path)
		if ok {
			if nested, isMap := existing.(map[string]any); isMap {
				hints := leafHints(nested, path)
				return nil, &OverwriteError{Path: path, Value: raw, Hints: hints}
			}
		}
		Set(result, path, coercePatchValue(raw))
	}
	return result, nil
}

func leafHints(node map[string]any, prefix string) []string {
	var hints []string
	for k := range Flatten(node) {
		hints = append(hints, prefix+"."+k)
	}
	return hints
}

// coercePatchValue converts a raw CLI string into bool/int/float when it
// unambiguously parses as one, and leaves it as a string otherwise. Patch
// values always arrive from the command line as strings; this keeps
// "stages.retries=3" writing an int rather than the literal "3".
func coercePatchValue(raw string) any {
	if raw == "true" {
		return true
	}
	if raw == "false" {
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// DeepCopy recursively copies a map[string]any / []any tree. Scalars are
// assumed immutable and are copied by value.
func DeepCopy(tree map[string]any) map[string]any {
	out := map[string]any{}
	for k, val := range tree {
		out[k] = deepCopyValue(val)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return DeepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
