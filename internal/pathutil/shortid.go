package pathutil

import (
	"regexp"
	"sort"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// MinimalUniquePrefixLength returns the shortest prefix length L such that
// truncating every string in ids to L characters keeps them all distinct.
// Every id gets the length of the longest per-id minimal prefix, so the
// resulting prefixes are uniform length.
func MinimalUniquePrefixLength(ids []string) int {
	maxLen := 0
	for _, id := range ids {
		for length := 1; length <= len(id); length++ {
			prefix := id[:length]
			if isUniquePrefix(prefix, id, ids) {
				if length > maxLen {
					maxLen = length
				}
				break
			}
		}
	}
	return maxLen
}

func isUniquePrefix(prefix, owner string, ids []string) bool {
	for _, other := range ids {
		if other != owner && len(other) >= len(prefix) && other[:len(prefix)] == prefix {
			return false
		}
	}
	return true
}

// ShortIDFunc truncates a uuid down to the shortest length that keeps the
// whole identifier set unique, floored at 3 characters.
type ShortIDFunc func(uuid string) string

// IDShortener validates that every id is a well-formed, unique UUID and
// returns a ShortIDFunc that truncates to the minimal safe length (floor 3).
func IDShortener(ids []string) (ShortIDFunc, error) {
	for _, id := range ids {
		if !uuidPattern.MatchString(id) {
			return nil, &InvalidUUIDError{ID: id}
		}
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, &DuplicateUUIDError{ID: id}
		}
		seen[id] = struct{}{}
	}

	prefixLen := MinimalUniquePrefixLength(ids)
	if prefixLen < 3 {
		prefixLen = 3
	}
	return func(uuid string) string {
		if len(uuid) <= prefixLen {
			return uuid
		}
		return uuid[:prefixLen]
	}, nil
}

// InvalidUUIDError reports a case id that does not match the canonical
// 8-4-4-4-12 hex UUID shape.
type InvalidUUIDError struct{ ID string }

func (e *InvalidUUIDError) Error() string { return "not a valid uuid: " + e.ID }

// DuplicateUUIDError reports two cases sharing the same id.
type DuplicateUUIDError struct{ ID string }

func (e *DuplicateUUIDError) Error() string { return "duplicate uuid: " + e.ID }

// SortedKeys returns the keys of m in ascending order, a small helper used
// wherever deterministic map iteration is required (config diff rendering,
// report table rows).
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
