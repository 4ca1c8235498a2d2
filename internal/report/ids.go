package report

import (
	"fmt"
	"strings"

	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/runlog"
)

// filterByUUIDPrefix narrows results to the one case whose uuid starts
// with prefix (case-insensitive), failing if zero or more than one case
// matches.
func filterByUUIDPrefix(results []runlog.Result, prefix string) ([]runlog.Result, error) {
	lower := strings.ToLower(prefix)
	var matches []runlog.Result
	for _, r := range results {
		if strings.HasPrefix(strings.ToLower(caseUUID(r)), lower) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, gerr.NewNotFound("case", prefix)
	case 1:
		return matches, nil
	default:
		ids := make([]string, len(matches))
		for i, r := range matches {
			ids[i] = caseUUID(r)
		}
		return nil, gerr.NewInvalidInput("case", fmt.Sprintf("prefix %q matches multiple cases: %s", prefix, strings.Join(ids, ", ")), nil)
	}
}
