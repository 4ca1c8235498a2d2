package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/pathutil"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/runlog"
	"github.com/gotag/gotag/internal/sink"
)

// Compare diffs two runs of the same pipeline on overlapping case uuids.
// Identical run uuids degenerate to Summarize(a). Differing pipeline
// names are refused outright. Otherwise case uuids split into justA,
// justB and both; rows for both are sorted by the composite key
// 4*statusB + statusA (pass=0, fail=1, error=2), and a footer reports the
// split's sizes.
func Compare(s sink.Sink, spec *pipeline.Spec, a, b *runlog.RunLog) error {
	if a.UUID == b.UUID {
		return Summarize(s, spec, a)
	}
	if a.Metadata.Pipeline.Name != b.Metadata.Pipeline.Name {
		return gerr.NewInvalidInput("compare", fmt.Sprintf(
			"run A uses pipeline %q but run B uses pipeline %q", a.Metadata.Pipeline.Name, b.Metadata.Pipeline.Name), nil)
	}

	byUUID := func(log *runlog.RunLog) map[string]runlog.Result {
		m := make(map[string]runlog.Result, len(log.Results))
		for _, r := range log.Results {
			m[caseUUID(r)] = r
		}
		return m
	}
	am, bm := byUUID(a), byUUID(b)

	var justA, justB, both []string
	for uuid := range am {
		if _, ok := bm[uuid]; ok {
			both = append(both, uuid)
		} else {
			justA = append(justA, uuid)
		}
	}
	for uuid := range bm {
		if _, ok := am[uuid]; !ok {
			justB = append(justB, uuid)
		}
	}
	sort.Strings(justA)
	sort.Strings(justB)
	sort.Strings(both)

	type row struct {
		uuid             string
		statusA, statusB CaseStatus
	}
	rows := make([]row, 0, len(both))
	for _, uuid := range both {
		rows = append(rows, row{uuid, classify(spec, am[uuid]), classify(spec, bm[uuid])})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return int(rows[i].statusB)*4+int(rows[i].statusA) < int(rows[j].statusB)*4+int(rows[j].statusA)
	})

	allIDs := make([]string, 0, len(justA)+len(justB)+len(both))
	allIDs = append(allIDs, justA...)
	allIDs = append(allIDs, justB...)
	allIDs = append(allIDs, both...)
	shorten, err := pathutil.IDShortener(allIDs)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"id", "status A", "status B"})
	for _, r := range rows {
		t.AppendRow(table.Row{shorten(r.uuid), r.statusA.String(), r.statusB.String()})
	}
	for _, line := range strings.Split(t.Render(), "\n") {
		s.Print(line)
	}

	if len(justA) > 0 {
		s.Print(fmt.Sprintf("only in A (%d): %s", len(justA), shortenJoin(shorten, justA)))
	}
	if len(justB) > 0 {
		s.Print(fmt.Sprintf("only in B (%d): %s", len(justB), shortenJoin(shorten, justB)))
	}
	s.Print(fmt.Sprintf("only in A: %d, only in B: %d, both: %d", len(justA), len(justB), len(both)))
	return nil
}

func shortenJoin(shorten pathutil.ShortIDFunc, ids []string) string {
	short := make([]string, len(ids))
	for i, id := range ids {
		short[i] = shorten(id)
	}
	return strings.Join(short, ", ")
}
