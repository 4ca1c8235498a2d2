package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gotag/gotag/internal/pathutil"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/runlog"
	"github.com/gotag/gotag/internal/sink"
)

// Summarize renders one run as a table of id/status rows plus any
// pipeline-defined summarizer columns, followed by Total/Complete/Error/
// Passed/Failed counts with percentages. A result counts as Passed iff it
// succeeded and the pipeline's passed predicate accepts it.
func Summarize(s sink.Sink, spec *pipeline.Spec, log *runlog.RunLog) error {
	if spec.Summarizer.Func != nil {
		spec.Summarizer.Func(s, log)
		return nil
	}

	ids := make([]string, len(log.Results))
	for i, r := range log.Results {
		ids[i] = caseUUID(r)
	}
	shorten, err := pathutil.IDShortener(ids)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	header := table.Row{"id", "status"}
	for _, col := range spec.Summarizer.Columns {
		header = append(header, col.Name)
	}
	t.AppendHeader(header)

	var total, complete, errored, passed, failed int
	for i, r := range log.Results {
		total++
		status := "ERROR"
		if r.Succeeded {
			status = "COMPLETE"
			complete++
		} else {
			errored++
		}
		switch classify(spec, r) {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		}

		row := table.Row{shorten(ids[i]), status}
		for _, col := range spec.Summarizer.Columns {
			row = append(row, col.Contents(r, lastTurnIndex(r)))
		}
		t.AppendRow(row)
	}

	for _, line := range strings.Split(t.Render(), "\n") {
		s.Print(line)
	}

	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}
	s.Print(fmt.Sprintf("Total: %d", total))
	s.Print(fmt.Sprintf("Complete: %d (%.1f%%)", complete, pct(complete)))
	s.Print(fmt.Sprintf("Error: %d (%.1f%%)", errored, pct(errored)))
	s.Print(fmt.Sprintf("Passed: %d (%.1f%%)", passed, pct(passed)))
	s.Print(fmt.Sprintf("Failed: %d (%.1f%%)", failed, pct(failed)))
	return nil
}

// lastTurnIndex reports the index of the last turn recorded under the
// "turns" stage, or 0 for a single-turn result. Summarizer columns that
// need turn-scoped data see the final turn's outcome.
func lastTurnIndex(r runlog.Result) int {
	turns, ok := r.Stages["turns"].([]runlog.Result)
	if !ok || len(turns) == 0 {
		return 0
	}
	return len(turns) - 1
}
