// Package report implements the three read-only run-log consumers:
// Summarize (aggregate pass/fail/error counts into a table), Format
// (render one run's cases in detail), and Compare (diff two runs on
// overlapping case identifiers). All three write lines through a Sink,
// keeping rich rendering out of this package entirely.
package report

import (
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/runlog"
)

// CaseStatus classifies one result against a pipeline's passed predicate:
// pass (succeeded and the predicate accepts it), fail (succeeded but the
// predicate rejects it), or error (the case didn't succeed at all).
// Compare sorts rows by the composite key 4*statusB + statusA.
type CaseStatus int

const (
	StatusPass CaseStatus = iota
	StatusFail
	StatusError
)

func (s CaseStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	default:
		return "error"
	}
}

func classify(spec *pipeline.Spec, result runlog.Result) CaseStatus {
	if !result.Succeeded {
		return StatusError
	}
	predicate := spec.PassedPredicate
	if predicate == nil {
		predicate = pipeline.DefaultPassedPredicate
	}
	if predicate(result) {
		return StatusPass
	}
	return StatusFail
}

func caseUUID(r runlog.Result) string {
	uuid, _ := r.Case["uuid"].(string)
	return uuid
}
