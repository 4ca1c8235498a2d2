// Package pipeline binds a pipeline Spec and an effective configuration
// to an executable DAG, registers the per-pipeline mock models a spec's
// CreateDAG may depend on, and optionally wraps the per-turn DAG for
// multi-turn cases. The per-turn DAG is always the primitive; a
// "multi-turn" pipeline is a synthetic wrapper built around it.
package pipeline

import (
	"github.com/gotag/gotag/internal/dagcore"
	"github.com/gotag/gotag/internal/registry"
	"github.com/gotag/gotag/internal/runlog"
	"github.com/gotag/gotag/internal/sink"
)

// CreateDAGFunc builds the per-turn DAG for one pipeline run, given the
// pipeline name, the merged+validated configuration, and a registry
// already carrying this run's mock models. It must return a validated
// DAG or an error.
type CreateDAGFunc func(name string, config map[string]any, reg *registry.Registry) (*dagcore.DAG, error)

// ExpectedFunc extracts the expected answer from a case snapshot
// (dagcore.Context.Snapshot's shape), optionally narrowed to one turn
// index. Used by the perfect/flakey mock models; real pipelines typically
// leave this nil and implement expected-answer extraction as a DAG stage
// instead.
type ExpectedFunc func(caseSnapshot map[string]any, turnIndex *int) (any, error)

// PassedPredicateFunc classifies a completed result as a pass or a fail.
// Must be total for every result shape the pipeline can produce;
// DefaultPassedPredicate (succeeded) is used when a spec leaves this nil.
type PassedPredicateFunc func(result runlog.Result) bool

// DefaultPassedPredicate treats every successful result as a pass, the
// fallback used for a spec with no PassedPredicate.
func DefaultPassedPredicate(result runlog.Result) bool { return result.Succeeded }

// Column is one summarizer table column: a header name, renderer
// parameters passed through to whatever table widget the report package
// uses, and a cell-render callback.
type Column struct {
	Name     string
	Params   map[string]any
	Contents func(result runlog.Result, turnIndex int) string
}

// Summarizer is either a structured table spec (Columns) or a fully
// custom callback (Func) that takes over rendering entirely.
type Summarizer struct {
	Columns []Column
	Func    func(s sink.Sink, log *runlog.RunLog)
}

// Formatter holds per-case/per-turn rendering hooks for the `format`
// subcommand, or a fully custom callback that replaces the default
// per-case rendering entirely.
type Formatter struct {
	BeforeCase func(result runlog.Result) string
	AfterCase  func(result runlog.Result) string
	BeforeTurn func(result runlog.Result) string
	AfterTurn  func(result runlog.Result) string
	Func       func(s sink.Sink, log *runlog.RunLog)
}

// Mappings names the conventional case/turn fields generic reporting
// relies on. Turns is empty for a pipeline with no turn concept; when
// set, Initial/Expected/Observed name, respectively: the case field
// seeding turn 1, the per-turn field holding the expected answer, and the
// per-turn DAG stage name holding the observed answer.
type Mappings struct {
	Initial  string
	Expected string
	Observed string
	User     string
	Turns    string
}

// Spec is the immutable descriptor for one pipeline: its name and default
// configuration, its DAG factory, and its reporting extension points.
type Spec struct {
	Name            string
	Description     string
	Configuration   map[string]any
	CreateDAG       CreateDAGFunc
	Expected        ExpectedFunc
	PassedPredicate PassedPredicateFunc
	Summarizer      Summarizer
	Formatter       Formatter
	Mappings        Mappings
}

// Passed evaluates spec's passed predicate, falling back to
// DefaultPassedPredicate when the spec didn't supply one.
func (s *Spec) Passed(result runlog.Result) bool {
	if s.PassedPredicate != nil {
		return s.PassedPredicate(result)
	}
	return DefaultPassedPredicate(result)
}
