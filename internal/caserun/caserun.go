// Package caserun implements the one piece of behavior shared by the
// director (running a top-level case) and the pipeline's turn wrapper
// (running each turn as its own isolated case): build a fresh
// dagcore.Context, execute the DAG, and assemble the result record,
// recording an Exception instead of propagating an error so one case's
// failure never aborts its siblings.
package caserun

import (
	"context"
	"time"

	"github.com/gotag/gotag/internal/dagcore"
	"github.com/gotag/gotag/internal/runlog"
)

// Clock abstracts wall-clock time so tests can inject deterministic
// timestamps; RealClock uses time.Now.
type Clock interface {
	Now() time.Time
}

// RealClock reports the actual wall-clock time in UTC.
type RealClock struct{}

// Now returns time.Now().UTC().
func (RealClock) Now() time.Time { return time.Now().UTC() }

const timeFormat = "2006-01-02 15:04:05.000000+00:00"

// Run executes dag against a fresh context seeded from caseData, and
// returns the populated runlog.Result. It never panics or returns an
// error itself - any stage failure (including a recovered stage panic,
// isolated by dagcore.Execute) is captured as the Result's Exception, so
// stage errors are never retried and never propagate across cases.
func Run(ctx context.Context, dag *dagcore.DAG, caseData map[string]any, clock Clock) runlog.Result {
	if clock == nil {
		clock = RealClock{}
	}

	start := clock.Now()
	result := runlog.Result{
		Case:     caseData,
		Metadata: runlog.ResultMetadata{Start: start.Format(timeFormat)},
	}

	caseCtx := dagcore.NewContext(caseData)
	if err := dagcore.Execute(ctx, dag, caseCtx); err != nil {
		result.Exception = &runlog.Exception{
			Message: err.Error(),
			Time:    clock.Now().Format(timeFormat),
		}
		result.Stages = caseCtx.Stages()
		return result
	}

	end := clock.Now()
	result.Succeeded = true
	result.Stages = caseCtx.Stages()
	result.Metadata.End = end.Format(timeFormat)
	result.Metadata.Elapsed = end.Sub(start).String()
	return result
}
