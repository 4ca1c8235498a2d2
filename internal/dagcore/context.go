// Package dagcore implements building and executing a per-case graph of
// asynchronous stages. A DAG is built once per pipeline and re-executed
// once per case against a fresh Context; nodes never mutate shared state,
// so building is the only place that can fail on the graph's shape.
//
// Context is an explicit record type rather than a free-form mapping:
// Case, Turn and Metadata are typed fields, Stages is a write-once map
// guarded by a mutex, and a separate extra map (reached through Set/Get)
// holds the handful of stage-defined side channels a component like the
// realtime adapter's event log needs.
package dagcore

import (
	"fmt"
	"sync"
)

// Context is the per-case state threaded through one DAG execution. A
// single Context is created by caserun.Run at the start of a case, read
// and written by whichever goroutines are running that case's stages, and
// discarded once the case's RunResult has been assembled.
type Context struct {
	// Case is the input record being processed. Stages treat it as
	// read-only; nothing in this package ever mutates it.
	Case map[string]any

	// Turn holds the turn index when a single turn is being run in
	// isolation (see pipeline's turn wrapper); nil when running all
	// turns or when the pipeline has no turn concept.
	Turn *int

	// Metadata is a free-form annotation map, empty after NewContext;
	// nothing in this package writes it. Per-case start/end/elapsed
	// timing is recorded by caserun.Run on the result, not here.
	Metadata map[string]any

	mu     sync.Mutex
	stages map[string]any
	extra  map[string]any
}

// NewContext creates a Context for one case, with empty stage and extra
// maps ready to receive writes.
func NewContext(caseData map[string]any) *Context {
	return &Context{
		Case:     caseData,
		Metadata: map[string]any{},
		stages:   map[string]any{},
		extra:    map[string]any{},
	}
}

// Stage returns the recorded output of a previously-completed stage.
func (c *Context) Stage(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.stages[name]
	return v, ok
}

// Stages returns a shallow snapshot of every stage output recorded so far,
// used when assembling a RunResult.
func (c *Context) Stages() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.stages))
	for k, v := range c.stages {
		out[k] = v
	}
	return out
}

// Snapshot builds a plain map[string]any view of the context - {"case":
// ..., "stages": ..., "turn": ...} - for callers (model adapters, mock
// models) that only accept a generic map rather than a *Context.
func (c *Context) Snapshot() map[string]any {
	snap := map[string]any{
		"case":   c.Case,
		"stages": c.Stages(),
	}
	if c.Turn != nil {
		snap["turn"] = *c.Turn
	}
	return snap
}

// setStage records name's output, failing if it was already written: no
// stage name is ever written more than once.
func (c *Context) setStage(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.stages[name]; exists {
		return fmt.Errorf("internal error: node `stages.%s` already in context", name)
	}
	c.stages[name] = value
	return nil
}

// Set stores an arbitrary side value on the context, the Go form of a
// stage reaching into the context dict to stash something beyond its own
// return value (e.g. context["realtime_events"] = events).
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extra[key] = value
}

// Get retrieves a value previously stored with Set.
func (c *Context) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.extra[key]
	return v, ok
}
