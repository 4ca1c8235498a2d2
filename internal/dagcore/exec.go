package dagcore

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/gotag/gotag/internal/gerr"
)

// taskResult is what one stage goroutine reports back to the scheduling
// loop: its node name so Execute can look up outputs, the value to store,
// and any error the stage raised.
type taskResult struct {
	name  string
	value any
	err   error
}

// Execute runs dag against c to completion, honoring dependency order.
// Ready nodes (no remaining unsatisfied inputs) run concurrently as
// goroutines on the same results channel; dependencies are the only
// ordering constraint, so parallelism is naturally bounded by the ready
// frontier.
//
// If a stage fails, Execute does not cancel in-flight siblings: it lets
// outstanding work quiesce and then returns the first error observed.
func Execute(ctx context.Context, dag *DAG, c *Context) error {
	waiting := make(map[string]int, len(dag.names))
	for _, name := range dag.names {
		waiting[name] = len(dag.nodes[name].inputs)
	}

	results := make(chan taskResult)
	running := 0

	launch := func(name string) {
		running++
		n := dag.nodes[name]
		go func() {
			value, err := runStage(ctx, n, c)
			results <- taskResult{name: name, value: value, err: err}
		}()
	}

	for _, name := range dag.sources() {
		launch(name)
	}

	var firstErr error
	for running > 0 {
		res := <-results
		running--

		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}

		if err := c.setStage(res.name, res.value); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, out := range dag.nodes[res.name].outputs {
			waiting[out]--
			if waiting[out] == 0 {
				launch(out)
			}
		}
	}

	if firstErr != nil {
		return firstErr
	}

	var pending []string
	for name, remaining := range waiting {
		if remaining > 0 {
			pending = append(pending, name)
		}
	}
	if len(pending) > 0 {
		return gerr.NewDeadlock(pending)
	}
	return nil
}

// runStage invokes a node's function, recovering a panic into a plain
// error so one misbehaving stage can never bring down the whole process;
// an exception from a stage function is isolated to that case.
func runStage(ctx context.Context, n *node, c *Context) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage %q panicked: %v\n%s", n.name, r, debug.Stack())
		}
	}()
	return n.fn(ctx, c)
}
