package gerr

import "strings"

// OpContext is an immutable chain of human-readable operation descriptions,
// e.g. "Pipeline 'menu' configuring stages: stage 'extract'". Because
// DAG execution runs stages concurrently, a shared mutable stack would race;
// each goroutine instead carries its own OpContext value and extends it with
// Push when it descends into a nested operation.
type OpContext struct {
	parent *OpContext
	msg    string
}

// Push returns a new context with msg appended after the receiver's chain.
// The receiver is left unmodified, so sibling goroutines that pushed from
// the same parent never see each other's frames.
func (c *OpContext) Push(msg string) *OpContext {
	return &OpContext{parent: c, msg: msg}
}

// String renders the chain oldest-first, joined with " > ".
func (c *OpContext) String() string {
	if c == nil {
		return ""
	}
	frames := make([]string, 0, 4)
	for cur := c; cur != nil; cur = cur.parent {
		frames = append(frames, cur.msg)
	}
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	return strings.Join(frames, " > ")
}

// Wrap formats err with the context chain prefixed. If c is nil or empty
// the error is returned unwrapped.
func (c *OpContext) Wrap(err error) error {
	if err == nil {
		return nil
	}
	ctx := c.String()
	if ctx == "" {
		return err
	}
	return &contextualError{ctx: ctx, err: err}
}

type contextualError struct {
	ctx string
	err error
}

func (e *contextualError) Error() string {
	return e.ctx + ": " + e.err.Error()
}

func (e *contextualError) Unwrap() error { return e.err }
