// Package sink defines the narrow "print(line)" contract reporting and
// pipeline-defined formatter/summarizer hooks write through. This
// package is the seam where a caller plugs in whatever rendering it
// wants, from a plain io.Writer line-joiner to a rich table renderer.
package sink

import (
	"fmt"
	"io"
)

// Sink accepts one rendered line at a time. Pipeline formatter/summarizer
// callables and the report package both write exclusively through this
// interface so neither depends on a concrete rendering library.
type Sink interface {
	Print(line string)
}

// WriterSink adapts an io.Writer into a Sink, writing each line followed
// by a newline.
type WriterSink struct {
	W io.Writer
}

// Print writes line and a trailing newline to the underlying writer,
// silently dropping a write error the way a best-effort console sink
// would - there is no sensible recovery for a broken stdout.
func (s WriterSink) Print(line string) {
	fmt.Fprintln(s.W, line)
}
