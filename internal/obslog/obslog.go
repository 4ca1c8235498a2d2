// Package obslog builds the structured logger used throughout gotag: a
// log/slog.Logger whose handler fans out to multiple sinks (console +
// optional run-log file) via github.com/samber/slog-multi, the same
// "one call site, several destinations" shape dagu's command logging uses
// io.MultiWriter for, reimplemented at the slog.Handler level so each sink
// can have its own level and format.
package obslog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// Level names accepted in configuration and environment variables, matching
// the GetEnvLogLevel convention of mapping lowercase strings to slog.Level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ParseLevel converts a level name to a slog.Level, defaulting to Info for
// anything unrecognized rather than failing — logging configuration should
// never be the reason a run can't start.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options configures the root logger.
type Options struct {
	// Level is the minimum level written to Console.
	Level slog.Level
	// Console is the primary human-facing sink (defaults to os.Stderr).
	Console io.Writer
	// JSON selects JSON output for Console instead of slog's text handler.
	JSON bool
	// RunLogWriter, when non-nil, receives every record at LevelDebug
	// regardless of Level, so a run's full log trails its run-log file
	// even when the console is quieter.
	RunLogWriter io.Writer
}

// New builds the root *slog.Logger. With a single sink it behaves like a
// plain slog.New; with two it fans records out via slogmulti so both
// receive independent handlers.
func New(opts Options) *slog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleHandler := newHandler(console, opts.Level, opts.JSON)
	if opts.RunLogWriter == nil {
		return slog.New(consoleHandler)
	}

	fileHandler := newHandler(opts.RunLogWriter, slog.LevelDebug, true)
	return slog.New(slogmulti.Fanout(consoleHandler, fileHandler))
}

func newHandler(w io.Writer, level slog.Level, asJSON bool) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}
	if asJSON {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// WithRun returns a derived logger that always includes the run
// identifier, the structured-logging equivalent of the OpContext chain
// used for error messages.
func WithRun(logger *slog.Logger, runUUID string) *slog.Logger {
	return logger.With("run", runUUID)
}

// WithCase returns a derived logger scoped to one case within a run.
func WithCase(logger *slog.Logger, caseUUID string) *slog.Logger {
	return logger.With("case", caseUUID)
}

// ctxKey is unexported so only this package can stash a logger on a
// context.Context, the usual pattern for request-scoped values.
type ctxKey struct{}

// Into returns a context carrying logger, retrievable with From.
func Into(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From returns the logger stashed on ctx, or slog.Default() if none was set.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
