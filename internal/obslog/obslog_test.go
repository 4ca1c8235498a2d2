package obslog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
}

func TestNewFansOutToBothSinksIndependently(t *testing.T) {
	t.Parallel()

	var console, runLog bytes.Buffer
	logger := New(Options{
		Level:        slog.LevelWarn,
		Console:      &console,
		RunLogWriter: &runLog,
	})

	logger.Info("quiet on console, loud in run log")

	require.Empty(t, console.String(), "console handler is above Info level")
	require.Contains(t, runLog.String(), "quiet on console, loud in run log")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(runLog.String())), &record))
}

func TestWithRunAndWithCaseAttachIdentifiers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := New(Options{Level: slog.LevelInfo, Console: &buf, JSON: true})

	scoped := WithCase(WithRun(base, "run-uuid"), "case-uuid")
	scoped.Info("stage started")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	require.Equal(t, "run-uuid", record["run"])
	require.Equal(t, "case-uuid", record["case"])
}

func TestIntoFromRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Console: &buf})
	ctx := Into(context.Background(), logger)
	require.Same(t, logger, From(ctx))

	require.Equal(t, slog.Default(), From(context.Background()))
}
