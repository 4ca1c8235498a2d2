package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gotag/gotag/internal/director"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/report"
	"github.com/gotag/gotag/internal/runlog"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <pipeline> <cases> [k=v ...]",
		Short: "Run a pipeline's cases and write a new run log",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args[0], args[1], args[2:])
		},
	}
}

func newRerunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rerun <run-prefix> [k=v ...]",
		Short: "Re-run every case from a previous run log with the same pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rerunPipeline(cmd, args[0], args[1:])
		},
	}
}

func runPipeline(cmd *cobra.Command, pipelineName, casesPath string, patchArgs []string) error {
	app := newAppContext()

	spec, err := lookupPipeline(pipelineName)
	if err != nil {
		return err
	}
	cases, err := loadCases(casesPath)
	if err != nil {
		return err
	}
	patch, err := parsePatch(patchArgs)
	if err != nil {
		return err
	}

	return processAndReport(cmd.Context(), app, spec, nil, patch, cases)
}

func rerunPipeline(cmd *cobra.Command, prefix string, patchArgs []string) error {
	app := newAppContext()

	path, err := runlog.ResolvePrefix(app.cfg.LogFolderPath(), prefix)
	if err != nil {
		return err
	}
	previous, err := runlog.ReadFile(path)
	if err != nil {
		return err
	}
	spec, err := lookupPipeline(previous.Metadata.Pipeline.Name)
	if err != nil {
		return err
	}
	patch, err := parsePatch(patchArgs)
	if err != nil {
		return err
	}

	cases := make([]map[string]any, len(previous.Results))
	for i, r := range previous.Results {
		cases[i] = r.Case
	}

	return processAndReport(cmd.Context(), app, spec, previous.Metadata.Pipeline.Config, patch, cases)
}

// processAndReport builds a Director for spec, runs every case under a
// context cancelled on SIGINT/SIGTERM, writes the resulting run log, then
// prints its default summary.
func processAndReport(ctx context.Context, app *appContext, spec *pipeline.Spec, replacement map[string]any, patch map[string]string, cases []map[string]any) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	dir, err := director.New(director.Config{
		PipelineSpec:      spec,
		ReplacementConfig: replacement,
		Patch:             patch,
		MaxConcurrency:    app.cfg.DefaultConcurrency,
		Registry:          reg,
		Command:           strings.Join(os.Args, " "),
		RepoPath:          ".",
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
	}()

	progress := func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\r%d/%d cases complete", completed, total)
	}
	log := dir.ProcessAllCases(ctx, cases, progress)
	fmt.Fprintln(os.Stderr)

	if err := runlog.WriteFile(runlog.PathFor(app.cfg.LogFolderPath(), dir.RunUUID()), log); err != nil {
		return err
	}

	return report.Summarize(stdoutSink(), spec, log)
}
