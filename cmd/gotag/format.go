package main

import (
	"github.com/spf13/cobra"

	"github.com/gotag/gotag/internal/report"
	"github.com/gotag/gotag/internal/runlog"
)

func newFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format <run-prefix> [case-prefix]",
		Short: "Render one run's cases in detail",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()

			path, err := runlog.ResolvePrefix(app.cfg.LogFolderPath(), args[0])
			if err != nil {
				return err
			}
			log, err := runlog.ReadFile(path)
			if err != nil {
				return err
			}
			spec, err := lookupPipeline(log.Metadata.Pipeline.Name)
			if err != nil {
				return err
			}

			var caseUUIDPrefix string
			if len(args) == 2 {
				caseUUIDPrefix = args[1]
			}
			return report.Format(stdoutSink(), spec, log, caseUUIDPrefix)
		},
	}
}

func newSummarizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <run-prefix>",
		Short: "Summarize one run's pass/fail/error counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()

			path, err := runlog.ResolvePrefix(app.cfg.LogFolderPath(), args[0])
			if err != nil {
				return err
			}
			log, err := runlog.ReadFile(path)
			if err != nil {
				return err
			}
			spec, err := lookupPipeline(log.Metadata.Pipeline.Name)
			if err != nil {
				return err
			}
			return report.Summarize(stdoutSink(), spec, log)
		},
	}
}

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <run-prefix-a> <run-prefix-b>",
		Short: "Diff two runs of the same pipeline on overlapping case ids",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()

			pathA, err := runlog.ResolvePrefix(app.cfg.LogFolderPath(), args[0])
			if err != nil {
				return err
			}
			pathB, err := runlog.ResolvePrefix(app.cfg.LogFolderPath(), args[1])
			if err != nil {
				return err
			}
			logA, err := runlog.ReadFile(pathA)
			if err != nil {
				return err
			}
			logB, err := runlog.ReadFile(pathB)
			if err != nil {
				return err
			}
			spec, err := lookupPipeline(logA.Metadata.Pipeline.Name)
			if err != nil {
				return err
			}
			return report.Compare(stdoutSink(), spec, logA, logB)
		},
	}
}
