// Package director builds one Pipeline, assembles run provenance, and
// fans a case list out across a bounded worker pool to produce an
// immutable run log.
package director

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gotag/gotag/internal/caserun"
	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/gitinfo"
	"github.com/gotag/gotag/internal/pathutil"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/registry"
	"github.com/gotag/gotag/internal/runlog"
)

// timeFormat renders run-log timestamps as microsecond-precision UTC.
const timeFormat = "2006-01-02 15:04:05.000000+00:00"

// ModelConfigKey is the pipeline configuration key the director reads to
// find the name of the model a case is routed to, used only for the
// audio/model-compatibility check below. Pipelines that route audio
// cases to a model under a different config key should validate that
// themselves; this default covers the common single-model pipeline shape
// every sample in this repository uses.
const ModelConfigKey = "model"

// AudioCapableModelTypes lists the model "type" metadata values the
// audio/model check accepts when a case carries an "audio" field.
var AudioCapableModelTypes = map[string]bool{
	"AZURE_OPEN_AI_REALTIME": true,
}

// ProgressFunc is invoked once per completed case, receiving the number
// completed so far and the batch total.
type ProgressFunc func(completed, total int)

// Config describes one Director construction.
type Config struct {
	PipelineSpec      *pipeline.Spec
	ReplacementConfig map[string]any
	Patch             map[string]string
	MaxConcurrency    int
	// Registry is the process-wide model registry; the Director builds
	// a per-pipeline child registry on top of it (via pipeline.New).
	Registry *registry.Registry
	// Command is the invocation command recorded in run-log metadata,
	// e.g. strings.Join(os.Args, " ").
	Command string
	// RepoPath is the working directory gitinfo.Collect inspects for
	// HEAD sha and edits; defaults to "." when empty.
	RepoPath string
	Clock    caserun.Clock
}

// Director orchestrates one run: it owns the assembled Pipeline, the
// run's provenance metadata, and the scheduling of cases across a
// bounded concurrency pool.
type Director struct {
	spec        *pipeline.Spec
	pipeline    *pipeline.Pipeline
	registry    *registry.Registry
	concurrency int
	runUUID     string
	metadata    runlog.Metadata
	clock       caserun.Clock
}

// New builds the pipeline (merge+validate config, register mocks, build
// the DAG, wrap for turns) and assembles the run's starting metadata:
// invocation command, start time, concurrency, pipeline name+config, and
// source-control provenance when RepoPath is inside a git repository.
func New(cfg Config) (*Director, error) {
	p, err := pipeline.New(cfg.PipelineSpec, cfg.ReplacementConfig, cfg.Patch, cfg.Registry)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.MaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	clock := cfg.Clock
	if clock == nil {
		clock = caserun.RealClock{}
	}
	start := clock.Now()

	metadata := runlog.Metadata{
		Command:     cfg.Command,
		Start:       start.Format(timeFormat),
		Concurrency: concurrency,
		Pipeline: runlog.PipelineMetadata{
			Name:   cfg.PipelineSpec.Name,
			Config: p.Config(),
		},
	}

	repoPath := cfg.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	if sha, edits, gitErr := gitinfo.Collect(repoPath); gitErr == nil {
		if sha != "" {
			metadata.SHA = sha
		}
		if len(edits) > 0 {
			metadata.Edits = edits
		}
	}

	return &Director{
		spec:        cfg.PipelineSpec,
		pipeline:    p,
		registry:    cfg.Registry,
		concurrency: concurrency,
		runUUID:     uuid.NewString(),
		metadata:    metadata,
		clock:       clock,
	}, nil
}

// Pipeline returns the assembled Pipeline, for callers that need its
// config/diff/DAG directly.
func (d *Director) Pipeline() *pipeline.Pipeline { return d.pipeline }

// RunUUID returns the fresh UUID assigned to this run.
func (d *Director) RunUUID() string { return d.runUUID }

// ProcessAllCases validates cases, then runs each through the pipeline's
// DAG under a worker pool bounded by MaxConcurrency, in input order;
// completion order may differ, but results preserve input order. A
// validation failure aborts before any case runs and is recorded as a
// top-level metadata exception with an empty results list. If ctx is
// cancelled mid-run, in-flight workers finish their current case; cases
// not yet started are dropped with no result record, and the batch's
// exception records how many completed.
func (d *Director) ProcessAllCases(ctx context.Context, cases []map[string]any, progress ProgressFunc) *runlog.RunLog {
	log := &runlog.RunLog{UUID: d.runUUID, Metadata: d.metadata}

	if err := validateCases(cases, d.pipeline); err != nil {
		log.Metadata.Exception = &runlog.Exception{
			Message: err.Error(),
			Time:    d.clock.Now().Format(timeFormat),
		}
		return log
	}

	start := d.clock.Now()
	results := make([]runlog.Result, len(cases))
	ran := make([]bool, len(cases))

	sem := make(chan struct{}, d.concurrency)
	var wg sync.WaitGroup
	var completed int64

	launched := 0
	for i, c := range cases {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		if ctx.Err() != nil {
			<-sem
			break
		}
		wg.Add(1)
		launched++
		go func(i int, c map[string]any) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = caserun.Run(ctx, d.pipeline.DAG(), c, d.clock)
			ran[i] = true
			n := atomic.AddInt64(&completed, 1)
			if progress != nil {
				progress(int(n), len(cases))
			}
		}(i, c)
	}
	wg.Wait()

	ordered := make([]runlog.Result, 0, launched)
	for i, wasRun := range ran {
		if wasRun {
			ordered = append(ordered, results[i])
		}
	}
	log.Results = ordered

	end := d.clock.Now()
	log.Metadata.End = end.Format(timeFormat)
	log.Metadata.Elapsed = end.Sub(start).String()

	if ctx.Err() != nil {
		log.Metadata.Exception = &runlog.Exception{
			Message: gerr.NewCancelledBatch(len(ordered), len(cases)).Error(),
			Time:    end.Format(timeFormat),
		}
	}

	return log
}

// validateCases checks that every case is a map with a unique,
// canonical-UUID "uuid" field, and that if any case carries an "audio"
// field, the pipeline's configured model is audio-capable.
func validateCases(cases []map[string]any, p *pipeline.Pipeline) error {
	ids := make([]string, len(cases))
	for i, c := range cases {
		id, _ := c["uuid"].(string)
		if id == "" {
			return gerr.NewInvalidInput("cases", fmt.Sprintf("case %d missing uuid", i), nil)
		}
		ids[i] = id
	}
	if _, err := pathutil.IDShortener(ids); err != nil {
		return gerr.NewInvalidInput("cases", err.Error(), err)
	}

	hasAudio := false
	for _, c := range cases {
		if _, ok := c["audio"]; ok {
			hasAudio = true
			break
		}
	}
	if !hasAudio {
		return nil
	}

	modelName, _ := p.Config()[ModelConfigKey].(string)
	if modelName == "" {
		return gerr.NewInvalidInput("cases", "Audio case requires an audio-capable model", nil)
	}
	model, err := p.Registry().Model(modelName)
	if err != nil {
		return gerr.NewInvalidInput("cases", "Audio case requires an audio-capable model", err)
	}
	modelType, _ := model.Metadata()["type"].(string)
	if !AudioCapableModelTypes[modelType] {
		return gerr.NewInvalidInput("cases", "Audio case requires an audio-capable model", nil)
	}
	return nil
}
