package pipeline

import (
	"github.com/gotag/gotag/internal/config"
	"github.com/gotag/gotag/internal/dagcore"
	"github.com/gotag/gotag/internal/registry"
)

// Pipeline binds one Spec to a concrete, executable DAG for a single
// run: its effective configuration (merged and validated) and the DAG
// produced by the spec's factory, optionally wrapped for multi-turn
// execution.
type Pipeline struct {
	spec     *Spec
	config   map[string]any
	dag      *dagcore.DAG
	registry *registry.Registry
}

// New merges spec's defaults with an optional replacement config and a
// flat dotted-path patch, validates the result, builds a per-run child
// registry carrying the flakey/perfect mocks, invokes spec.CreateDAG, and
// wraps the result for multi-turn execution when spec.Mappings.Turns is
// set.
func New(spec *Spec, replacement map[string]any, patch map[string]string, parent *registry.Registry) (*Pipeline, error) {
	merged, err := config.Merge(spec.Configuration, replacement, patch)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(spec.Name, spec.Configuration, merged); err != nil {
		return nil, err
	}

	reg := registry.New(parent)
	if err := registerMocks(reg, spec.Expected); err != nil {
		return nil, err
	}

	turnDAG, err := spec.CreateDAG(spec.Name, merged, reg)
	if err != nil {
		return nil, err
	}

	dag := turnDAG
	if spec.Mappings.Turns != "" {
		dag, err = wrapTurns(spec.Mappings, turnDAG)
		if err != nil {
			return nil, err
		}
	}

	return &Pipeline{spec: spec, config: merged, dag: dag, registry: reg}, nil
}

// Config returns the merged, validated effective configuration.
func (p *Pipeline) Config() map[string]any { return p.config }

// Registry returns the per-run model registry (carrying the flakey/
// perfect mocks on top of the parent passed to New), for callers that
// need to look up a configured model directly, e.g. the director's
// audio/model-compatibility check.
func (p *Pipeline) Registry() *registry.Registry { return p.registry }

// DAG returns the executable DAG - the per-turn DAG, or the "turns"
// wrapper around it when the pipeline groups cases into turns.
func (p *Pipeline) DAG() *dagcore.DAG { return p.dag }

// Spec returns the pipeline descriptor this Pipeline was built from.
func (p *Pipeline) Spec() *Spec { return p.spec }

// DiffConfigs reports how Config differs from Spec's defaults, excluding
// Internal sentinels and rendering unresolved Required ones as "PROMPT".
func (p *Pipeline) DiffConfigs() []config.DiffEntry {
	return config.Diff(p.spec.Configuration, p.config)
}
