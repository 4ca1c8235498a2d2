// Package registry implements the parent-chained model registry: a
// process-wide Registry holds the models loaded from the on-disk model
// descriptor file, and each pipeline run gets its own child Registry that
// can register pipeline-local mocks (Flakey, Perfect) without polluting
// the parent. Lookup walks the chain from child to parent; registration
// never shadows — a duplicate name at any level is always an error, the
// same rule register_model enforced.
package registry

import (
	"sort"
	"strings"

	"github.com/gotag/gotag/internal/gerr"
)

// Model is the adapter contract every model implementation satisfies,
// mirroring the abstract Model base class: Infer runs one inference call
// given the conversation so far and (for mocks) the full case context,
// and Metadata reports the model's configuration with secrets stripped.
type Model interface {
	Infer(messages []map[string]any, caseContext map[string]any) (string, error)
	Metadata() map[string]any
}

// Registry is a model lookup table with an optional parent. Child
// registries are created per pipeline run so pipeline-local mocks never
// leak into the process-wide registry or into sibling pipelines.
type Registry struct {
	parent *Registry
	models map[string]Model
}

// New creates a registry chained to parent. A nil parent makes it the root
// (process-wide) registry.
func New(parent *Registry) *Registry {
	return &Registry{parent: parent, models: map[string]Model{}}
}

// RegisterModel adds model under name, failing if name is already taken
// anywhere in the chain — registration never shadows a parent entry.
func (r *Registry) RegisterModel(name string, model Model) error {
	if _, ok := r.lookup(name); ok {
		return gerr.NewDuplicate("model", name)
	}
	r.models[name] = model
	return nil
}

// Model looks up name across the chain, child first, returning a
// gerr.NotFoundError listing the available names when it fails.
func (r *Registry) Model(name string) (Model, error) {
	if model, ok := r.lookup(name); ok {
		return model, nil
	}
	names := r.ListModels()
	return nil, gerr.NewNotFound("model", name+" (available: "+strings.Join(names, ", ")+")")
}

func (r *Registry) lookup(name string) (Model, bool) {
	if model, ok := r.models[name]; ok {
		return model, true
	}
	if r.parent != nil {
		return r.parent.lookup(name)
	}
	return nil, false
}

// ListModels returns every registered model name across the whole chain,
// sorted for deterministic display.
func (r *Registry) ListModels() []string {
	set := map[string]struct{}{}
	r.collectModels(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) collectModels(set map[string]struct{}) {
	if r.parent != nil {
		r.parent.collectModels(set)
	}
	for name := range r.models {
		set[name] = struct{}{}
	}
}
