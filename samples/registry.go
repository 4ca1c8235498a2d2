package samples

import "github.com/gotag/gotag/internal/pipeline"

// Registry returns every sample pipeline keyed by name — the set
// cmd/gotag's `run`, `rerun`, and `pipelines` subcommands draw from.
func Registry() map[string]*pipeline.Spec {
	specs := []*pipeline.Spec{Menu(), Calc(), Realtime()}
	out := make(map[string]*pipeline.Spec, len(specs))
	for _, s := range specs {
		out[s.Name] = s
	}
	return out
}
