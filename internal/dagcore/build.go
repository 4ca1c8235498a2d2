package dagcore

import (
	"context"
	"sort"
	"strings"

	"github.com/gotag/gotag/internal/gerr"
)

// StageFunc is the contract a DAG node implements: given the per-case
// Context (and a context.Context for cancellation/timeouts on suspending
// I/O) it returns a value to store at Context.Stages()[name], or an error
// that becomes the case's exception.
type StageFunc func(ctx context.Context, c *Context) (any, error)

// NodeSpec describes one DAG node before validation: its unique name, its
// function, and the names of the nodes whose outputs it depends on.
type NodeSpec struct {
	Name   string
	Fn     StageFunc
	Inputs []string
}

// node is the validated, build-time-only shape of one DAG node: forward
// edges (outputs) are precomputed so Execute never has to scan the whole
// node set to find a node's dependents.
type node struct {
	name    string
	fn      StageFunc
	inputs  []string
	outputs []string
}

// DAG is an immutable, validated stage graph. The same *DAG is reused
// across every case in a run; per-execution state (waiting_for counts,
// in-flight goroutines) lives entirely in Execute's local variables.
type DAG struct {
	nodes map[string]*node
	// names preserves the NodeSpec order so Execute's ready-queue has a
	// deterministic starting point when several nodes are simultaneously
	// ready; insertion order is as good as any tie-break.
	names []string
}

// Build validates spec and, on success, returns an executable DAG:
// structural checks first (empty spec, duplicate names, duplicate or
// unknown inputs, no source node), then cycle detection and
// unreachable-node detection.
func Build(specs []NodeSpec) (*DAG, error) {
	if len(specs) == 0 {
		return nil, gerr.NewInvalidSpec("dag", "empty graph specification", nil)
	}

	nodes := make(map[string]*node, len(specs))
	names := make([]string, 0, len(specs))
	haveSource := false

	for _, s := range specs {
		if _, dup := nodes[s.Name]; dup {
			return nil, gerr.NewInvalidSpec("dag", "duplicate node name '"+s.Name+"'", nil)
		}
		nodes[s.Name] = &node{name: s.Name, fn: s.Fn, inputs: append([]string(nil), s.Inputs...)}
		names = append(names, s.Name)
		if len(s.Inputs) == 0 {
			haveSource = true
		}
	}

	for _, n := range nodes {
		seen := map[string]bool{}
		for _, in := range n.inputs {
			if seen[in] {
				return nil, gerr.NewInvalidSpec("dag",
					"node '"+n.name+"': duplicate input '"+in+"'", nil)
			}
			seen[in] = true
			src, ok := nodes[in]
			if !ok {
				return nil, gerr.NewInvalidSpec("dag",
					"node '"+n.name+"': cannot find input '"+in+"'", nil)
			}
			src.outputs = append(src.outputs, n.name)
		}
	}

	if !haveSource {
		return nil, gerr.NewInvalidSpec("dag",
			"no nodes ready to run: at least one node must have no inputs", nil)
	}

	dag := &DAG{nodes: nodes, names: names}

	if cycle := dag.findCycle(); cycle != "" {
		return nil, gerr.NewInvalidSpec("dag", "Cycle detected: "+cycle, nil)
	}
	if unreachable := dag.findUnreachable(); len(unreachable) > 0 {
		sort.Strings(unreachable)
		return nil, gerr.NewInvalidSpec("dag",
			"unreachable nodes: "+strings.Join(unreachable, ", "), nil)
	}

	return dag, nil
}

// sources returns the names of every node with no inputs, in spec order.
func (d *DAG) sources() []string {
	var out []string
	for _, name := range d.names {
		if len(d.nodes[name].inputs) == 0 {
			out = append(out, name)
		}
	}
	return out
}

// findCycle runs a DFS from every source node, tracking the current path.
// Reaching a node already on the path identifies one offending cycle,
// rendered as "A -> B -> D -> B". Returns "" if acyclic.
func (d *DAG) findCycle() string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(d.nodes))
	var path []string

	var visit func(name string) string
	visit = func(name string) string {
		color[name] = gray
		path = append(path, name)
		for _, next := range d.nodes[name].outputs {
			switch color[next] {
			case gray:
				cyclePath := append(append([]string(nil), path...), next)
				return strings.Join(cyclePath, " -> ")
			case white:
				if msg := visit(next); msg != "" {
					return msg
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return ""
	}

	for _, name := range d.sources() {
		if color[name] == white {
			if msg := visit(name); msg != "" {
				return msg
			}
		}
	}
	return ""
}

// findUnreachable returns every node not reachable from any source via a
// forward BFS from the source set.
func (d *DAG) findUnreachable() []string {
	visited := map[string]bool{}
	queue := d.sources()
	for _, s := range queue {
		visited[s] = true
	}
	for i := 0; i < len(queue); i++ {
		cur := d.nodes[queue[i]]
		for _, out := range cur.outputs {
			if !visited[out] {
				visited[out] = true
				queue = append(queue, out)
			}
		}
	}
	var unreachable []string
	for _, name := range d.names {
		if !visited[name] {
			unreachable = append(unreachable, name)
		}
	}
	return unreachable
}

// Names returns every node name in spec order.
func (d *DAG) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}
