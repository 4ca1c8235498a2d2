package pipeline

import (
	"context"
	"fmt"

	"github.com/gotag/gotag/internal/caserun"
	"github.com/gotag/gotag/internal/dagcore"
	"github.com/gotag/gotag/internal/pathutil"
	"github.com/gotag/gotag/internal/runlog"
)

// wrapTurns wraps turnDAG in a synthetic single-node DAG named "turns"
// whose stage function iterates the case's turn list, running each turn
// through turnDAG as its own isolated case via caserun.Run. The per-turn
// DAG stays the primitive; a "multi-turn" pipeline is just this one
// wrapper node around it.
func wrapTurns(mapping Mappings, turnDAG *dagcore.DAG) (*dagcore.DAG, error) {
	fn := func(ctx context.Context, c *dagcore.Context) (any, error) {
		turnList, _ := c.Case[mapping.Turns].([]any)

		var turnsToRun []any
		var initial any

		if c.Turn == nil {
			// Running every turn: seed from the case's own initial field.
			turnsToRun = turnList
			initial = c.Case[mapping.Initial]
		} else {
			idx := *c.Turn
			if idx < 0 || idx >= len(turnList) {
				return nil, fmt.Errorf("turn index %d out of range (0..%d)", idx, len(turnList)-1)
			}
			// Running one turn in isolation: seed from the *previous*
			// turn's expected field, not its observed output.
			if idx > 0 {
				if prev, ok := turnList[idx-1].(map[string]any); ok {
					initial = prev[mapping.Expected]
				}
			}
			turnsToRun = []any{turnList[idx]}
		}

		var results []runlog.Result
		for _, raw := range turnsToRun {
			turnPayload, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("turn payload must be an object, got %T", raw)
			}

			turnCase := pathutil.DeepCopy(turnPayload)
			turnCase[mapping.Initial] = initial

			result := caserun.Run(ctx, turnDAG, turnCase, nil)
			results = append(results, result)

			if !result.Succeeded {
				break
			}
			observed, ok := result.Stages[mapping.Observed]
			if !ok || observed == nil {
				break
			}
			initial = observed
		}

		return results, nil
	}

	return dagcore.Build([]dagcore.NodeSpec{{Name: "turns", Fn: fn}})
}
