package report

import (
	"fmt"

	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/runlog"
	"github.com/gotag/gotag/internal/sink"
)

// Format prints a detailed per-case section for a run: the prepare-stage
// messages (if the pipeline names its message stage via Mappings.User),
// the raw inference output (Mappings.Observed), the extracted structured
// value, the expected value when the case didn't pass, and an optional
// token-usage line. A pipeline's Formatter hooks (or a full override via
// Formatter.Func) take precedence over this default rendering.
//
// caseUUIDPrefix, when non-empty, restricts output to the one case whose
// uuid starts with it (case-insensitive); no match or more than one match
// is an error.
func Format(s sink.Sink, spec *pipeline.Spec, log *runlog.RunLog, caseUUIDPrefix string) error {
	if spec.Formatter.Func != nil {
		spec.Formatter.Func(s, log)
		return nil
	}

	results := log.Results
	if caseUUIDPrefix != "" {
		filtered, err := filterByUUIDPrefix(results, caseUUIDPrefix)
		if err != nil {
			return err
		}
		results = filtered
	}

	for _, r := range results {
		formatCase(s, spec, r)
	}
	return nil
}

func formatCase(s sink.Sink, spec *pipeline.Spec, r runlog.Result) {
	if spec.Formatter.BeforeCase != nil {
		s.Print(spec.Formatter.BeforeCase(r))
	}
	s.Print(fmt.Sprintf("case %s [%s]", caseUUID(r), classify(spec, r)))

	if turns, ok := r.Stages["turns"].([]runlog.Result); ok {
		for i, turn := range turns {
			if spec.Formatter.BeforeTurn != nil {
				s.Print(spec.Formatter.BeforeTurn(turn))
			}
			s.Print(fmt.Sprintf("  turn %d", i))
			formatTurnBody(s, spec, turn, "  ")
			if spec.Formatter.AfterTurn != nil {
				s.Print(spec.Formatter.AfterTurn(turn))
			}
		}
	} else {
		formatTurnBody(s, spec, r, "")
	}

	if spec.Formatter.AfterCase != nil {
		s.Print(spec.Formatter.AfterCase(r))
	}
}

func formatTurnBody(s sink.Sink, spec *pipeline.Spec, r runlog.Result, indent string) {
	mappings := spec.Mappings

	if mappings.User != "" {
		if messages, ok := r.Stages[mappings.User].([]map[string]any); ok {
			for _, m := range messages {
				role, _ := m["role"].(string)
				content, _ := m["content"].(string)
				s.Print(fmt.Sprintf("%s  [%s] %s", indent, role, content))
			}
		}
	}

	if mappings.Observed != "" {
		if observed, ok := r.Stages[mappings.Observed]; ok {
			s.Print(fmt.Sprintf("%s  observed: %v", indent, observed))
		}
	}

	if !r.Succeeded {
		if r.Exception != nil {
			s.Print(fmt.Sprintf("%s  exception: %s", indent, r.Exception.Message))
		}
		return
	}

	if classify(spec, r) != StatusPass && spec.Expected != nil {
		snapshot := map[string]any{"case": r.Case, "stages": r.Stages}
		if expected, err := spec.Expected(snapshot, nil); err == nil && expected != nil {
			s.Print(fmt.Sprintf("%s  expected: %v", indent, expected))
		}
	}

	if tokens, ok := r.Stages["tokens"].(map[string]any); ok {
		s.Print(fmt.Sprintf("%s  tokens: input=%v output=%v", indent, tokens["input"], tokens["output"]))
	}
}
