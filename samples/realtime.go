package samples

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotag/gotag/internal/config"
	"github.com/gotag/gotag/internal/dagcore"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/registry"
	"github.com/gotag/gotag/internal/runlog"
)

// Realtime is a single-turn pipeline that streams a case's audio through
// the configured realtime model and checks the transcript contains an
// expected substring. Cases must carry an "audio" field (the director's
// audio/model-compatibility check looks for it) plus either
// "audio_bytes" or "audio_file" for the adapter itself to read.
func Realtime() *pipeline.Spec {
	return &pipeline.Spec{
		Name:        "realtime",
		Description: "streams a case's audio through a realtime model and checks the transcript",
		Configuration: map[string]any{
			"model": config.Required{Description: "name of a registered audio-capable model (e.g. an AZURE_OPEN_AI_REALTIME entry)"},
		},
		CreateDAG:       realtimeDAG,
		Expected:        realtimeExpected,
		PassedPredicate: realtimePassed,
		Summarizer: pipeline.Summarizer{
			Columns: []pipeline.Column{
				{Name: "audio", Contents: func(r runlog.Result, _ int) string { return fmt.Sprintf("%v", r.Case["audio"]) }},
			},
		},
		Mappings: pipeline.Mappings{
			Expected: "expected_substring",
			Observed: "transcript",
		},
	}
}

func realtimeDAG(_ string, cfg map[string]any, reg *registry.Registry) (*dagcore.DAG, error) {
	modelName, _ := cfg["model"].(string)

	transcriptStage := func(_ context.Context, c *dagcore.Context) (any, error) {
		model, err := reg.Model(modelName)
		if err != nil {
			return nil, err
		}

		caseContext := c.Snapshot()
		if v, ok := c.Case["audio_bytes"]; ok {
			caseContext["audio_bytes"] = v
		}
		if v, ok := c.Case["audio_file"]; ok {
			caseContext["audio_file"] = v
		}

		text, err := model.Infer(nil, caseContext)
		if events, ok := caseContext["realtime_events"]; ok {
			c.Set("realtime_events", events)
		}
		if err != nil {
			return nil, fmt.Errorf("realtime inference: %w", err)
		}
		return text, nil
	}

	return dagcore.Build([]dagcore.NodeSpec{
		{Name: "transcript", Fn: transcriptStage},
	})
}

func realtimeExpected(caseSnapshot map[string]any, _ *int) (any, error) {
	c, _ := caseSnapshot["case"].(map[string]any)
	return c["expected_substring"], nil
}

func realtimePassed(r runlog.Result) bool {
	if !r.Succeeded {
		return false
	}
	expected, _ := r.Case["expected_substring"].(string)
	transcript, _ := r.Stages["transcript"].(string)
	if expected == "" {
		return true
	}
	return strings.Contains(strings.ToLower(transcript), strings.ToLower(expected))
}
