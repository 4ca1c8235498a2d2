// Package samples holds example pipelines that exercise the rest of this
// tree end to end: Menu is a single-turn text Q&A pipeline, Calc checks a
// model's arithmetic, and Realtime drives the streaming audio adapter.
// cmd/gotag registers all three under Registry() so `gotag pipelines` and
// `gotag run <name> ...` have something real to list and execute.
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
	"github.com/gotag/gotag/internal/tmpl"
)

// Menu is a single-turn pipeline: it renders a prompt from the case's
// "question" field, runs it through the configured model, and checks the
// answer against the case's "expected" field.
func Menu() *pipeline.Spec {
	return &pipeline.Spec{
		Name:        "menu",
		Description: "answers a menu/FAQ-style question and checks it against the expected text",
		Configuration: map[string]any{
			"model": config.Required{Description: "name of a registered model to run inference with (e.g. 'perfect', 'flakey', or a models.json entry)"},
			"system_prompt": "You are a helpful assistant answering questions about a restaurant menu. " +
				"Answer in one short sentence.",
			"prompt_template": "{{.question}}",
		},
		CreateDAG:       menuDAG,
		Expected:        menuExpected,
		PassedPredicate: menuPassed,
		Summarizer: pipeline.Summarizer{
			Columns: []pipeline.Column{
				{Name: "question", Contents: func(r runlog.Result, _ int) string { return fmt.Sprintf("%v", r.Case["question"]) }},
			},
		},
		Mappings: pipeline.Mappings{
			Initial:  "question",
			Expected: "expected",
			Observed: "answer",
			User:     "messages",
		},
	}
}

func menuDAG(name string, cfg map[string]any, reg *registry.Registry) (*dagcore.DAG, error) {
	systemPrompt, _ := cfg["system_prompt"].(string)
	promptTemplate, _ := cfg["prompt_template"].(string)
	render, err := tmpl.New(name+".prompt", promptTemplate)
	if err != nil {
		return nil, err
	}

	modelName, _ := cfg["model"].(string)

	messagesStage := func(_ context.Context, c *dagcore.Context) (any, error) {
		question, err := render(map[string]any{"question": c.Case["question"]})
		if err != nil {
			return nil, fmt.Errorf("rendering question template: %w", err)
		}
		return []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": question},
		}, nil
	}

	answerStage := func(_ context.Context, c *dagcore.Context) (any, error) {
		model, err := reg.Model(modelName)
		if err != nil {
			return nil, err
		}
		messages, _ := c.Stage("messages")
		asMessages, _ := messages.([]map[string]any)
		answer, err := model.Infer(asMessages, c.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("model inference: %w", err)
		}
		return answer, nil
	}

	return dagcore.Build([]dagcore.NodeSpec{
		{Name: "messages", Fn: messagesStage},
		{Name: "answer", Fn: answerStage, Inputs: []string{"messages"}},
	})
}

func menuExpected(caseSnapshot map[string]any, _ *int) (any, error) {
	c, _ := caseSnapshot["case"].(map[string]any)
	return c["expected"], nil
}

func menuPassed(r runlog.Result) bool {
	if !r.Succeeded {
		return false
	}
	expected, _ := r.Case["expected"].(string)
	answer, _ := r.Stages["answer"].(string)
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
}
