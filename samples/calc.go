package samples

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/gotag/gotag/internal/config"
	"github.com/gotag/gotag/internal/dagcore"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/registry"
	"github.com/gotag/gotag/internal/runlog"
	"github.com/gotag/gotag/internal/tmpl"
)

// calcTolerance is how close a model's numeric answer must be to a case's
// expected value to count as a pass.
const calcTolerance = 1e-6

// firstNumber pulls the first signed decimal number out of a string,
// tolerating surrounding prose ("The answer is 42.") the way a real model
// completion would.
var firstNumber = regexp.MustCompile(`-?\d+(\.\d+)?`)

// Calc is a single-turn pipeline that asks the configured model to
// evaluate an arithmetic expression and checks the numeric answer within
// calcTolerance of the case's expected value.
func Calc() *pipeline.Spec {
	return &pipeline.Spec{
		Name:        "calc",
		Description: "asks a model to evaluate an arithmetic expression and checks the numeric result",
		Configuration: map[string]any{
			"model":           config.Required{Description: "name of a registered model to run inference with"},
			"prompt_template": "Compute the value of this arithmetic expression and reply with only the final number: {{.expression}}",
		},
		CreateDAG:       calcDAG,
		Expected:        calcExpected,
		PassedPredicate: calcPassed,
		Summarizer: pipeline.Summarizer{
			Columns: []pipeline.Column{
				{Name: "expression", Contents: func(r runlog.Result, _ int) string { return fmt.Sprintf("%v", r.Case["expression"]) }},
				{Name: "value", Contents: func(r runlog.Result, _ int) string { return fmt.Sprintf("%v", r.Stages["value"]) }},
			},
		},
		Mappings: pipeline.Mappings{
			Initial:  "expression",
			Expected: "expected",
			Observed: "value",
			User:     "messages",
		},
	}
}

func calcDAG(name string, cfg map[string]any, reg *registry.Registry) (*dagcore.DAG, error) {
	promptTemplate, _ := cfg["prompt_template"].(string)
	render, err := tmpl.New(name+".prompt", promptTemplate)
	if err != nil {
		return nil, err
	}
	modelName, _ := cfg["model"].(string)

	messagesStage := func(_ context.Context, c *dagcore.Context) (any, error) {
		prompt, err := render(map[string]any{"expression": c.Case["expression"]})
		if err != nil {
			return nil, fmt.Errorf("rendering expression template: %w", err)
		}
		return []map[string]any{{"role": "user", "content": prompt}}, nil
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

	valueStage := func(_ context.Context, c *dagcore.Context) (any, error) {
		answer, _ := c.Stage("answer")
		text, _ := answer.(string)
		match := firstNumber.FindString(text)
		if match == "" {
			return nil, fmt.Errorf("no number found in model answer %q", text)
		}
		value, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing model answer %q: %w", match, err)
		}
		return value, nil
	}

	return dagcore.Build([]dagcore.NodeSpec{
		{Name: "messages", Fn: messagesStage},
		{Name: "answer", Fn: answerStage, Inputs: []string{"messages"}},
		{Name: "value", Fn: valueStage, Inputs: []string{"answer"}},
	})
}

func calcExpected(caseSnapshot map[string]any, _ *int) (any, error) {
	c, _ := caseSnapshot["case"].(map[string]any)
	return c["expected"], nil
}

func calcPassed(r runlog.Result) bool {
	if !r.Succeeded {
		return false
	}
	expected, ok := asFloat(r.Case["expected"])
	if !ok {
		return false
	}
	value, ok := asFloat(r.Stages["value"])
	if !ok {
		return false
	}
	return math.Abs(value-expected) <= calcTolerance
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
