// Package tmpl is the default implementation of the pipeline-supplied
// "template(context) -> string" pure function: it renders a text/template
// body (with the sprig helper funcs available) against a case or turn
// context map. Pipelines that need a different templating engine supply
// their own Func instead of using this package.
package tmpl

import (
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// Func renders context into a string. It is the shape every prompt/content
// template a pipeline wires into a stage must satisfy.
type Func func(context map[string]any) (string, error)

// New parses text as a named template body, with sprig's function map
// available, and returns a Func that executes it against a context map.
func New(name, text string) (Func, error) {
	t, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	return func(context map[string]any) (string, error) {
		var out strings.Builder
		if err := t.Execute(&out, context); err != nil {
			return "", fmt.Errorf("template %q: %w", name, err)
		}
		return out.String(), nil
	}, nil
}

// Render is a one-shot convenience wrapper around New for callers that
// won't reuse the parsed template across multiple contexts.
func Render(name, text string, context map[string]any) (string, error) {
	fn, err := New(name, text)
	if err != nil {
		return "", err
	}
	return fn(context)
}
