package pipeline

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gotag/gotag/internal/registry"
)

// Flakey is a test double that cycles through three behaviors on
// successive calls: return the expected answer, return a fixed wrong
// answer, then raise. It is registered into every pipeline's child
// registry under the name "flakey" so a pipeline config can select it
// without wiring real model credentials.
type Flakey struct {
	mu       sync.Mutex
	counter  int
	expected ExpectedFunc
}

// Infer implements registry.Model. messages is ignored; Flakey only
// depends on the case context's expected answer.
func (f *Flakey) Infer(_ []map[string]any, caseContext map[string]any) (string, error) {
	f.mu.Lock()
	n := f.counter
	f.counter++
	f.mu.Unlock()

	switch n % 3 {
	case 0:
		value, err := f.expected(caseContext, nil)
		if err != nil {
			return "", err
		}
		return toLLMString(value), nil
	case 1:
		return "hello world", nil
	default:
		return "", errors.New("flakey model failed")
	}
}

// Metadata implements registry.Model. The mock has no configuration to
// report.
func (f *Flakey) Metadata() map[string]any { return map[string]any{} }

// Perfect is a test double that always returns the case's expected
// answer, letting a pipeline be exercised end-to-end without a real
// model.
type Perfect struct {
	expected ExpectedFunc
}

// Infer implements registry.Model.
func (p *Perfect) Infer(_ []map[string]any, caseContext map[string]any) (string, error) {
	value, err := p.expected(caseContext, nil)
	if err != nil {
		return "", err
	}
	return toLLMString(value), nil
}

// Metadata implements registry.Model.
func (p *Perfect) Metadata() map[string]any { return map[string]any{} }

// toLLMString renders an expected-answer value the way a model
// completion would appear: a string value is returned verbatim, anything
// else is JSON-encoded.
func toLLMString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// registerMocks adds "flakey" and "perfect" to reg, using spec's Expected
// extractor (or a function that always yields nil if the spec left it
// unset - a real pipeline spec using these mocks is expected to define
// one).
func registerMocks(reg *registry.Registry, expected ExpectedFunc) error {
	if expected == nil {
		expected = func(map[string]any, *int) (any, error) { return nil, nil }
	}
	if err := reg.RegisterModel("flakey", &Flakey{expected: expected}); err != nil {
		return err
	}
	if err := reg.RegisterModel("perfect", &Perfect{expected: expected}); err != nil {
		return err
	}
	return nil
}
