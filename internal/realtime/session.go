package realtime

import (
	"fmt"

	"github.com/gotag/gotag/internal/gerr"
)

// SessionConfig is the resolved, validated set of options sent in the
// session.update frame that opens a realtime exchange.
type SessionConfig struct {
	Voice         string
	Modalities    []string
	TurnDetection map[string]any
	Instructions  string
	HasInstructions bool
}

var allowedModalities = map[string]bool{"text": true, "audio": true}

var serverVADKeys = map[string]bool{
	"threshold": true, "prefix_padding_ms": true, "silence_duration_ms": true,
	"create_response": true, "interrupt_response": true, "type": true,
}

var semanticVADKeys = map[string]bool{
	"eagerness": true, "create_response": true, "interrupt_response": true, "type": true,
}

// resolveOption implements the four-tier precedence: an explicit
// per-case context value, a context.realtime override, the adapter's own
// model_config, then def.
func resolveOption(caseContext, modelConfig map[string]any, key string, def any) any {
	if v, ok := caseContext[key]; ok && v != nil {
		return v
	}
	if nested, ok := caseContext["realtime"].(map[string]any); ok {
		if v, ok := nested[key]; ok && v != nil {
			return v
		}
	}
	if v, ok := modelConfig[key]; ok {
		return v
	}
	return def
}

// resolveSessionConfig resolves and validates voice, modalities and
// turn_detection, failing with an InvalidSessionError before any
// connection attempt.
func resolveSessionConfig(caseContext, modelConfig map[string]any) (SessionConfig, error) {
	var cfg SessionConfig

	voice := resolveOption(caseContext, modelConfig, "voice", "alloy")
	voiceStr, ok := voice.(string)
	if !ok || voiceStr == "" {
		return cfg, gerr.NewInvalidSession("voice", "must be a non-empty string")
	}
	cfg.Voice = voiceStr

	modalities, err := resolveModalities(resolveOption(caseContext, modelConfig, "modalities", []any{"text"}))
	if err != nil {
		return cfg, err
	}
	cfg.Modalities = modalities

	turnDetection, err := resolveTurnDetection(resolveOption(caseContext, modelConfig, "turn_detection", nil))
	if err != nil {
		return cfg, err
	}
	cfg.TurnDetection = turnDetection

	if instructions := resolveOption(caseContext, modelConfig, "instructions", nil); instructions != nil {
		if s, ok := instructions.(string); ok && s != "" {
			cfg.Instructions = s
			cfg.HasInstructions = true
		}
	}

	return cfg, nil
}

func resolveModalities(raw any) ([]string, error) {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		return nil, gerr.NewInvalidSession("modalities", "must be a non-empty list")
	}
	if len(items) == 0 {
		return nil, gerr.NewInvalidSession("modalities", "must be a non-empty list")
	}

	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		s, ok := item.(string)
		if !ok || !allowedModalities[s] {
			return nil, gerr.NewInvalidSession("modalities", fmt.Sprintf("unknown modality %v", item))
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

func resolveTurnDetection(raw any) (map[string]any, error) {
	if raw == nil {
		return map[string]any{"type": "none"}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, gerr.NewInvalidSession("turn_detection", "must be an object")
	}
	t, _ := m["type"].(string)
	switch t {
	case "none":
		return map[string]any{"type": "none"}, nil
	case "server_vad":
		return filterKeys(m, serverVADKeys), nil
	case "semantic_vad":
		return filterKeys(m, semanticVADKeys), nil
	default:
		return nil, gerr.NewInvalidSession("turn_detection", fmt.Sprintf("unknown type %q", t))
	}
}

func filterKeys(m map[string]any, allowed map[string]bool) map[string]any {
	out := map[string]any{}
	for k, v := range m {
		if allowed[k] {
			out[k] = v
		}
	}
	return out
}
