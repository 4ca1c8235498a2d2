// Package httpmodel implements a generic REST-JSON model adapter: it posts
// the conversation as a JSON body to a configured endpoint and extracts the
// completion text from the JSON response at a configured path. It exists
// alongside the realtime adapter for pipelines whose model is an ordinary
// request/response HTTP API rather than a streaming session.
package httpmodel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gotag/gotag/internal/gerr"
)

// Config describes one REST-JSON model endpoint.
type Config struct {
	Endpoint string
	Key      string

	// AuthHeader/AuthScheme default to "Authorization"/"Bearer ". Set
	// AuthHeader to "api-key" with an empty AuthScheme for Azure-style APIs.
	AuthHeader string
	AuthScheme string

	Method       string         // default POST
	ResponsePath string         // dotted path into the response body; default "choices.0.message.content"
	TimeoutS     float64        // default 60
	Extra        map[string]any // static fields merged into every request body
}

func (c Config) timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutS * float64(time.Second))
}

func (c Config) method() string {
	if c.Method == "" {
		return "POST"
	}
	return c.Method
}

func (c Config) responsePath() string {
	if c.ResponsePath == "" {
		return "choices.0.message.content"
	}
	return c.ResponsePath
}

func (c Config) authHeader() (header, scheme string) {
	if c.AuthHeader != "" {
		return c.AuthHeader, c.AuthScheme
	}
	return "Authorization", "Bearer "
}

func (c Config) validate() error {
	if c.Endpoint == "" {
		return gerr.NewMisconfigured("endpoint", "endpoint is required", nil)
	}
	if c.Key == "" {
		return gerr.NewMisconfigured("key", "credential key is required", nil)
	}
	return nil
}

// Metadata returns the model's Metadata with the credential stripped.
func (c Config) Metadata() map[string]any {
	return map[string]any{
		"type":     "HTTP_JSON",
		"endpoint": c.Endpoint,
		"method":   c.method(),
	}
}

// Model is a registry.Model backed by one REST-JSON endpoint.
type Model struct {
	cfg    Config
	client *resty.Client
}

// New validates cfg and returns a ready-to-use Model.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg, client: resty.New().SetTimeout(cfg.timeout())}, nil
}

func (m *Model) Metadata() map[string]any { return m.cfg.Metadata() }

// Infer posts messages (plus any static Config.Extra fields) as JSON and
// returns the string found at the configured response path.
func (m *Model) Infer(messages []map[string]any, _ map[string]any) (string, error) {
	body := map[string]any{"messages": messages}
	for k, v := range m.cfg.Extra {
		body[k] = v
	}

	header, scheme := m.cfg.authHeader()
	var raw map[string]any
	resp, err := m.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader(header, scheme+m.cfg.Key).
		SetBody(body).
		SetResult(&raw).
		Execute(m.cfg.method(), m.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("http model request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("http model request failed: status %d: %s", resp.StatusCode(), resp.String())
	}

	path := m.cfg.responsePath()
	value, ok := extractPath(raw, path)
	if !ok {
		return "", fmt.Errorf("http model response missing path %q", path)
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("http model response at %q is not a string", path)
	}
	return text, nil
}

// extractPath walks a dotted path through decoded JSON, descending into
// both maps (by key) and arrays (by numeric index) — unlike pathutil.Get,
// which only walks map[string]any trees.
func extractPath(value any, path string) (any, bool) {
	cur := value
	for _, seg := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			cur = v[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
