package realtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/coder/websocket"

	"github.com/gotag/gotag/internal/gerr"
)

// Model is the registry.Model implementation for the streaming adapter.
// Every Infer call opens its own connection and keeps its protocol state
// (socket, event log, sequence counter, audio baseline) entirely local to
// that call, so concurrent Infer calls on the same *Model never share
// mutable state.
type Model struct {
	cfg Config
}

// New builds a realtime Model from cfg, failing if a required adapter
// field (endpoint, api, deployment, key) is empty.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg}, nil
}

// Metadata implements registry.Model: the adapter's config with the key
// field stripped.
func (m *Model) Metadata() map[string]any { return m.cfg.Metadata() }

// Infer implements registry.Model. messages is ignored; the audio to
// stream comes from caseContext["audio_bytes"] or, failing that,
// caseContext["audio_file"]. Once the audio and session options resolve,
// caseContext["realtime_events"] holds the ordered Event log for this
// call on every return, including a failed connect or send.
func (m *Model) Infer(_ []map[string]any, caseContext map[string]any) (string, error) {
	audio, err := resolveAudio(caseContext)
	if err != nil {
		return "", err
	}

	modelConfig := m.cfg.Extra
	session, err := resolveSessionConfig(caseContext, modelConfig)
	if err != nil {
		return "", err
	}

	target, err := buildURL(m.cfg)
	if err != nil {
		return "", gerr.NewMisconfigured("endpoint", err.Error(), err)
	}

	log := newEventLog(nil)
	defer func() { caseContext["realtime_events"] = log.Events() }()

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.timeout())
	defer cancel()

	conn, _, err := websocket.Dial(ctx, target, &websocket.DialOptions{
		HTTPHeader: http.Header{"api-key": []string{m.cfg.Key}},
	})
	if err != nil {
		return "", fmt.Errorf("realtime connect failed: %w", err)
	}
	defer conn.CloseNow()
	log.record("session.connected", nil, nil, false)

	if err := sendSessionUpdate(ctx, conn, log, session); err != nil {
		return "", err
	}

	convert, _ := resolveOption(caseContext, modelConfig, "convert_to_pcm16", false).(bool)
	sourceRate := targetSampleRate
	switch rate := resolveOption(caseContext, modelConfig, "audio_sample_rate", nil).(type) {
	case int:
		sourceRate = rate
	case float64:
		sourceRate = int(rate)
	}
	converted := convertAudio(log, audio, convert, sourceRate)

	if err := sendAudioAppend(ctx, conn, log, converted); err != nil {
		return "", err
	}
	if err := sendFrame(ctx, conn, log, "input_audio_buffer.commit", map[string]any{"type": "input_audio_buffer.commit"}); err != nil {
		return "", err
	}
	if err := sendFrame(ctx, conn, log, "response.create", map[string]any{"type": "response.create"}); err != nil {
		return "", err
	}

	return receiveLoop(conn, log, m.cfg.timeout())
}

func resolveAudio(caseContext map[string]any) ([]byte, error) {
	if raw, ok := caseContext["audio_bytes"]; ok && raw != nil {
		switch v := raw.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		default:
			return nil, gerr.NewInvalidInput("audio_bytes", "must be bytes or a string", nil)
		}
	}
	if path, ok := caseContext["audio_file"].(string); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, gerr.NewInvalidInput("audio_file", err.Error(), err)
		}
		return data, nil
	}
	return nil, gerr.NewInvalidInput("audio", "case provides neither audio_bytes nor audio_file", nil)
}

func sendSessionUpdate(ctx context.Context, conn *websocket.Conn, log *eventLog, session SessionConfig) error {
	sessionObj := map[string]any{
		"modalities":          session.Modalities,
		"voice":               session.Voice,
		"input_audio_format":  "pcm16",
		"output_audio_format": "pcm16",
		"turn_detection":      session.TurnDetection,
		"tools":               []any{},
		"tool_choice":         "auto",
	}
	if session.HasInstructions {
		sessionObj["instructions"] = session.Instructions
	}
	if err := writeJSON(ctx, conn, map[string]any{"type": "session.update", "session": sessionObj}); err != nil {
		return err
	}
	log.record("session.update", nil, nil, false)
	return nil
}

func sendAudioAppend(ctx context.Context, conn *websocket.Conn, log *eventLog, audio []byte) error {
	encoded := base64.StdEncoding.EncodeToString(audio)
	if err := writeJSON(ctx, conn, map[string]any{"type": "input_audio_buffer.append", "audio": encoded}); err != nil {
		return err
	}
	size := len(audio)
	log.record("input_audio_buffer.append", &size, map[string]any{"redacted": true}, true)
	return nil
}

func sendFrame(ctx context.Context, conn *websocket.Conn, log *eventLog, eventType string, frame map[string]any) error {
	if err := writeJSON(ctx, conn, frame); err != nil {
		return err
	}
	log.record(eventType, nil, nil, false)
	return nil
}

func writeJSON(ctx context.Context, conn *websocket.Conn, v map[string]any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %v: %w", v["type"], err)
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
