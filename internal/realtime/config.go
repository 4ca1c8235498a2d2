// Package realtime implements the streaming model adapter: a
// registry.Model that speaks a bidirectional session protocol over a
// single WebSocket connection to drive one audio-in, text-out exchange,
// recording a strictly ordered event log with monotonic sequencing and
// millisecond timing as it goes.
package realtime

import (
	"time"

	"github.com/gotag/gotag/internal/gerr"
)

// Config is this adapter's static configuration, loaded from a model
// descriptor entry plus its credentials.
type Config struct {
	Endpoint   string
	API        string
	Deployment string
	Key        string
	// TimeoutS bounds the connect-and-send phase and each receive; zero
	// means the 60s default.
	TimeoutS float64
	// Extra carries any other model-descriptor keys (voice, modalities,
	// turn_detection, instructions, audio_sample_rate, ...) consulted at
	// the third precedence tier when resolving a per-case session option.
	Extra map[string]any
}

func (c Config) timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutS * float64(time.Second))
}

// validate checks the adapter-level required fields, returning a
// gerr.MisconfiguredError naming the first missing one.
func (c Config) validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"endpoint", c.Endpoint},
		{"api", c.API},
		{"deployment", c.Deployment},
		{"key", c.Key},
	} {
		if f.value == "" {
			return gerr.NewMisconfigured(f.name, "required realtime adapter field is empty", nil)
		}
	}
	return nil
}

// Metadata returns cfg rendered as a map with the key field stripped, the
// shape a registry.Model.Metadata() call must return.
func (c Config) Metadata() map[string]any {
	return map[string]any{
		"type":       "AZURE_OPEN_AI_REALTIME",
		"endpoint":   c.Endpoint,
		"api":        c.API,
		"deployment": c.Deployment,
		"timeout_s":  c.timeout().Seconds(),
	}
}
