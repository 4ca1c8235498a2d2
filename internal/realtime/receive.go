package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/coder/websocket"
)

var deltaFrameTypes = map[string]bool{
	"response.text.delta":        true,
	"response.output_text.delta": true,
	"response.done":              true,
}

// receiveLoop reads frames off conn until a response.done message closes
// the exchange or a single receive exceeds timeout, returning the
// concatenation of every delta field seen on response.text.delta and
// response.output_text.delta frames, in the order received.
func receiveLoop(conn *websocket.Conn, log *eventLog, timeout time.Duration) (string, error) {
	var text strings.Builder

	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		typ, data, err := conn.Read(ctx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.record("error.timeout", nil, nil, false)
				return text.String(), nil
			}
			return text.String(), err
		}

		if typ == websocket.MessageBinary {
			size := len(data)
			log.record("binary", &size, map[string]any{"redacted": true}, false)
			continue
		}

		var frame map[string]any
		if jsonErr := json.Unmarshal(data, &frame); jsonErr != nil {
			continue
		}

		frameType, _ := frame["type"].(string)
		switch {
		case frameType == "error":
			log.record("response.error", nil, frame, false)
		case deltaFrameTypes[frameType]:
			log.record(frameType, nil, frame, false)
			if delta, ok := frame["delta"].(string); ok {
				text.WriteString(delta)
			}
			if frameType == "response.done" {
				if closeErr := conn.Close(websocket.StatusNormalClosure, ""); closeErr != nil {
					log.record("ws.close_error", nil, closeErr.Error(), false)
				}
				return text.String(), nil
			}
		default:
			// unrecognized frame types are ignored entirely
		}
	}
}
