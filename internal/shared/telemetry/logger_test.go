package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLogLineShape(t *testing.T) {
	var buf bytes.Buffer
	orig := logger
	logger = newLogger(zapcore.AddSync(&buf))
	defer func() { logger = orig }()

	Error("analysis.failed", map[string]any{
		"analysis_id": "a-1",
		"error":       errors.New("boom"),
		"score":       42,
	})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	for _, key := range []string{"ts", "level", "msg", "analysis_id", "error", "score"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing key %s in %v", key, payload)
		}
	}
	if payload["level"] != "error" || payload["msg"] != "analysis.failed" {
		t.Fatalf("unexpected level/msg: %v", payload)
	}
	if payload["error"] != "boom" {
		t.Fatalf("error not stringified: %v", payload["error"])
	}
}
