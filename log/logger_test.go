package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLoggerWithWriter(Context{Tool: "fillctl", Command: "decode"}, &buf)

	l.Info("decoded", map[string]any{"datasets": 2})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["tool"] != "fillctl" {
		t.Errorf("tool = %v, want fillctl", e["tool"])
	}
	if e["command"] != "decode" {
		t.Errorf("command = %v, want decode", e["command"])
	}
	if e["level"] != "info" {
		t.Errorf("level = %v, want info", e["level"])
	}
	if e["message"] != "decoded" {
		t.Errorf("message = %v, want decoded", e["message"])
	}
	if _, ok := e["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLogger_DebugLevelGate(t *testing.T) {
	var quiet, verbose bytes.Buffer
	newLoggerWithWriter(Context{Tool: "fillctl"}, &quiet).Debug("hidden", nil)
	newLoggerWithWriter(Context{Tool: "fillctl", Debug: true}, &verbose).Debug("shown", nil)

	if quiet.Len() != 0 {
		t.Errorf("debug entry written without Debug: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "shown") {
		t.Errorf("debug entry missing with Debug: %q", verbose.String())
	}
}

func TestLogger_WithOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := newLoggerWithWriter(Context{Tool: "fillctl", Command: "decode"}, &first)
	l.WithOutput(&second).Warn("moved", nil)

	if first.Len() != 0 {
		t.Errorf("original writer received output: %q", first.String())
	}
	for _, want := range []string{`"level":"warn"`, `"tool":"fillctl"`, `"command":"decode"`} {
		if !strings.Contains(second.String(), want) {
			t.Errorf("redirected output missing %s: %q", want, second.String())
		}
	}
}

func TestSugaredLogger_Infof(t *testing.T) {
	var buf bytes.Buffer
	newLoggerWithWriter(Context{Tool: "fillctl"}, &buf).Sugar().With("frame", 3).Infof("read %d bytes", 12)

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["message"] != "read 12 bytes" {
		t.Errorf("message = %v", entries[0]["message"])
	}
	if entries[0]["frame"] != float64(3) {
		t.Errorf("frame = %v, want 3", entries[0]["frame"])
	}
}

func TestNop_Discards(_ *testing.T) {
	Nop().Error("nothing", map[string]any{"k": "v"})
}
