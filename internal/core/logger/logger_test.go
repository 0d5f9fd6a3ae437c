package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestAuditAppendsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		auditW: &buf,
	}

	ts := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	l.Audit(AuditEntry{Timestamp: ts, Op: "track", User: "kepler", Kernel: "de440s", Target: "MARS", Result: "success"})
	l.Audit(AuditEntry{Timestamp: ts, Op: "export", User: "kepler", Result: "failure"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("audit lines = %d, want 2", len(lines))
	}

	var first AuditEntry
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if first.Op != "track" || first.Kernel != "de440s" || first.Target != "MARS" {
		t.Fatalf("first entry = %+v", first)
	}
	if !first.Timestamp.Equal(ts) {
		t.Fatalf("timestamp = %v, want %v", first.Timestamp, ts)
	}

	var second map[string]any
	if err := json.Unmarshal(lines[1], &second); err != nil {
		t.Fatalf("second line is not JSON: %v", err)
	}
	if _, ok := second["kernel"]; ok {
		t.Fatal("empty kernel should be omitted")
	}
	if second["result"] != "failure" {
		t.Fatalf("result = %v, want failure", second["result"])
	}
}

func TestAuditWithoutSinkOnlyLogs(t *testing.T) {
	l := &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	// Must not panic with a nil audit writer.
	l.Audit(AuditEntry{Timestamp: time.Now(), Op: "state", Result: "success"})
}
