// Package logger provides ephem's structured logging: log/slog to
// stderr, an optional append-mode file sink, and a separate append-only
// audit trail of kernel loads, queries and exports.
package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Logger
// ─────────────────────────────────────────────────────────────────────────────

// Logger wraps slog.Logger with the audit trail writer.
type Logger struct {
	*slog.Logger
	auditW io.Writer // append-only audit sink (nil = disabled)
}

// Init builds the process logger and installs it as the slog default.
// level is one of debug/info/warn/error (debug flag forces debug);
// format selects the text or json handler. logFile, when set, receives
// a copy of every record; ephemHome, when set, hosts the audit trail.
// Sink files that cannot be opened are skipped, never fatal: a CLI
// must not die over its own logging.
func Init(level, format, logFile, ephemHome string, debug bool) (*Logger, error) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if debug {
		lvl = slog.LevelDebug
	}

	out := io.Writer(os.Stderr)
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0750); err == nil {
			if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640); err == nil {
				out = io.MultiWriter(os.Stderr, f)
			}
		}
	}

	opts := &slog.HandlerOptions{Level: lvl, AddSource: debug}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	base := slog.New(handler)
	slog.SetDefault(base)

	var auditW io.Writer
	if ephemHome != "" {
		auditPath := filepath.Join(ephemHome, "audit.log")
		if af, err := os.OpenFile(auditPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640); err == nil {
			auditW = af
		}
	}

	return &Logger{Logger: base, auditW: auditW}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Audit trail
// ─────────────────────────────────────────────────────────────────────────────

// AuditEntry is one audited operation: which kernel was touched, which
// body was queried, and how it ended.
type AuditEntry struct {
	Timestamp time.Time         `json:"ts"`
	Op        string            `json:"op"`
	User      string            `json:"user"`
	Kernel    string            `json:"kernel,omitempty"`
	Target    string            `json:"target,omitempty"`
	Result    string            `json:"result"` // success | failure
	Meta      map[string]string `json:"meta,omitempty"`
}

// Audit records entry on the normal log and appends one JSON line to
// the audit trail.
func (l *Logger) Audit(entry AuditEntry) {
	l.Info("audit",
		"op", entry.Op,
		"user", entry.User,
		"kernel", entry.Kernel,
		"target", entry.Target,
		"result", entry.Result,
	)
	if l.auditW == nil {
		return
	}
	entry.Timestamp = entry.Timestamp.UTC()
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = l.auditW.Write(append(line, '\n'))
}
