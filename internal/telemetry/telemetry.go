// Package telemetry writes opt-in JSONL events describing inference calls
// and tool executions. Events carry sizes, durations and ids, never raw
// message or argument payloads.
package telemetry

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// EventsFile is the JSONL file name inside the telemetry directory.
const EventsFile = "events.jsonl"

// Recorder appends events to <dir>/events.jsonl. A nil or disabled Recorder
// drops every event.
type Recorder struct {
	enabled bool
	dir     string
}

// NewRecorder returns a Recorder writing under dir when enabled.
func NewRecorder(enabled bool, dir string) *Recorder {
	if dir == "" {
		dir = ".agent"
	}
	return &Recorder{enabled: enabled, dir: dir}
}

// Enabled reports whether events are written.
func (r *Recorder) Enabled() bool { return r != nil && r.enabled }

// Path returns the events file location.
func (r *Recorder) Path() string {
	if r == nil {
		return ""
	}
	return filepath.Join(r.dir, EventsFile)
}

// Emit writes a single JSON line augmented with the RFC3339Nano time and the
// event name. Write failures are logged and otherwise ignored.
func (r *Recorder) Emit(name string, fields map[string]any) {
	if !r.Enabled() {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		slog.Warn("telemetry: marshal", "event", name, "err", err)
		return
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		slog.Warn("telemetry: mkdir", "dir", r.dir, "err", err)
		return
	}

	path := r.Path()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("telemetry: open", "path", path, "err", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		slog.Warn("telemetry: write", "path", path, "err", err)
	}
}
