// Package telemetry provides a JSONL event stream for recording justify runs.
// Every run start, completion, failure and watched input change is written as
// one JSON object per line, so a session can be audited or replayed later.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindRunStart     = "run_start"
	KindRunDone      = "run_done"
	KindRunFailed    = "run_failed"
	KindInputChanged = "input_changed"
)

// Event represents a single telemetry record. Run numbers count from 1 within
// a process; watch mode increments it on every re-run.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Run       int       `json:"run,omitempty"`
	Input     string    `json:"input,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// RunStart is the payload of a run_start event.
type RunStart struct {
	Width  int    `json:"width"`
	Output string `json:"output"`
}

// RunDone is the payload of a run_done event.
type RunDone struct {
	Words        int   `json:"words"`
	Lines        int   `json:"lines"`
	TotalBadness int64 `json:"total_badness"`
	DurationMS   int64 `json:"duration_ms"`
}

// RunFailed is the payload of a run_failed event.
type RunFailed struct {
	Error string `json:"error"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes a single event to the JSONL file. A zero Timestamp is filled
// with the current time. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
