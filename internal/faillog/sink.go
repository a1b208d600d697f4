// Package faillog provides the append-only audit log for backend
// failures and fallback activations. The core depends only on the Sink
// interface; the concrete storage is injected.
package faillog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rtiscope/rtiscope/internal/model"
)

// Record is one failure event: a transition into FallbackAttempt or
// Failed emits exactly one.
type Record struct {
	Timestamp    time.Time     `json:"timestamp"`
	Variant      model.Variant `json:"variant"`
	ErrorKind    string        `json:"error_kind"`
	ErrorMessage string        `json:"error_message,omitempty"`
	FallbackUsed bool          `json:"fallback_used"`
}

// Sink is the append-only failure log interface.
type Sink interface {
	Append(rec Record) error
}

// NopSink discards all records. Used when failure logging is disabled.
type NopSink struct{}

// Append discards the record.
func (NopSink) Append(Record) error { return nil }

// FileSink appends records as JSON lines. Each record is written in a
// single Write call on an O_APPEND descriptor, so concurrent
// orchestrator instances never interleave partial records.
type FileSink struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// NewFileSink opens (creating if needed) the log file at path.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open failure log: %w", err)
	}

	return &FileSink{path: path, f: f}, nil
}

// Append writes one complete record as a single JSON line.
func (s *FileSink) Append(rec Record) error {
	const maxMessageLen = 500
	if len(rec.ErrorMessage) > maxMessageLen {
		rec.ErrorMessage = rec.ErrorMessage[:maxMessageLen]
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal failure record: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(data); err != nil {
		return fmt.Errorf("append failure record: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
