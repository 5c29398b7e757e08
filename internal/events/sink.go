package events

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/google/uuid"
)

// NewRunID generates a fresh run identifier stamped on every event.
func NewRunID() string {
	return uuid.New().String()
}

// JSONLSink appends events to a JSONL file, one record per line.
// A mutex serializes writes so a single record is never interleaved.
// Recording is best-effort: write failures are silently dropped, the
// simulation must never stall on observability.
type JSONLSink struct {
	run string

	mu sync.Mutex
	f  *os.File
}

// NewJSONLSink opens (or creates) the events file for appending.
func NewJSONLSink(path, run string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: events file is non-sensitive operational data
	if err != nil {
		return nil, err
	}
	return &JSONLSink{run: run, f: f}, nil
}

// Record implements Sink.
func (s *JSONLSink) Record(kind Kind, actor string, payload map[string]interface{}) {
	data, err := json.Marshal(stamp(s.run, kind, actor, payload))
	if err != nil {
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.f.Write(data)
}

// Close closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// MemorySink collects events in memory. Used by tests and the run
// summary.
type MemorySink struct {
	run string

	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink(run string) *MemorySink {
	return &MemorySink{run: run}
}

// Record implements Sink.
func (s *MemorySink) Record(kind Kind, actor string, payload map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, stamp(s.run, kind, actor, payload))
}

// Events returns a snapshot of all recorded events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (s *MemorySink) Count(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Fanout duplicates every record to each member sink.
type Fanout []Sink

// Record implements Sink.
func (f Fanout) Record(kind Kind, actor string, payload map[string]interface{}) {
	for _, s := range f {
		s.Record(kind, actor, payload)
	}
}

// Nop discards every record. The zero value is ready to use.
type Nop struct{}

// Record implements Sink.
func (Nop) Record(Kind, string, map[string]interface{}) {}
