// Package feed provides a TUI for watching a run's activity stream.
package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/deeklead/apiary/internal/events"
)

// pollInterval is how often the tail loop re-checks the events file
// for new lines once it has caught up.
const pollInterval = 200 * time.Millisecond

// EventSource is a source of feed events.
type EventSource interface {
	Events() <-chan events.Event
	Close() error
}

// FileSource tails an events JSONL file, emitting existing records
// first and then following appends, tail -f style.
type FileSource struct {
	events chan events.Event
	cancel context.CancelFunc
	done   chan struct{}
}

// NewFileSource opens the events file and starts the tail loop.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is user-supplied on the command line
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &FileSource{
		events: make(chan events.Event, 100),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer close(s.events)
		defer f.Close()
		s.tail(ctx, f)
	}()

	return s, nil
}

// Events returns the event channel. Closed when the source closes.
func (s *FileSource) Events() <-chan events.Event {
	return s.events
}

// Close stops the tail loop and waits for it to exit.
func (s *FileSource) Close() error {
	s.cancel()
	<-s.done
	return nil
}

// tail reads lines until ctx is done, sleeping briefly at EOF.
func (s *FileSource) tail(ctx context.Context, f *os.File) {
	reader := bufio.NewReader(f)
	var partial strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			full := partial.String() + line
			partial.Reset()
			if e := parseLine(full); e != nil {
				select {
				case s.events <- *e:
				case <-ctx.Done():
					return
				}
			}
			continue
		}
		if err != io.EOF {
			return
		}

		// A write may land mid-line; keep the fragment for the next
		// pass instead of parsing half a record.
		partial.WriteString(line)

		select {
		case <-ctx.Done():
			return
		case <-time.After(pollInterval):
		}
	}
}

// parseLine decodes one JSONL record. Malformed lines are skipped.
func parseLine(line string) *events.Event {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	var e events.Event
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		return nil
	}
	if e.Kind == "" {
		return nil
	}
	return &e
}
