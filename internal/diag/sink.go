// Package diag provides the diagnostic side channel used by the scan and
// browser components. All operational logging flows through a Sink so that
// stdout stays reserved for protocol payloads and tests can capture events
// silently.
package diag

import (
	"fmt"
	"log"
	"sync"
)

// Sink receives operational diagnostics (skipped files, unreadable
// directories, tool failures). Implementations must be safe for use from
// multiple goroutines.
type Sink interface {
	Event(format string, args ...interface{})
}

// LogSink writes events through a standard *log.Logger.
type LogSink struct {
	l *log.Logger
}

// NewLogSink wraps logger in a Sink. A nil logger falls back to the
// process-wide default logger, which main configures to write to stderr.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{l: logger}
}

// Event logs a single diagnostic event.
func (s *LogSink) Event(format string, args ...interface{}) {
	s.l.Printf(format, args...)
}

// CaptureSink records events in memory. Intended for tests that need to
// assert on (or just silence) diagnostic output.
type CaptureSink struct {
	mu     sync.Mutex
	events []string
}

// Event appends the formatted event to the in-memory list.
func (s *CaptureSink) Event(format string, args ...interface{}) {
	s.mu.Lock()
	s.events = append(s.events, fmt.Sprintf(format, args...))
	s.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (s *CaptureSink) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	copy(out, s.events)
	return out
}
