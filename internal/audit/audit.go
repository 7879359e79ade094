// Package audit records catalog load attempts.
//
// Only the fact that a load happened is recorded: which file, when, how it
// went and how many records it produced. The catalog contents are never
// stored. Recording is best-effort; callers log a failed Record and carry on.
package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/google/uuid"
)

// Outcome is the result of a load attempt.
type Outcome string

const (
	OutcomeLoaded    Outcome = "loaded"
	OutcomeOpenError Outcome = "open_error"
	OutcomeEmpty     Outcome = "empty"
	OutcomeFailed    Outcome = "failed"
)

// LoadEvent describes one load attempt.
type LoadEvent struct {
	ID        uuid.UUID     `json:"id"`
	Path      string        `json:"path"`
	Outcome   Outcome       `json:"outcome"`
	Lines     int           `json:"lines"`
	Records   int           `json:"records"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Recorder persists load events.
type Recorder interface {
	Record(ctx context.Context, ev LoadEvent) error
}

// OutcomeFor classifies a load error.
func OutcomeFor(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeLoaded
	case errors.Is(err, catalog.ErrOpen):
		return OutcomeOpenError
	case errors.Is(err, catalog.ErrEmpty):
		return OutcomeEmpty
	default:
		return OutcomeFailed
	}
}

// NewLoadEvent builds an event for a finished load. cat may be nil when the
// load failed.
func NewLoadEvent(id uuid.UUID, path string, cat *catalog.Catalog, err error, elapsed time.Duration) LoadEvent {
	ev := LoadEvent{
		ID:        id,
		Path:      path,
		Outcome:   OutcomeFor(err),
		Duration:  elapsed,
		CreatedAt: time.Now().UTC(),
	}

	var stats catalog.Stats
	var emptyErr *catalog.EmptyError
	switch {
	case cat != nil:
		stats = cat.Stats()
	case errors.As(err, &emptyErr):
		stats = emptyErr.Stats
	}
	ev.Lines = stats.Lines
	ev.Records = stats.Records
	ev.Skipped = stats.Skipped

	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, LoadEvent) error { return nil }

// MemoryRecorder keeps the most recent events in memory.
type MemoryRecorder struct {
	mu     sync.Mutex
	limit  int
	events []LoadEvent
}

// NewMemoryRecorder returns a recorder that retains at most limit events.
// A limit <= 0 keeps everything.
func NewMemoryRecorder(limit int) *MemoryRecorder {
	return &MemoryRecorder{limit: limit}
}

func (m *MemoryRecorder) Record(_ context.Context, ev LoadEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, ev)
	if m.limit > 0 && len(m.events) > m.limit {
		m.events = m.events[len(m.events)-m.limit:]
	}
	return nil
}

// Events returns a copy of the retained events, oldest first.
func (m *MemoryRecorder) Events() []LoadEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]LoadEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Multi records every event to each of its recorders in order. All
// recorders are tried; their errors are joined.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, ev LoadEvent) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
