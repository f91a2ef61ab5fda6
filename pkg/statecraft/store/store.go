package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
	"github.com/randalmurphal/statecraft/pkg/statecraft/observability"
)

// ErrStoreClosed indicates the store has been closed.
var ErrStoreClosed = errors.New("state store closed")

// Entry records one applied event.
type Entry struct {
	Sequence  int
	Type      string
	Event     *event.Event
	Changed   bool // Whether any handler matched
	Timestamp time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Defaults to observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithHistoryLimit keeps at most n history entries, dropping the oldest.
// Zero or less keeps everything.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// WithEvents forwards every applied event to d after the state changes,
// so listeners observe the new state.
func WithEvents(d *event.Dispatcher) Option {
	return func(s *Store) {
		s.events = d
	}
}

// Store holds the current Snapshot and applies dispatched events through a
// Reducer. Data is lost when the process exits.
type Store struct {
	mu      sync.RWMutex
	state   Snapshot
	reducer *Reducer
	history []Entry
	seq     int
	limit   int
	closed  bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	events  *event.Dispatcher
}

// New creates a store holding initial.
func New(initial Snapshot, reducer *Reducer, opts ...Option) *Store {
	s := &Store{
		state:   initial,
		reducer: reducer,
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies evt and records it in the history. A nil event fails
// with ErrInvalidArgument. Errors from forwarded listeners are returned
// after the state has changed.
func (s *Store) Dispatch(ctx context.Context, evt *event.Event) error {
	if evt == nil {
		return screrrors.InvalidArgument("store.Dispatch", evt, "nil event")
	}

	seq, err := s.apply(evt)
	if err != nil {
		return err
	}

	observability.LogStateTransition(s.logger, evt.Type(), seq)
	s.metrics.RecordStateTransition(ctx, evt.Type())

	if s.events != nil {
		return s.events.Dispatch(ctx, evt)
	}
	return nil
}

// apply runs the reducer and records history. A panicking handler leaves the
// state and history untouched.
func (s *Store) apply(evt *event.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	changed := s.reducer.Handles(evt)
	s.state = s.reducer.Apply(s.state, evt)
	s.seq++
	s.history = append(s.history, Entry{
		Sequence:  s.seq,
		Type:      evt.Type(),
		Event:     evt,
		Changed:   changed,
		Timestamp: time.Now().UTC(),
	})
	if s.limit > 0 && len(s.history) > s.limit {
		s.history = slices.Delete(s.history, 0, len(s.history)-s.limit)
	}
	return s.seq, nil
}

// Replace swaps the current snapshot without recording history.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	s.state = snap
	s.mu.Unlock()
}

// History returns the applied events ordered by sequence.
func (s *Store) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

// Len returns the number of retained history entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Close stops the store from accepting events and drops its history.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.history = nil
	return nil
}
