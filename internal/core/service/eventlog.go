package service

import (
	"attackSimBackend/internal/core/domain"
	"sync"
	"time"
)

// EventLog is the append-only, ordered log of one run. The runner is the only
// writer; any number of readers may follow it while it grows.
type EventLog struct {
	mu       sync.Mutex
	events   []domain.LogEvent
	closed   bool
	changed  chan struct{}
	clock    func() time.Time
	onAppend func(domain.LogEvent)
}

func NewEventLog(clock func() time.Time) *EventLog {
	if clock == nil {
		clock = time.Now
	}
	return &EventLog{
		changed: make(chan struct{}),
		clock:   clock,
	}
}

// OnAppend registers a hook called, in order, for every appended event.
// It must be set before the first Append.
func (l *EventLog) OnAppend(fn func(domain.LogEvent)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onAppend = fn
}

// Append assigns the next sequence id and a timestamp no earlier than the
// previous event's. Appends after Close are dropped.
func (l *EventLog) Append(kind domain.LogKind, message string) (domain.LogEvent, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return domain.LogEvent{}, false
	}

	ev := domain.LogEvent{
		SequenceID: uint64(len(l.events)) + 1,
		Timestamp:  l.clock(),
		Kind:       kind,
		Message:    message,
	}
	if n := len(l.events); n > 0 && ev.Timestamp.Before(l.events[n-1].Timestamp) {
		ev.Timestamp = l.events[n-1].Timestamp
	}

	l.events = append(l.events, ev)
	if l.onAppend != nil {
		l.onAppend(ev)
	}
	close(l.changed)
	l.changed = make(chan struct{})
	return ev, true
}

// Close marks the log complete and wakes every waiting reader.
func (l *EventLog) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.changed)
}

func (l *EventLog) Events() []domain.LogEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LogEvent, len(l.events))
	copy(out, l.events)
	return out
}

func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// since returns the events from index on, whether the log was closed at the
// time of the read, and a channel closed on the next change.
func (l *EventLog) since(index int) ([]domain.LogEvent, bool, <-chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var batch []domain.LogEvent
	if index < len(l.events) {
		batch = make([]domain.LogEvent, len(l.events)-index)
		copy(batch, l.events[index:])
	}
	return batch, l.closed, l.changed
}
