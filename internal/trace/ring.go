package trace

import (
	"errors"
	"io"
	"sync"
)

// RingTracer keeps the last capacity events in memory.
type RingTracer struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int
	full     bool
	level    Level

	dump       io.Writer
	dumpFormat Format
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
	}
}

func (t *RingTracer) Emit(ev *Event) {
	if !allowed(t.level, ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.head] = stored
	t.head = (t.head + 1) % t.capacity
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.head]...)
	}
	out := make([]Event, 0, t.capacity)
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// DumpOnClose makes Close write the retained events to w.
func (t *RingTracer) DumpOnClose(w io.Writer, format Format) *RingTracer {
	t.dump, t.dumpFormat = w, format
	return t
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps the retained events when DumpOnClose was set and closes
// the destination if it is an io.Closer.
func (t *RingTracer) Close() error {
	if t.dump == nil {
		return nil
	}
	w := t.dump
	t.dump = nil
	err := t.Dump(w, t.dumpFormat)
	if closer, ok := w.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}

func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
