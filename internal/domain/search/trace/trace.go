// Package trace collects a bounded, append-only sequence of timestamped
// debug entries accumulated across search stages. The trace travels with
// the outcome for post-hoc diagnosis and never drives control flow.
package trace

import "time"

const (
	// maxEntries bounds trace growth.
	maxEntries = 256
	// maxMessageLen truncates payload previews.
	maxMessageLen = 200
)

// Entry is one timestamped trace record.
type Entry struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Stage          string  `json:"stage"`
	Message        string  `json:"message"`
}

// Trace is an append-only debug log anchored to an invocation start time.
type Trace struct {
	start   time.Time
	entries []Entry
	dropped int
}

// New creates a trace anchored at start.
func New(start time.Time) *Trace {
	return &Trace{start: start}
}

// Append records one entry. Messages are truncated to a fixed preview
// length; entries past the bound are counted but dropped.
func (t *Trace) Append(stage, message string) {
	if len(t.entries) >= maxEntries {
		t.dropped++
		return
	}
	if r := []rune(message); len(r) > maxMessageLen {
		message = string(r[:maxMessageLen]) + "..."
	}
	t.entries = append(t.entries, Entry{
		ElapsedSeconds: time.Since(t.start).Seconds(),
		Stage:          stage,
		Message:        message,
	})
}

// Entries returns a copy of the recorded entries in append order.
func (t *Trace) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Dropped returns the number of entries discarded past the bound.
func (t *Trace) Dropped() int { return t.dropped }
