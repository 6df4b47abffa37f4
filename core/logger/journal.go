package logger

import (
	"sync"
	"time"
)

// Entry is one recorded execution log line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Component string    `json:"component"`
	Message   string    `json:"message"`
}

// Journal records events for the run report's execution log.
// It is safe for concurrent use so both engines may share one journal.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{now: time.Now}
}

// Log implements Func.
func (j *Journal) Log(level Level, component, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, Entry{
		Timestamp: j.now(),
		Level:     level,
		Component: component,
		Message:   message,
	})
}

// Entries returns a copy of the recorded entries in arrival order.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}
