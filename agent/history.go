package agent

import (
	"sync"
	"time"
)

// HistoryEntry is one dispatch and its outcome.
type HistoryEntry struct {
	Step       PlanStep
	Result     ToolResult
	At         time.Time
	Corrective bool
}

// ExecutionRecord is an append-only log of dispatches. Entries are only ever
// removed all at once by Clear.
type ExecutionRecord struct {
	mu      sync.Mutex
	entries []HistoryEntry
}

func NewExecutionRecord() *ExecutionRecord {
	return &ExecutionRecord{}
}

func (r *ExecutionRecord) Append(e HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Entries returns a copy of the log in dispatch order.
func (r *ExecutionRecord) Entries() []HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]HistoryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *ExecutionRecord) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *ExecutionRecord) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
