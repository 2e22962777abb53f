package activity

import "github.com/supplier-ledger/internal/domain/shared"

// MaxEntries bounds the in-app log
const MaxEntries = 100

// Log is the capped activity log, newest entry first
type Log struct {
	entries []Entry
}

// NewLog wraps existing entries (assumed newest first) and enforces the cap
func NewLog(entries []Entry) *Log {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Log{entries: out}
}

// Append prepends the entry and drops anything past MaxEntries
func (l *Log) Append(e Entry) {
	next := make([]Entry, 0, min(len(l.entries)+1, MaxEntries))
	next = append(next, e)
	for _, old := range l.entries {
		if len(next) == MaxEntries {
			break
		}
		next = append(next, old)
	}
	l.entries = next
}

// Entries returns a copy of the log, newest first
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len is the number of retained entries
func (l *Log) Len() int {
	return len(l.entries)
}

// Search filters by a case-insensitive substring over title, meta and date
func (l *Log) Search(query string) []Entry {
	q := shared.NormalizeQuery(query)
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Matches(q) {
			out = append(out, e)
		}
	}
	return out
}
