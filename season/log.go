/*
log.go - The game record collection

PURPOSE:
  An append/remove collection of finalized GameRecords with the query
  contract the UI depends on: most-recent-first by creation time.

CONTRACT:
  - Append inserts at the head
  - Remove is idempotent: deleting a missing id is a no-op, because the
    user already confirmed and a double-tap must not surface an error
  - Queries are evaluated fresh on every call, never a live cursor
*/
package season

import "sort"

// Log holds the finalized game records, most recent first.
// The zero value is an empty log; NewLog restores a persisted one.
type Log struct {
	records []GameRecord
}

// NewLog builds a log from persisted records. Input order does not
// matter; queries sort by CreatedAt descending.
func NewLog(records []GameRecord) *Log {
	l := &Log{records: make([]GameRecord, len(records))}
	copy(l.records, records)
	sort.SliceStable(l.records, func(i, j int) bool {
		return l.records[i].CreatedAt.After(l.records[j].CreatedAt)
	})
	return l
}

// Append inserts a record at the head.
func (l *Log) Append(r GameRecord) {
	l.records = append([]GameRecord{r}, l.records...)
}

// Remove deletes a record by id. Missing ids are a no-op.
func (l *Log) Remove(id string) {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return
		}
	}
}

// Get returns the record with the given id, if present.
func (l *Log) Get(id string) (GameRecord, bool) {
	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return GameRecord{}, false
}

// Len returns the number of records.
func (l *Log) Len() int { return len(l.records) }

// Records returns a copy of all records, most recent first.
func (l *Log) Records() []GameRecord {
	out := make([]GameRecord, len(l.records))
	copy(out, l.records)
	return out
}

// ByPlayerAndScope returns the records for an exact player name within
// a scope, most recent first. Re-evaluated fresh on each call.
func (l *Log) ByPlayerAndScope(player, scopeID string) []GameRecord {
	var out []GameRecord
	for _, r := range l.records {
		if r.Player == player && r.ScopeID == scopeID {
			out = append(out, r)
		}
	}
	return out
}

// ByScope returns all records within a scope, most recent first.
func (l *Log) ByScope(scopeID string) []GameRecord {
	var out []GameRecord
	for _, r := range l.records {
		if r.ScopeID == scopeID {
			out = append(out, r)
		}
	}
	return out
}

// Players returns the distinct player names within a scope, in
// most-recently-played order.
func (l *Log) Players(scopeID string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range l.records {
		if r.ScopeID != scopeID || seen[r.Player] {
			continue
		}
		seen[r.Player] = true
		out = append(out, r.Player)
	}
	return out
}
