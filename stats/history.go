/*
history.go - Reversible edit log backing undo

PURPOSE:
  Every counter mutation in a live game is recorded here together with
  enough information to reverse it exactly. Undo pops the most recent
  entry and applies its inverse to the live Counts.

INVARIANTS:
  1. LIFO: undo always reverses the most recent surviving entry
  2. Exact inverse: undoing a recorded mutation restores the prior
     Counts bit-for-bit (entries carry the EFFECTIVE applied delta,
     so clamped decrements undo correctly)
  3. Bounded: the log holds at most historyCap entries; the oldest are
     dropped silently
  4. Total: undo on an empty log is a no-op, never an error
  5. No redo: entries are inverse operations, not replayable commands

LIFECYCLE:
  The log is owned by the live session only. It is cleared on finalize,
  on explicit reset, and when a new draft starts. It is never persisted.
*/
package stats

// historyCap bounds the undo depth. Undo beyond a handful of taps is
// rarely exercised; the oldest entries are dropped silently.
const historyCap = 64

// EntryKind tags the variants of a history entry.
type EntryKind int

const (
	// EntryIncrement records "+Delta on Key".
	EntryIncrement EntryKind = iota
	// EntryDecrement records "-Delta on Key". Delta is the amount that
	// was actually removed after clamping, which may be less than the
	// requested decrement.
	EntryDecrement
	// EntryReset records a full reset and carries the prior Counts.
	EntryReset
)

// Entry is one reversible edit.
type Entry struct {
	Kind     EntryKind
	Key      StatKey
	Delta    int    // magnitude actually applied (increment/decrement)
	Snapshot Counts // prior counts (reset only)
}

// History is the bounded LIFO log of reversible edits.
// The zero value is ready to use.
type History struct {
	entries []Entry
}

// Len returns the number of undoable entries.
func (h *History) Len() int { return len(h.entries) }

// Record appends an entry, dropping the oldest if the cap is reached.
func (h *History) Record(e Entry) {
	if len(h.entries) >= historyCap {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, e)
}

// RecordApply applies delta to key on c, records the effective mutation,
// and returns the new Counts. This is the mutation path the live session
// uses: recording the clamped delta keeps the undo inverse exact even
// when a decrement bottomed out at zero.
func (h *History) RecordApply(c Counts, key StatKey, delta int) Counts {
	next := Apply(c, key, delta)
	applied := next.Get(key) - c.Get(key)
	switch {
	case applied > 0:
		h.Record(Entry{Kind: EntryIncrement, Key: key, Delta: applied})
	case applied < 0:
		h.Record(Entry{Kind: EntryDecrement, Key: key, Delta: -applied})
	default:
		// Clamped to a no-op (e.g. decrement at zero). Nothing to undo.
	}
	return next
}

// RecordReset clears c to zero and records the prior snapshot so undo
// can restore it exactly.
func (h *History) RecordReset(c Counts) Counts {
	h.Record(Entry{Kind: EntryReset, Snapshot: c})
	return Counts{}
}

// Undo reverses the most recent entry and returns the resulting Counts.
// On an empty log it returns c unchanged and ok=false; it never errors
// and never mutates state in that case.
func (h *History) Undo(c Counts) (next Counts, ok bool) {
	if len(h.entries) == 0 {
		return c, false
	}
	e := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]

	switch e.Kind {
	case EntryIncrement:
		return Apply(c, e.Key, -e.Delta), true
	case EntryDecrement:
		return Apply(c, e.Key, e.Delta), true
	case EntryReset:
		return e.Snapshot, true
	}
	return c, false
}

// Clear discards all entries. Called on finalize, explicit reset, and
// when starting a new draft.
func (h *History) Clear() {
	h.entries = nil
}
