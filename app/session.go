/*
session.go - Live game operations

PURPOSE:
  The tap surface: increment/decrement counters, undo, reset, edit the
  draft metadata. Every counter mutation goes through the history log
  so it can be reversed, and every transition writes the draft through
  to the store (a draft save is entitlement-free by definition; only
  finalize is gated).
*/
package app

import (
	"context"

	"github.com/courtside/stat-engine/stats"
)

// SessionView is a read-only snapshot of the live game.
type SessionView struct {
	Draft   Draft
	CanUndo bool
}

// Session returns the current live game state.
func (a *App) Session() SessionView {
	a.mu.Lock()
	defer a.mu.Unlock()

	return SessionView{Draft: a.draft, CanUndo: a.history.Len() > 0}
}

// DraftMeta is the editable metadata of the in-progress game.
type DraftMeta struct {
	Player   string
	Opponent string
	GameDate string
	Note     string
	ScopeID  string
}

// UpdateDraft replaces the draft metadata. Counts and history are
// untouched.
func (a *App) UpdateDraft(ctx context.Context, meta DraftMeta) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if meta.ScopeID != "" && !a.scopeExists(meta.ScopeID) {
		return &ValidationError{Field: "scopeId", Message: "unknown team scope"}
	}

	a.draft.Player = meta.Player
	a.draft.Opponent = meta.Opponent
	a.draft.GameDate = meta.GameDate
	a.draft.Note = meta.Note
	if meta.ScopeID != "" {
		a.draft.ScopeID = meta.ScopeID
	}
	return a.persistDraft(ctx)
}

// RecordStat applies delta to one counter, records the inverse for
// undo, and writes the draft through.
func (a *App) RecordStat(ctx context.Context, key stats.StatKey, delta int) (stats.Counts, error) {
	if !stats.ValidKey(key) {
		return stats.Counts{}, &ValidationError{Field: "key", Message: "unknown stat key"}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.draft.Counts = a.history.RecordApply(a.draft.Counts, key, delta)
	return a.draft.Counts, a.persistDraft(ctx)
}

// Undo reverses the most recent counter mutation. A no-op when there
// is nothing to undo.
func (a *App) Undo(ctx context.Context) (stats.Counts, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next, ok := a.history.Undo(a.draft.Counts)
	if !ok {
		return a.draft.Counts, nil
	}
	a.draft.Counts = next
	return a.draft.Counts, a.persistDraft(ctx)
}

// ResetCounts zeroes every counter. The reset itself is undoable: the
// history entry carries the prior snapshot.
func (a *App) ResetCounts(ctx context.Context) (stats.Counts, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.draft.Counts = a.history.RecordReset(a.draft.Counts)
	return a.draft.Counts, a.persistDraft(ctx)
}

// StartNewDraft clears the in-progress game and its history. Player
// and scope are kept: a coach usually scores the same kid all season.
func (a *App) StartNewDraft(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.draft.Counts = stats.Counts{}
	a.draft.Opponent = ""
	a.draft.GameDate = ""
	a.draft.Note = ""
	a.history.Clear()
	return a.persistDraft(ctx)
}
