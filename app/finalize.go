/*
finalize.go - The gated finalize pipeline and record queries

THE PIPELINE (order is the core correctness contract of the paywall):
  1. Validate input              - nothing mutated on failure
  2. MayFinalize                 - the gate decision
  3. Append the frozen snapshot  - the record exists before charging
  4. ConsumeOnFinalize           - exactly one unit, exactly once
  5. Clear the undo history
  6. Write everything through

Steps 2 and 4 are never reordered and never separated by another
finalize attempt; all of this runs under one mutex in a single-writer
process.
*/
package app

import (
	"context"

	"github.com/courtside/stat-engine/entitlement"
	"github.com/courtside/stat-engine/season"
	"github.com/courtside/stat-engine/stats"
	"github.com/courtside/stat-engine/store"
)

// Finalize converts the live draft into an immutable GameRecord,
// consuming one unit of entitlement.
//
// Failure modes: *ValidationError when the player name is missing,
// entitlement.ErrFinalizeNotAllowed when the gate refuses. Neither
// mutates any state.
func (a *App) Finalize(ctx context.Context) (season.GameRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.draft.Player == "" {
		return season.GameRecord{}, &ValidationError{Field: "player", Message: "player name is required"}
	}

	now := a.now()
	if !entitlement.MayFinalize(a.ent, now) {
		return season.GameRecord{}, entitlement.ErrFinalizeNotAllowed
	}

	gameDate := a.draft.GameDate
	if gameDate == "" {
		gameDate = now.Format("2006-01-02")
	}

	record := season.NewGameRecord(
		a.draft.Player, a.draft.ScopeID, a.draft.Opponent,
		gameDate, a.draft.Note, a.draft.Counts, now,
	)
	a.games.Append(record)
	a.ent = entitlement.ConsumeOnFinalize(a.ent, now)
	a.history.Clear()

	a.draft.Counts = stats.Counts{}
	a.draft.Opponent = ""
	a.draft.GameDate = ""
	a.draft.Note = ""

	// Write-through. In-memory state is authoritative; a storage error
	// is reported but the finalized record is never rolled back.
	if err := a.store.Set(ctx, store.KeyGames, a.games.Records()); err != nil {
		return record, err
	}
	if err := a.store.Set(ctx, store.KeyEntitlement, a.ent); err != nil {
		return record, err
	}
	return record, a.persistDraft(ctx)
}

// DeleteGame removes a finalized record after user confirmation.
// Idempotent: deleting an id that no longer exists is a no-op.
func (a *App) DeleteGame(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.games.Remove(id)
	return a.store.Set(ctx, store.KeyGames, a.games.Records())
}

// Games returns a player's finalized records within a scope, most
// recent first.
func (a *App) Games(player, scopeID string) []season.GameRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.games.ByPlayerAndScope(player, scopeID)
}

// GamesInScope returns every record within a scope, most recent first.
func (a *App) GamesInScope(scopeID string) []season.GameRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.games.ByScope(scopeID)
}

// SeasonSummary aggregates a player's season within a scope.
func (a *App) SeasonSummary(player, scopeID string) season.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return season.Summarize(a.games.ByPlayerAndScope(player, scopeID))
}

// Players lists the distinct player names within a scope.
func (a *App) Players(scopeID string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.games.Players(scopeID)
}
