/*
Package season provides the finalized game record store and season
aggregation queries.

PURPOSE:
  Once a live game is finalized its box score becomes a GameRecord:
  an immutable snapshot tagged with player, team scope, and date.
  This package owns the collection of those records and the queries
  over it (per-player season totals and averages).

KEY CONCEPTS IN THIS FILE (record.go):
  - GameRecord: Immutable-after-creation finalized box score
  - TeamScope:  Named partition of records and the player roster

DESIGN PRINCIPLES:
  1. Immutability: records are never updated, only appended or removed
  2. Player identity is a plain string key. Two players with the same
     name in the same scope are indistinguishable; scopes exist to keep
     rosters small enough that this is acceptable.
  3. Derived season values (points per game, shooting percentages) are
     recomputed from stored integer counters on every read.

SEE ALSO:
  - log.go:       Append/remove/query over the record collection
  - aggregate.go: Field-wise totals and season summaries
*/
package season

import (
	"time"

	"github.com/google/uuid"

	"github.com/courtside/stat-engine/stats"
)

// =============================================================================
// GAME RECORD - Finalized box score snapshot
// =============================================================================

// GameRecord is a finalized box score. Immutable after creation:
// created only through the finalize flow, deleted only by explicit
// confirmation, never mutated.
type GameRecord struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	GameDate  string       `json:"gameDate"` // YYYY-MM-DD as entered by the coach
	ScopeID   string       `json:"scopeId"`
	Opponent  string       `json:"opponent"`
	Player    string       `json:"player"`
	Note      string       `json:"note,omitempty"`
	Counts    stats.Counts `json:"counts"`
}

// NewGameRecord freezes the given box score into a record with a fresh
// identifier and creation timestamp.
func NewGameRecord(player, scopeID, opponent, gameDate, note string, counts stats.Counts, now time.Time) GameRecord {
	return GameRecord{
		ID:        uuid.NewString(),
		CreatedAt: now,
		GameDate:  gameDate,
		ScopeID:   scopeID,
		Opponent:  opponent,
		Player:    player,
		Note:      note,
		Counts:    counts,
	}
}

// =============================================================================
// TEAM SCOPE - Named record partition
// =============================================================================

// TeamScope partitions the game records and the player roster.
// At least one scope exists at all times; a default is materialized on
// first load.
type TeamScope struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultScopeName is the name of the scope materialized on first run.
const DefaultScopeName = "My Team"

// NewTeamScope creates a scope with a fresh identifier.
func NewTeamScope(name string, now time.Time) TeamScope {
	return TeamScope{ID: uuid.NewString(), Name: name, CreatedAt: now}
}
