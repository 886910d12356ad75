package season_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/stat-engine/season"
	"github.com/courtside/stat-engine/stats"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func gameAt(player, scopeID string, at time.Time, c stats.Counts) season.GameRecord {
	return season.NewGameRecord(player, scopeID, "Hawks", at.Format("2006-01-02"), "", c, at)
}

func t0() time.Time {
	return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
}

// =============================================================================
// LOG - Append / remove / query
// =============================================================================

func TestLog_Query_MostRecentFirst(t *testing.T) {
	l := season.NewLog(nil)
	l.Append(gameAt("Jordan", "s1", t0(), stats.Counts{}))
	l.Append(gameAt("Jordan", "s1", t0().Add(time.Hour), stats.Counts{}))
	l.Append(gameAt("Jordan", "s1", t0().Add(2*time.Hour), stats.Counts{}))

	got := l.ByPlayerAndScope("Jordan", "s1")
	require.Len(t, got, 3)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
	assert.True(t, got[1].CreatedAt.After(got[2].CreatedAt))
}

func TestLog_Query_ExactMatchOnPlayerAndScope(t *testing.T) {
	l := season.NewLog(nil)
	l.Append(gameAt("Jordan", "s1", t0(), stats.Counts{}))
	l.Append(gameAt("Jordan", "s2", t0(), stats.Counts{}))
	l.Append(gameAt("jordan", "s1", t0(), stats.Counts{}))

	assert.Len(t, l.ByPlayerAndScope("Jordan", "s1"), 1)
	assert.Len(t, l.ByPlayerAndScope("jordan", "s1"), 1)
	assert.Len(t, l.ByScope("s1"), 2)
}

func TestLog_Remove_Idempotent(t *testing.T) {
	// GIVEN: a record in the log
	// WHEN: removing it twice, plus removing an id that never existed
	// THEN: no error either time; log is simply one shorter

	l := season.NewLog(nil)
	r := gameAt("Jordan", "s1", t0(), stats.Counts{})
	l.Append(r)

	l.Remove(r.ID)
	l.Remove(r.ID)
	l.Remove("no-such-id")

	assert.Equal(t, 0, l.Len())
}

func TestLog_NewLog_SortsPersistedRecords(t *testing.T) {
	// Persisted order should not matter; queries must still be
	// CreatedAt descending.
	a := gameAt("J", "s1", t0(), stats.Counts{})
	b := gameAt("J", "s1", t0().Add(time.Hour), stats.Counts{})

	l := season.NewLog([]season.GameRecord{a, b})

	got := l.ByPlayerAndScope("J", "s1")
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestLog_Players_DistinctPerScope(t *testing.T) {
	l := season.NewLog(nil)
	l.Append(gameAt("Alex", "s1", t0(), stats.Counts{}))
	l.Append(gameAt("Sam", "s1", t0().Add(time.Hour), stats.Counts{}))
	l.Append(gameAt("Alex", "s1", t0().Add(2*time.Hour), stats.Counts{}))
	l.Append(gameAt("Riley", "s2", t0(), stats.Counts{}))

	assert.Equal(t, []string{"Alex", "Sam"}, l.Players("s1"))
}

// =============================================================================
// AGGREGATION
// =============================================================================

func TestAggregate_Additivity(t *testing.T) {
	// GIVEN: two disjoint record sequences A and B
	// THEN: aggregate(A ++ B) == add(aggregate(A), aggregate(B))

	a := []season.GameRecord{
		gameAt("J", "s1", t0(), stats.Counts{TwoPointMade: 1, Assist: 2}),
		gameAt("J", "s1", t0(), stats.Counts{ThreePointMade: 2}),
	}
	b := []season.GameRecord{
		gameAt("J", "s1", t0(), stats.Counts{FreeThrowMade: 3, Foul: 1}),
	}

	combined := season.Aggregate(append(append([]season.GameRecord{}, a...), b...))
	split := stats.Add(season.Aggregate(a), season.Aggregate(b))

	assert.Equal(t, split, combined)
}

func TestSummarize_SeasonTotalsAndAverages(t *testing.T) {
	// GIVEN: three games for one player:
	//   made2=1 / made2=2,made3=1,ftm=1 / ftm=2
	// THEN: totals made2=3, made3=1, ftm=3 -> 12 points, PPG 4.0

	games := []season.GameRecord{
		gameAt("Jordan", "s1", t0(), stats.Counts{TwoPointMade: 1}),
		gameAt("Jordan", "s1", t0(), stats.Counts{TwoPointMade: 2, ThreePointMade: 1, FreeThrowMade: 1}),
		gameAt("Jordan", "s1", t0(), stats.Counts{FreeThrowMade: 2}),
	}

	s := season.Summarize(games)

	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 3, s.Totals.TwoPointMade)
	assert.Equal(t, 1, s.Totals.ThreePointMade)
	assert.Equal(t, 3, s.Totals.FreeThrowMade)
	assert.Equal(t, 12, s.Points)
	assert.True(t, s.PointsPerGame.Equal(decimal.RequireFromString("4")), "PPG %s", s.PointsPerGame)
}

func TestSummarize_NoGames_AllZero(t *testing.T) {
	s := season.Summarize(nil)

	assert.Equal(t, 0, s.Games)
	assert.Equal(t, 0, s.Points)
	assert.True(t, s.PointsPerGame.IsZero())
	assert.True(t, s.FieldGoalPct.IsZero())
}
