package stats_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/courtside/stat-engine/stats"
)

// =============================================================================
// APPLY - Clamping and purity
// =============================================================================

func TestApply_IncrementAndDecrement(t *testing.T) {
	c := stats.Counts{}
	c = stats.Apply(c, stats.Assist, 1)
	c = stats.Apply(c, stats.Assist, 1)
	c = stats.Apply(c, stats.Assist, -1)

	assert.Equal(t, 1, c.Assist)
}

func TestApply_DecrementBelowZero_ClampsToZero(t *testing.T) {
	// GIVEN: turnover counter at 0
	// WHEN: decrementing by 1
	// THEN: value is 0, not -1, and no error occurs

	c := stats.Counts{}
	c = stats.Apply(c, stats.Turnover, -1)

	assert.Equal(t, 0, c.Turnover)
}

func TestApply_UnknownKey_NoOp(t *testing.T) {
	c := stats.Counts{Assist: 3}
	got := stats.Apply(c, stats.StatKey("dunks"), 5)

	assert.Equal(t, c, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	c := stats.Counts{Steal: 2}
	_ = stats.Apply(c, stats.Steal, 4)

	assert.Equal(t, 2, c.Steal)
}

func TestApply_NonNegativity_UnderMixedSequence(t *testing.T) {
	// GIVEN: an arbitrary mixed sequence of increments and decrements
	// THEN: every counter stays >= 0 at every step

	c := stats.Counts{}
	deltas := []int{1, -3, 2, -1, -5, 4, -2, 1, -1, -1}
	for _, d := range deltas {
		for _, k := range stats.AllKeys {
			c = stats.Apply(c, k, d)
			assert.GreaterOrEqual(t, c.Get(k), 0, "key %s after delta %d", k, d)
		}
	}
}

// =============================================================================
// DERIVED METRICS
// =============================================================================

func TestDerived_MadeShotsOnly(t *testing.T) {
	// GIVEN: two made 2-pointers and one made 3-pointer
	// THEN: points = 7, FG 3/3, FG% = 100.0%

	c := stats.Counts{}
	c = stats.Apply(c, stats.TwoPointMade, 1)
	c = stats.Apply(c, stats.TwoPointMade, 1)
	c = stats.Apply(c, stats.ThreePointMade, 1)

	assert.Equal(t, 7, stats.Points(c))
	assert.Equal(t, 3, stats.FieldGoalsMade(c))
	assert.Equal(t, 3, stats.FieldGoalsAttempted(c))
	assert.Equal(t, "100.0%", stats.FormatPct(stats.FieldGoalPct(c)))
}

func TestDerived_ZeroAttempts_PctIsZero(t *testing.T) {
	c := stats.Counts{}

	assert.True(t, stats.FieldGoalPct(c).IsZero())
	assert.True(t, stats.ThreePointPct(c).IsZero())
	assert.True(t, stats.FreeThrowPct(c).IsZero())
	assert.Equal(t, "0.0%", stats.FormatPct(stats.FieldGoalPct(c)))
}

func TestDerived_PctRounding(t *testing.T) {
	// 2 of 3 = 66.666... -> 66.7%
	got := stats.Pct(2, 3)
	assert.True(t, got.Equal(decimal.RequireFromString("66.7")), "got %s", got)
}

func TestDerived_Rebounds(t *testing.T) {
	c := stats.Counts{OffensiveRebound: 2, DefensiveRebound: 5}
	assert.Equal(t, 7, stats.Rebounds(c))
}

func TestAverage_ZeroGames_IsZero(t *testing.T) {
	assert.True(t, stats.Average(12, 0).IsZero())
}

func TestAdd_FieldwiseSum(t *testing.T) {
	a := stats.Counts{TwoPointMade: 1, Assist: 2}
	b := stats.Counts{TwoPointMade: 3, Foul: 1}

	sum := stats.Add(a, b)

	assert.Equal(t, 4, sum.TwoPointMade)
	assert.Equal(t, 2, sum.Assist)
	assert.Equal(t, 1, sum.Foul)
	// Commutative
	assert.Equal(t, sum, stats.Add(b, a))
}
