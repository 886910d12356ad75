/*
derived.go - Derived box-score metrics

PURPOSE:
  Points, shooting splits, and percentages are pure functions of Counts.
  They are recomputed on every read and never stored, so the stored
  record can never drift from its derived presentation.

DIVISION BY ZERO:
  A player can legitimately have zero attempts. Every percentage and
  average in this file is defined as zero when its denominator is zero.

PRECISION:
  Percentages and per-game averages use decimal.Decimal rather than
  float64 so that display values round predictably (one decimal place).
  The stored counters themselves stay exact integers.
*/
package stats

import "github.com/shopspring/decimal"

// Points returns the total score: 2s, 3s, and free throws.
func Points(c Counts) int {
	return 2*c.TwoPointMade + 3*c.ThreePointMade + c.FreeThrowMade
}

// Field goals cover both two- and three-point shots.
// Attempts are derived from made+missed; there is no separate attempt counter.

func FieldGoalsMade(c Counts) int {
	return c.TwoPointMade + c.ThreePointMade
}

func FieldGoalsAttempted(c Counts) int {
	return c.TwoPointMade + c.TwoPointMissed + c.ThreePointMade + c.ThreePointMissed
}

func ThreePointAttempted(c Counts) int {
	return c.ThreePointMade + c.ThreePointMissed
}

func FreeThrowsAttempted(c Counts) int {
	return c.FreeThrowMade + c.FreeThrowMissed
}

// Rebounds returns offensive plus defensive rebounds.
func Rebounds(c Counts) int {
	return c.OffensiveRebound + c.DefensiveRebound
}

// FieldGoalPct returns made/attempted as a percentage rounded to one
// decimal place. Zero attempts yields zero.
func FieldGoalPct(c Counts) decimal.Decimal {
	return Pct(FieldGoalsMade(c), FieldGoalsAttempted(c))
}

func ThreePointPct(c Counts) decimal.Decimal {
	return Pct(c.ThreePointMade, ThreePointAttempted(c))
}

func FreeThrowPct(c Counts) decimal.Decimal {
	return Pct(c.FreeThrowMade, FreeThrowsAttempted(c))
}

// Pct computes made/attempted*100 rounded to one decimal place.
// Defined as zero when attempted is zero.
func Pct(made, attempted int) decimal.Decimal {
	if attempted <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(made)).
		Div(decimal.NewFromInt(int64(attempted))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}

// Average computes total/n rounded to one decimal place.
// Defined as zero when n is zero. Used for per-game season averages.
func Average(total, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(n))).
		Round(1)
}

// FormatPct renders a percentage for display, e.g. "66.7%".
func FormatPct(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
