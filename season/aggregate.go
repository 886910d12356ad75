/*
aggregate.go - Season totals and averages

PURPOSE:
  Field-wise summation over a filtered record sequence, plus the
  derived season summary (points, per-game averages, shooting splits).

CORRECTNESS:
  Aggregate uses exact integer accumulation, so it is commutative and
  associative: aggregate(A ++ B) == add(aggregate(A), aggregate(B)) for
  any split of the records. Averages and percentages are derived from
  the totals on read, per the stats package zero-denominator rule.
*/
package season

import (
	"github.com/shopspring/decimal"

	"github.com/courtside/stat-engine/stats"
)

// Aggregate returns the field-wise sum of the records' counters.
func Aggregate(records []GameRecord) stats.Counts {
	var total stats.Counts
	for _, r := range records {
		total = stats.Add(total, r.Counts)
	}
	return total
}

// Summary is a season roll-up for one player within one scope.
// All derived values are computed from Totals, never stored.
type Summary struct {
	Games           int
	Totals          stats.Counts
	Points          int
	PointsPerGame   decimal.Decimal
	FieldGoalPct    decimal.Decimal
	ThreePointPct   decimal.Decimal
	FreeThrowPct    decimal.Decimal
	ReboundsPerGame decimal.Decimal
}

// Summarize rolls up a record sequence into a season summary.
func Summarize(records []GameRecord) Summary {
	totals := Aggregate(records)
	n := len(records)
	points := stats.Points(totals)
	return Summary{
		Games:           n,
		Totals:          totals,
		Points:          points,
		PointsPerGame:   stats.Average(points, n),
		FieldGoalPct:    stats.FieldGoalPct(totals),
		ThreePointPct:   stats.ThreePointPct(totals),
		FreeThrowPct:    stats.FreeThrowPct(totals),
		ReboundsPerGame: stats.Average(stats.Rebounds(totals), n),
	}
}
