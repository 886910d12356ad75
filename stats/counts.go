/*
Package stats provides the live box-score counter engine.

PURPOSE:
  This package contains the core counter state for a single game in
  progress: a fixed-schema record of non-negative integer counters
  (Counts), the pure mutation function over it (Apply), derived
  shooting metrics, and the reversible history log that backs undo.

KEY CONCEPTS IN THIS FILE (counts.go):
  - StatKey: The closed set of trackable statistics
  - Counts:  One value per StatKey, always >= 0
  - Apply:   The ONLY way Counts change; clamps at zero, never fails

DESIGN PRINCIPLES:
  1. Purity: Apply returns a new Counts, inputs are never mutated
  2. Totality: No operation on Counts can fail or panic
  3. Closed schema: Unknown keys are rejected at the boundary, not here
  4. Derived values are computed on read, never stored (see derived.go)

CLAMPING:
  Decrementing a counter below zero clamps to zero. This is defined
  behavior, not an error: a coach who taps "-" one time too many should
  see 0, not a crash and not -1.

SEE ALSO:
  - derived.go: Points, shooting percentages, rebounds
  - history.go: Reversible edit log for undo
*/
package stats

// =============================================================================
// STAT KEYS - Closed set of trackable statistics
// =============================================================================

// StatKey identifies one counter in the box score.
type StatKey string

const (
	TwoPointMade      StatKey = "twoPointMade"
	TwoPointMissed    StatKey = "twoPointMissed"
	ThreePointMade    StatKey = "threePointMade"
	ThreePointMissed  StatKey = "threePointMissed"
	FreeThrowMade     StatKey = "freeThrowMade"
	FreeThrowMissed   StatKey = "freeThrowMissed"
	OffensiveRebound  StatKey = "offensiveRebound"
	DefensiveRebound  StatKey = "defensiveRebound"
	Assist            StatKey = "assist"
	Turnover          StatKey = "turnover"
	Steal             StatKey = "steal"
	Foul              StatKey = "foul"
)

// AllKeys lists every StatKey in display order.
var AllKeys = []StatKey{
	TwoPointMade, TwoPointMissed,
	ThreePointMade, ThreePointMissed,
	FreeThrowMade, FreeThrowMissed,
	OffensiveRebound, DefensiveRebound,
	Assist, Turnover, Steal, Foul,
}

// ValidKey reports whether k is part of the closed stat schema.
func ValidKey(k StatKey) bool {
	switch k {
	case TwoPointMade, TwoPointMissed, ThreePointMade, ThreePointMissed,
		FreeThrowMade, FreeThrowMissed, OffensiveRebound, DefensiveRebound,
		Assist, Turnover, Steal, Foul:
		return true
	}
	return false
}

// =============================================================================
// COUNTS - Fixed-schema counter record
// =============================================================================

// Counts holds one non-negative integer per StatKey.
//
// INVARIANT: every field is >= 0 at all times. Apply is the only
// mutation path and it clamps at zero.
type Counts struct {
	TwoPointMade     int `json:"twoPointMade"`
	TwoPointMissed   int `json:"twoPointMissed"`
	ThreePointMade   int `json:"threePointMade"`
	ThreePointMissed int `json:"threePointMissed"`
	FreeThrowMade    int `json:"freeThrowMade"`
	FreeThrowMissed  int `json:"freeThrowMissed"`
	OffensiveRebound int `json:"offensiveRebound"`
	DefensiveRebound int `json:"defensiveRebound"`
	Assist           int `json:"assist"`
	Turnover         int `json:"turnover"`
	Steal            int `json:"steal"`
	Foul             int `json:"foul"`
}

// field returns a pointer to the counter for k, or nil for unknown keys.
func (c *Counts) field(k StatKey) *int {
	switch k {
	case TwoPointMade:
		return &c.TwoPointMade
	case TwoPointMissed:
		return &c.TwoPointMissed
	case ThreePointMade:
		return &c.ThreePointMade
	case ThreePointMissed:
		return &c.ThreePointMissed
	case FreeThrowMade:
		return &c.FreeThrowMade
	case FreeThrowMissed:
		return &c.FreeThrowMissed
	case OffensiveRebound:
		return &c.OffensiveRebound
	case DefensiveRebound:
		return &c.DefensiveRebound
	case Assist:
		return &c.Assist
	case Turnover:
		return &c.Turnover
	case Steal:
		return &c.Steal
	case Foul:
		return &c.Foul
	}
	return nil
}

// Get returns the counter value for k (0 for unknown keys).
func (c Counts) Get(k StatKey) int {
	if p := c.field(k); p != nil {
		return *p
	}
	return 0
}

// Apply returns a copy of c with delta added to the counter for k,
// clamped at zero. Pure and total: unknown keys and underflow are
// defined as no-op and clamp respectively, never an error.
func Apply(c Counts, k StatKey, delta int) Counts {
	p := c.field(k)
	if p == nil {
		return c
	}
	v := *p + delta
	if v < 0 {
		v = 0
	}
	*p = v
	return c
}

// Add returns the field-wise sum of a and b.
// Commutative and associative; exact integer arithmetic.
func Add(a, b Counts) Counts {
	for _, k := range AllKeys {
		*a.field(k) += b.Get(k)
	}
	return a
}

// IsZero reports whether every counter is zero.
func (c Counts) IsZero() bool {
	return c == Counts{}
}
