/*
Package entitlement provides the local paywall ledger.

PURPOSE:
  Tracks what the coach is entitled to: a small free trial, consumable
  game credits, or an unlimited plan with an expiry. Exposes exactly one
  gate decision (MayFinalize) and one consume mutation
  (ConsumeOnFinalize), plus idempotent purchase redemption.

KEY CONCEPTS IN THIS FILE (types.go):
  - Plan:  Closed tagged variant {free, credits, unlimited}
  - State: The full entitlement ledger state
  - RedemptionSet: Transaction ids already applied (grow-only)

DESIGN PRINCIPLES:
  1. Explicit state: every operation takes State in and returns State
     out. No package-level mutable state; the app layer owns the single
     live instance and persists it after each transition.
  2. Closed plan set: legacy persisted shapes are translated at load
     time (migrate.go) and never reach business logic.
  3. Single charge: one successful finalize consumes exactly one unit
     of entitlement, on exactly one plan arm.

SEE ALSO:
  - gate.go:       MayFinalize / ConsumeOnFinalize
  - redemption.go: Idempotent purchase application
  - migrate.go:    Legacy persisted shape translation
*/
package entitlement

import "time"

// =============================================================================
// PLAN - Closed tagged variant
// =============================================================================

// Plan identifies the active entitlement plan. Exactly one is active
// at a time.
type Plan string

const (
	// PlanFree is the trial plan: up to TrialLimit finalized games.
	PlanFree Plan = "free"
	// PlanCredits meters finalizes against CreditsRemaining.
	PlanCredits Plan = "credits"
	// PlanUnlimited allows finalizes until UnlimitedUntil passes.
	PlanUnlimited Plan = "unlimited"
)

// TrialLimit is the number of games that may be finalized on the free
// plan before a purchase is required.
const TrialLimit = 2

// ValidPlan reports whether p is part of the closed plan set.
func ValidPlan(p Plan) bool {
	return p == PlanFree || p == PlanCredits || p == PlanUnlimited
}

// =============================================================================
// STATE - The entitlement ledger
// =============================================================================

// State is the entitlement ledger.
//
// INVARIANTS:
//   - CreditsRemaining >= 0, meaningful only under PlanCredits
//   - FreeUsageCount >= 0
//   - UnlimitedUntil set only under PlanUnlimited
type State struct {
	Plan             Plan       `json:"plan"`
	CreditsRemaining int        `json:"creditsRemaining"`
	FreeUsageCount   int        `json:"freeUsageCount"`
	UnlimitedUntil   *time.Time `json:"unlimitedUntil,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Initial returns the first-run state: free plan, nothing used.
func Initial() State {
	return State{Plan: PlanFree}
}

// FreeGamesLeft returns how many trial finalizes remain (free plan only).
func (s State) FreeGamesLeft() int {
	left := TrialLimit - s.FreeUsageCount
	if left < 0 {
		return 0
	}
	return left
}

// =============================================================================
// REDEMPTION SET - Applied transaction ids
// =============================================================================

// RedemptionSet records externally-issued transaction ids that were
// already applied to the State. Grows monotonically, never shrinks;
// this is what makes redemption safe to replay on a page refresh.
type RedemptionSet map[string]bool

// Contains reports whether txID was already applied.
func (r RedemptionSet) Contains(txID string) bool { return r[txID] }

// with returns a copy of r including txID. The receiver is unchanged.
func (r RedemptionSet) with(txID string) RedemptionSet {
	out := make(RedemptionSet, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[txID] = true
	return out
}
