/*
gate.go - The finalize gate

PURPOSE:
  The single decision point for whether a game may be finalized, and
  the single consume mutation that charges for a successful finalize.

THE CORE CONTRACT:
  ConsumeOnFinalize must be called AT MOST ONCE per successful finalize,
  and only after MayFinalize returned true for the same logical attempt.
  In this single-writer model no other finalize can interleave, so a
  sequential check-then-consume suffices, but the two steps must never
  be reordered or skipped.

SINGLE CHARGE:
  Exactly one plan arm is charged per consume. A metered finalize
  decrements credits and does NOT also touch the free usage counter.

EXPIRY:
  An expired unlimited plan fails the gate but keeps its plan tag.
  There is no automatic downgrade; the user is blocked pending a new
  purchase (see redemption.go).
*/
package entitlement

import "time"

// MayFinalize reports whether one more game may be finalized under s.
//
//   - unlimited: true while now is before UnlimitedUntil
//   - credits:   true while CreditsRemaining > 0
//   - free:      true while FreeUsageCount < TrialLimit
func MayFinalize(s State, now time.Time) bool {
	switch s.Plan {
	case PlanUnlimited:
		return s.UnlimitedUntil != nil && now.Before(*s.UnlimitedUntil)
	case PlanCredits:
		return s.CreditsRemaining > 0
	case PlanFree:
		return s.FreeUsageCount < TrialLimit
	}
	return false
}

// ConsumeOnFinalize charges one unit of entitlement for a successful
// finalize. Call only after MayFinalize returned true for the same
// attempt. Exactly one plan arm is charged:
//
//   - unlimited: no-op
//   - credits:   CreditsRemaining-- (floored at 0)
//   - free:      FreeUsageCount++
func ConsumeOnFinalize(s State, now time.Time) State {
	switch s.Plan {
	case PlanUnlimited:
		// Nothing consumed.
	case PlanCredits:
		if s.CreditsRemaining > 0 {
			s.CreditsRemaining--
		}
	case PlanFree:
		s.FreeUsageCount++
	}
	s.UpdatedAt = now
	return s
}
