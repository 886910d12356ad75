/*
redemption.go - Idempotent purchase application

PURPOSE:
  Applies an external purchase result (plan token + externally-issued
  transaction id) to the entitlement State, exactly once per
  transaction id.

WHY IDEMPOTENT?
  The purchase flow is a resumption point, not a request/response: the
  coach navigates away to checkout and comes back, and the return page
  can be refreshed any number of times. Each refresh replays the same
  transaction id. The RedemptionSet makes every replay a no-op.

PLAN TRANSITIONS:
  free            --redeem credits-->   credits
  credits         --redeem credits-->   credits (balance increased)
  free | credits  --redeem unlimited--> unlimited-until-expiry
  unlimited       --redeem unlimited--> unlimited (expiry extended)

  There is no user-initiated downgrade; redemption is the only way a
  plan changes.
*/
package entitlement

import "time"

// Grant is the entitlement delta a recognized plan token confers.
// Exactly one of Credits / UnlimitedDays is non-zero.
type Grant struct {
	Credits       int
	UnlimitedDays int
}

// Catalog resolves purchased plan tokens into grants. Implemented by
// the factory package; an unknown token resolves to (zero, false).
type Catalog interface {
	Resolve(planToken string) (Grant, bool)
}

// Redeem applies a purchase to the entitlement ledger.
//
//   - txID already in set: inputs returned unchanged (idempotent no-op)
//   - token not in catalog: *UnrecognizedPlanError, no mutation
//   - credit grant:    plan becomes PlanCredits, balance += N
//   - unlimited grant: plan becomes PlanUnlimited until now + N days;
//     an already-later expiry is kept (re-buying never shortens it)
//
// Inputs are never mutated; updated copies are returned.
func Redeem(set RedemptionSet, s State, txID, planToken string, cat Catalog, now time.Time) (RedemptionSet, State, error) {
	if set.Contains(txID) {
		return set, s, nil
	}

	grant, ok := cat.Resolve(planToken)
	if !ok {
		return set, s, &UnrecognizedPlanError{PlanToken: planToken, TransactionID: txID}
	}

	switch {
	case grant.Credits > 0:
		s.CreditsRemaining += grant.Credits
		if !unlimitedActive(s, now) {
			s.Plan = PlanCredits
			s.UnlimitedUntil = nil
		}
	case grant.UnlimitedDays > 0:
		until := now.AddDate(0, 0, grant.UnlimitedDays)
		if s.Plan == PlanUnlimited && s.UnlimitedUntil != nil && s.UnlimitedUntil.After(until) {
			until = *s.UnlimitedUntil
		}
		s.Plan = PlanUnlimited
		s.UnlimitedUntil = &until
		// CreditsRemaining is left as-is. It is not meaningful under
		// the unlimited plan, but a paid balance is never erased.
	default:
		// A cataloged token with an empty grant is still a contract
		// violation; treat it the same as an unknown token.
		return set, s, &UnrecognizedPlanError{PlanToken: planToken, TransactionID: txID}
	}

	s.UpdatedAt = now
	return set.with(txID), s, nil
}

// unlimitedActive reports whether s is on a still-valid unlimited plan.
// Buying a credit while unlimited is active only banks the credit; it
// never downgrades the plan.
func unlimitedActive(s State, now time.Time) bool {
	return s.Plan == PlanUnlimited && s.UnlimitedUntil != nil && now.Before(*s.UnlimitedUntil)
}
