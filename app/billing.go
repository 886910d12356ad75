/*
billing.go - Checkout hand-off and the redemption resumption point

PURPOSE:
  Purchases leave the app entirely: BeginCheckout returns a redirect
  URL and the coach navigates away. Coming back is a RESUMPTION POINT,
  not a response handler: the return page hands us a transaction id,
  we verify it against the gateway exactly once per page load, and feed
  the result into entitlement.Redeem - which is idempotent, so a page
  refresh that replays the same transaction id changes nothing.

ABANDONMENT:
  If the coach never returns, ResumeRedemption is simply never called.
  No tentative state was written, so there is nothing to roll back.
*/
package app

import (
	"context"
	"time"

	"github.com/courtside/stat-engine/entitlement"
	"github.com/courtside/stat-engine/gateway"
	"github.com/courtside/stat-engine/store"
)

// BillingView is the entitlement state plus the derived gate answer.
type BillingView struct {
	State         entitlement.State
	MayFinalize   bool
	FreeGamesLeft int
}

// Billing returns the current entitlement state for display.
func (a *App) Billing() BillingView {
	a.mu.Lock()
	defer a.mu.Unlock()

	return BillingView{
		State:         a.ent,
		MayFinalize:   entitlement.MayFinalize(a.ent, a.now()),
		FreeGamesLeft: a.ent.FreeGamesLeft(),
	}
}

// BeginCheckout creates a checkout session for a plan token and
// returns the redirect target. The token is validated against the
// catalog first so an unknown product never reaches the gateway.
func (a *App) BeginCheckout(ctx context.Context, planToken string) (gateway.CheckoutSession, error) {
	if _, ok := a.catalog.Resolve(planToken); !ok {
		return gateway.CheckoutSession{}, &entitlement.UnrecognizedPlanError{PlanToken: planToken}
	}
	// Gateway round trip happens outside the state mutex; nothing
	// local mutates on checkout creation.
	return a.gw.CreateCheckout(ctx, planToken)
}

// ResumeRedemption is called when the coach returns from checkout with
// a transaction id. It verifies the transaction once and applies the
// purchase idempotently.
//
// Failure modes: *ValidationError for a missing id, GatewayError when
// verification is unreachable (retry by reloading), ErrNotRedeemable
// while the transaction is unpaid, UnrecognizedPlanError for an
// unknown plan token. None of them mutate entitlement state.
func (a *App) ResumeRedemption(ctx context.Context, transactionID string) (entitlement.State, error) {
	if transactionID == "" {
		return entitlement.State{}, &ValidationError{Field: "transactionId", Message: "transaction id is required"}
	}

	// Already applied? Skip the gateway round trip entirely; a refresh
	// of the return page must not depend on the gateway being up.
	a.mu.Lock()
	if a.redemptions.Contains(transactionID) {
		s := a.ent
		a.mu.Unlock()
		return s, nil
	}
	a.mu.Unlock()

	v, err := a.gw.VerifyTransaction(ctx, transactionID)
	if err != nil {
		return entitlement.State{}, err
	}
	if !v.Paid {
		return entitlement.State{}, ErrNotRedeemable
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	set, ent, err := entitlement.Redeem(a.redemptions, a.ent, transactionID, v.PlanToken, a.catalog, a.now())
	if err != nil {
		return entitlement.State{}, err
	}
	a.redemptions = set
	a.ent = ent

	if err := a.store.Set(ctx, store.KeyRedemptions, a.redemptions); err != nil {
		return a.ent, err
	}
	return a.ent, a.store.Set(ctx, store.KeyEntitlement, a.ent)
}

// UnlimitedDaysLeft returns whole days until the unlimited plan
// expires, zero for other plans. Display helper.
func (a *App) UnlimitedDaysLeft() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ent.Plan != entitlement.PlanUnlimited || a.ent.UnlimitedUntil == nil {
		return 0
	}
	left := int(a.ent.UnlimitedUntil.Sub(a.now()) / (24 * time.Hour))
	if left < 0 {
		return 0
	}
	return left
}
