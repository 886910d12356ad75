/*
errors.go - Entitlement error types

ERROR CATEGORIES:
  1. UnrecognizedPlanError - the payment gateway returned a plan token
     this build does not know. This must be SURFACED, never swallowed:
     silently ignoring it would lose a paid purchase.
  2. ErrFinalizeNotAllowed - the gate said no. Not a bug, just the
     paywall doing its job; callers map it to a purchase prompt.

Clamped counter arithmetic is NOT an error anywhere in this system;
see the stats package.
*/
package entitlement

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedPlan is the sentinel for plan-token contract
	// violations between the gateway and this build.
	ErrUnrecognizedPlan = errors.New("unrecognized plan token")

	// ErrFinalizeNotAllowed is returned by orchestration when
	// MayFinalize is false for the current state.
	ErrFinalizeNotAllowed = errors.New("finalize not allowed by entitlement")
)

// UnrecognizedPlanError carries the offending token and transaction so
// the purchase can be reconciled manually instead of lost.
type UnrecognizedPlanError struct {
	PlanToken     string
	TransactionID string
}

func (e *UnrecognizedPlanError) Error() string {
	return fmt.Sprintf("unrecognized plan token %q for transaction %s", e.PlanToken, e.TransactionID)
}

func (e *UnrecognizedPlanError) Unwrap() error {
	return ErrUnrecognizedPlan
}
