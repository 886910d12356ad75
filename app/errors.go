/*
errors.go - Orchestration-level error types

TAXONOMY (the only user-visible failures in the system):
  1. ValidationError      - bad local input (e.g. no player name on
                            finalize); blocks the attempt, mutates nothing
  2. gateway.GatewayError - checkout/verification failure; retryable,
                            mutates nothing
  3. entitlement.UnrecognizedPlanError - plan-token contract violation;
                            surfaced loudly so a paid purchase is not lost
  4. entitlement.ErrFinalizeNotAllowed - the paywall said no

Everything else in the engine is total: clamped, defaulted, or a no-op.
*/
package app

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the sentinel for bad local input.
	ErrValidation = errors.New("validation failed")

	// ErrGameNotFound is returned when an operation references a game
	// record that does not exist (share, for instance; delete is a
	// deliberate no-op instead).
	ErrGameNotFound = errors.New("game not found")

	// ErrNotRedeemable is returned when a transaction verifies as
	// unpaid. The coach can retry by reloading the return page once
	// checkout completes.
	ErrNotRedeemable = errors.New("transaction not redeemable yet")
)

// ValidationError reports which field blocked the operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
