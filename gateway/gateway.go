/*
Package gateway defines the Payment Gateway collaborator.

PURPOSE:
  The engine never talks to a payment provider directly. It asks the
  gateway for a checkout redirect URL and, after the coach returns from
  checkout, asks it to verify the transaction it was handed back. The
  verification result feeds purchase redemption, which is idempotent,
  so verifying is safe to repeat on every page refresh.

FAILURE MODEL:
  Every failure is a GatewayError:
  - CreateCheckout failure is surfaced to the user; no retry loop
  - VerifyTransaction failure means "not yet redeemable"; the user can
    retry simply by reloading the return page
  Neither failure mutates any entitlement state.

IMPLEMENTATIONS:
  - http.go: Client for a Stripe-style REST endpoint
  - fake.go: In-memory gateway for tests and offline development
*/
package gateway

import (
	"context"
	"errors"
	"fmt"
)

// CheckoutSession is a created checkout: the externally-issued
// transaction id and the URL to redirect the coach to.
type CheckoutSession struct {
	TransactionID string
	URL           string
}

// Verification is the gateway's answer about a transaction. An unpaid
// result is not an error; the coach may not have completed checkout.
type Verification struct {
	Paid      bool
	PlanToken string
}

// Gateway is the payment provider collaborator.
type Gateway interface {
	// CreateCheckout creates a checkout session for a plan token and
	// returns the redirect target.
	CreateCheckout(ctx context.Context, planToken string) (CheckoutSession, error)

	// VerifyTransaction reports whether a transaction was paid and
	// which plan token it purchased.
	VerifyTransaction(ctx context.Context, transactionID string) (Verification, error)
}

// ErrGateway is the sentinel for any gateway failure.
var ErrGateway = errors.New("payment gateway error")

// GatewayError wraps a transport or provider failure with the
// operation that hit it.
type GatewayError struct {
	Op     string // "create_checkout" or "verify_transaction"
	Status int    // HTTP status, 0 for transport errors
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return ErrGateway
}
