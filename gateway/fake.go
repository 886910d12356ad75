package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// FAKE GATEWAY - In-memory implementation (for testing/offline dev)
// =============================================================================

// Fake is an in-memory Gateway. Checkouts are created instantly;
// CompletePayment marks one paid, standing in for the coach finishing
// the external checkout page.
type Fake struct {
	mu       sync.Mutex
	sessions map[string]fakeSession

	// FailNext forces the next call to return a GatewayError.
	FailNext bool
}

type fakeSession struct {
	plan string
	paid bool
}

func NewFake() *Fake {
	return &Fake{sessions: make(map[string]fakeSession)}
}

func (f *Fake) CreateCheckout(_ context.Context, planToken string) (CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailNext {
		f.FailNext = false
		return CheckoutSession{}, &GatewayError{Op: "create_checkout", Status: 503}
	}

	id := "cs_" + uuid.NewString()
	f.sessions[id] = fakeSession{plan: planToken}
	return CheckoutSession{TransactionID: id, URL: "https://pay.example.test/c/" + id}, nil
}

func (f *Fake) VerifyTransaction(_ context.Context, transactionID string) (Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailNext {
		f.FailNext = false
		return Verification{}, &GatewayError{Op: "verify_transaction", Status: 503}
	}

	s, ok := f.sessions[transactionID]
	if !ok {
		return Verification{}, &GatewayError{Op: "verify_transaction", Status: 404}
	}
	return Verification{Paid: s.paid, PlanToken: s.plan}, nil
}

// CompletePayment marks a session paid. Test/dev hook.
func (f *Fake) CompletePayment(transactionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.sessions[transactionID]; ok {
		s.paid = true
		f.sessions[transactionID] = s
	}
}
