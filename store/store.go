/*
Package store defines the on-device persistence interface.

PURPOSE:
  The engine treats persistence as an opaque JSON key-value store:
  Get a key, Set a key. Every ledger mutation is followed by a
  write-through so a reload reconstructs the exact last in-memory
  state. There is no transactional guarantee beyond last-write-wins,
  which is sufficient for a single-writer device.

KEYS:
  One key per ledger. Absent keys are NORMAL (first run) and every
  caller initializes defaults on ErrNotFound.

IMPLEMENTATIONS:
  - memory.go:        In-memory, for tests
  - sqlite/sqlite.go: On-device SQLite (WAL, migrate-on-open)
*/
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Keys for each persisted ledger.
const (
	KeyDraft       = "session.draft"
	KeyGames       = "season.games"
	KeyScopes      = "season.scopes"
	KeyEntitlement = "billing.entitlement"
	KeyRedemptions = "billing.redemptions"
)

// ErrNotFound is returned by Get for an absent key. Expected on first
// run; callers fall back to documented defaults.
var ErrNotFound = errors.New("key not found")

// Store persists JSON values by key.
type Store interface {
	// Get returns the raw JSON stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set marshals value and stores it under key, replacing any
	// previous value.
	Set(ctx context.Context, key string, value any) error
}
