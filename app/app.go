/*
Package app is the orchestration layer of the stat engine.

PURPOSE:
  The ledger packages (stats, season, entitlement) are pure functions
  over explicit state. This package owns the single live instance of
  that state, runs each operation as check -> mutate -> write-through,
  and is the only place mutation order is decided.

OWNERSHIP:
  One App per device. All mutations are synchronous and run to
  completion under one mutex before the next UI event is processed;
  there is no background work and no concurrent finalize.

WRITE-THROUGH:
  Every state transition is followed by a Store write so that a reload
  reconstructs the exact last in-memory state. Storage is last-write-
  wins; a failed write is reported but never rolls back memory, because
  losing an already-finalized game is the one unacceptable outcome.

FIRST RUN:
  Absent keys initialize to documented defaults, malformed blobs
  degrade to the same defaults, and legacy entitlement shapes are
  migrated before any business logic sees them. A default team scope is
  materialized if none exists.
*/
package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/courtside/stat-engine/entitlement"
	"github.com/courtside/stat-engine/factory"
	"github.com/courtside/stat-engine/gateway"
	"github.com/courtside/stat-engine/season"
	"github.com/courtside/stat-engine/stats"
	"github.com/courtside/stat-engine/store"
)

// Draft is the in-progress game: metadata plus live counts. The undo
// history is NOT part of the draft; it belongs to the live session
// only and never survives a reload or a finalize.
type Draft struct {
	Player   string       `json:"player"`
	Opponent string       `json:"opponent"`
	GameDate string       `json:"gameDate"`
	Note     string       `json:"note,omitempty"`
	ScopeID  string       `json:"scopeId"`
	Counts   stats.Counts `json:"counts"`
}

// Options configures New.
type Options struct {
	Store   store.Store
	Gateway gateway.Gateway
	Catalog *factory.Catalog
	Now     func() time.Time // defaults to time.Now
}

// App owns the live state and coordinates every operation.
type App struct {
	mu      sync.Mutex
	store   store.Store
	gw      gateway.Gateway
	catalog *factory.Catalog
	now     func() time.Time

	draft       Draft
	history     stats.History
	games       *season.Log
	scopes      []season.TeamScope
	ent         entitlement.State
	redemptions entitlement.RedemptionSet
}

// New loads (or initializes) all persisted state and returns a ready
// App. Load never fails on bad data: absent or malformed blobs degrade
// to first-run defaults.
func New(ctx context.Context, opts Options) (*App, error) {
	a := &App{
		store:   opts.Store,
		gw:      opts.Gateway,
		catalog: opts.Catalog,
		now:     opts.Now,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.catalog == nil {
		a.catalog = factory.Default()
	}

	a.loadDraft(ctx)
	a.loadGames(ctx)
	a.loadRedemptions(ctx)
	a.ent = entitlement.Migrate(a.rawKey(ctx, store.KeyEntitlement))

	if err := a.loadScopes(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// rawKey returns the stored blob for key, or nil when absent.
func (a *App) rawKey(ctx context.Context, key string) json.RawMessage {
	raw, err := a.store.Get(ctx, key)
	if err != nil {
		return nil
	}
	return raw
}

func (a *App) loadDraft(ctx context.Context) {
	raw := a.rawKey(ctx, store.KeyDraft)
	if raw == nil {
		return
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return // malformed draft degrades to a blank game
	}
	a.draft = d
}

func (a *App) loadGames(ctx context.Context) {
	var records []season.GameRecord
	if raw := a.rawKey(ctx, store.KeyGames); raw != nil {
		_ = json.Unmarshal(raw, &records) // malformed -> empty
	}
	a.games = season.NewLog(records)
}

func (a *App) loadRedemptions(ctx context.Context) {
	a.redemptions = entitlement.RedemptionSet{}
	if raw := a.rawKey(ctx, store.KeyRedemptions); raw != nil {
		_ = json.Unmarshal(raw, &a.redemptions)
	}
	if a.redemptions == nil {
		a.redemptions = entitlement.RedemptionSet{}
	}
}

// loadScopes restores the team scopes, materializing the default scope
// on first run. At least one scope exists at all times.
func (a *App) loadScopes(ctx context.Context) error {
	if raw := a.rawKey(ctx, store.KeyScopes); raw != nil {
		_ = json.Unmarshal(raw, &a.scopes)
	}
	if len(a.scopes) == 0 {
		a.scopes = []season.TeamScope{season.NewTeamScope(season.DefaultScopeName, a.now())}
		if err := a.store.Set(ctx, store.KeyScopes, a.scopes); err != nil {
			return err
		}
	}
	if a.draft.ScopeID == "" || !a.scopeExists(a.draft.ScopeID) {
		a.draft.ScopeID = a.scopes[0].ID
	}
	return nil
}

func (a *App) scopeExists(id string) bool {
	for _, s := range a.scopes {
		if s.ID == id {
			return true
		}
	}
	return false
}

// persistDraft writes through the current draft.
func (a *App) persistDraft(ctx context.Context) error {
	return a.store.Set(ctx, store.KeyDraft, a.draft)
}

// Scopes returns the team scopes.
func (a *App) Scopes() []season.TeamScope {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]season.TeamScope, len(a.scopes))
	copy(out, a.scopes)
	return out
}

// AddScope creates a new team scope.
func (a *App) AddScope(ctx context.Context, name string) (season.TeamScope, error) {
	if name == "" {
		return season.TeamScope{}, &ValidationError{Field: "name", Message: "scope name is required"}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	scope := season.NewTeamScope(name, a.now())
	a.scopes = append(a.scopes, scope)
	return scope, a.store.Set(ctx, store.KeyScopes, a.scopes)
}

// Plans returns the purchasable plan catalog for display.
func (a *App) Plans() []factory.PlanSpec {
	return a.catalog.Specs()
}

// errors re-exported checks used by the API layer.

// IsClientError reports whether err was caused by invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, entitlement.ErrUnrecognizedPlan) ||
		errors.Is(err, ErrGameNotFound)
}
