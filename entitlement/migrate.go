/*
migrate.go - Legacy persisted shape translation

PURPOSE:
  Earlier builds of the app persisted the entitlement state in several
  ad hoc shapes: different plan strings ("premium", "pro", "trial"),
  different field names for the credit balance, and a separate legacy
  free-games counter. This file translates ANY persisted shape into the
  current closed State at load time, so ambiguous legacy shapes never
  reach business logic.

RULES:
  - Unknown plan strings with a positive credit balance -> PlanCredits
  - Known paid-tier aliases with an expiry                -> PlanUnlimited
  - Anything unreadable degrades to the first-run default, never an
    error: a malformed stored blob must not crash the app.
  - The plan tag of an EXPIRED unlimited state is kept; expiry only
    changes the gate decision, not the stored plan.
*/
package entitlement

import (
	"encoding/json"
	"time"
)

// legacyShape is the union of every persisted entitlement layout we
// have shipped. Field names that meant the same thing across revisions
// are folded together after decoding.
type legacyShape struct {
	Plan             string     `json:"plan"`
	CreditsRemaining *int       `json:"creditsRemaining"`
	Credits          *int       `json:"credits"`       // pre-v3 name
	GamesRemaining   *int       `json:"gamesRemaining"` // pre-v2 name
	FreeUsageCount   *int       `json:"freeUsageCount"`
	FreeGamesUsed    *int       `json:"freeGamesUsed"` // pre-v2 name
	UnlimitedUntil   *time.Time `json:"unlimitedUntil"`
	ExpiresAt        *time.Time `json:"expiresAt"` // pre-v3 name
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// planAliases maps every plan string any revision ever wrote to the
// current closed set.
var planAliases = map[string]Plan{
	"free":      PlanFree,
	"trial":     PlanFree,
	"basic":     PlanFree,
	"credits":   PlanCredits,
	"metered":   PlanCredits,
	"pack":      PlanCredits,
	"unlimited": PlanUnlimited,
	"premium":   PlanUnlimited,
	"pro":       PlanUnlimited,
	"season":    PlanUnlimited,
}

// Migrate translates a persisted entitlement blob into the current
// State. It is total: unreadable input yields the first-run default.
func Migrate(raw json.RawMessage) State {
	if len(raw) == 0 {
		return Initial()
	}

	var legacy legacyShape
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return Initial()
	}

	s := Initial()
	s.UpdatedAt = legacy.UpdatedAt
	s.CreditsRemaining = firstInt(legacy.CreditsRemaining, legacy.Credits, legacy.GamesRemaining)
	s.FreeUsageCount = firstInt(legacy.FreeUsageCount, legacy.FreeGamesUsed)
	if s.CreditsRemaining < 0 {
		s.CreditsRemaining = 0
	}
	if s.FreeUsageCount < 0 {
		s.FreeUsageCount = 0
	}

	until := legacy.UnlimitedUntil
	if until == nil {
		until = legacy.ExpiresAt
	}

	plan, known := planAliases[legacy.Plan]
	switch {
	case known && plan == PlanUnlimited && until != nil:
		s.Plan = PlanUnlimited
		s.UnlimitedUntil = until
	case known && plan == PlanUnlimited:
		// A paid-tier tag without any expiry was only ever written by
		// the credit-pack revision; fall through to credits if there
		// is a balance, else back to free.
		if s.CreditsRemaining > 0 {
			s.Plan = PlanCredits
		}
	case known:
		s.Plan = plan
	case s.CreditsRemaining > 0:
		// Unknown tag but a positive balance: honor the balance.
		s.Plan = PlanCredits
	default:
		s.Plan = PlanFree
	}

	return s
}

func firstInt(candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}
