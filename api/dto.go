/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

Derived values (points, percentages, averages) are rendered here from
the stored integer counters on every response; they are never stored.
*/
package api

import (
	"time"

	"github.com/courtside/stat-engine/app"
	"github.com/courtside/stat-engine/entitlement"
	"github.com/courtside/stat-engine/season"
	"github.com/courtside/stat-engine/stats"
)

// =============================================================================
// SESSION
// =============================================================================

// DerivedDTO carries the computed metrics shown next to the counters.
type DerivedDTO struct {
	Points              int    `json:"points"`
	FieldGoalsMade      int    `json:"fieldGoalsMade"`
	FieldGoalsAttempted int    `json:"fieldGoalsAttempted"`
	FieldGoalPct        string `json:"fieldGoalPct"`
	ThreePointPct       string `json:"threePointPct"`
	FreeThrowPct        string `json:"freeThrowPct"`
	Rebounds            int    `json:"rebounds"`
}

func derivedDTO(c stats.Counts) DerivedDTO {
	return DerivedDTO{
		Points:              stats.Points(c),
		FieldGoalsMade:      stats.FieldGoalsMade(c),
		FieldGoalsAttempted: stats.FieldGoalsAttempted(c),
		FieldGoalPct:        stats.FormatPct(stats.FieldGoalPct(c)),
		ThreePointPct:       stats.FormatPct(stats.ThreePointPct(c)),
		FreeThrowPct:        stats.FormatPct(stats.FreeThrowPct(c)),
		Rebounds:            stats.Rebounds(c),
	}
}

// SessionDTO is the live game state.
type SessionDTO struct {
	Player   string       `json:"player"`
	Opponent string       `json:"opponent"`
	GameDate string       `json:"gameDate"`
	Note     string       `json:"note,omitempty"`
	ScopeID  string       `json:"scopeId"`
	Counts   stats.Counts `json:"counts"`
	Derived  DerivedDTO   `json:"derived"`
	CanUndo  bool         `json:"canUndo"`
}

func sessionDTO(v app.SessionView) SessionDTO {
	return SessionDTO{
		Player:   v.Draft.Player,
		Opponent: v.Draft.Opponent,
		GameDate: v.Draft.GameDate,
		Note:     v.Draft.Note,
		ScopeID:  v.Draft.ScopeID,
		Counts:   v.Draft.Counts,
		Derived:  derivedDTO(v.Draft.Counts),
		CanUndo:  v.CanUndo,
	}
}

// RecordStatRequest is one counter tap.
type RecordStatRequest struct {
	Key   stats.StatKey `json:"key"`
	Delta int           `json:"delta"`
}

// UpdateDraftRequest replaces the draft metadata.
type UpdateDraftRequest struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
	GameDate string `json:"gameDate"`
	Note     string `json:"note"`
	ScopeID  string `json:"scopeId"`
}

// =============================================================================
// GAMES / SEASON
// =============================================================================

// GameRecordDTO is a finalized game in API responses.
type GameRecordDTO struct {
	ID        string       `json:"id"`
	CreatedAt string       `json:"createdAt"`
	GameDate  string       `json:"gameDate"`
	ScopeID   string       `json:"scopeId"`
	Opponent  string       `json:"opponent,omitempty"`
	Player    string       `json:"player"`
	Note      string       `json:"note,omitempty"`
	Counts    stats.Counts `json:"counts"`
	Derived   DerivedDTO   `json:"derived"`
}

func gameRecordDTO(r season.GameRecord) GameRecordDTO {
	return GameRecordDTO{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		GameDate:  r.GameDate,
		ScopeID:   r.ScopeID,
		Opponent:  r.Opponent,
		Player:    r.Player,
		Note:      r.Note,
		Counts:    r.Counts,
		Derived:   derivedDTO(r.Counts),
	}
}

// SeasonSummaryDTO is a player's season roll-up.
type SeasonSummaryDTO struct {
	Player          string       `json:"player"`
	ScopeID         string       `json:"scopeId"`
	Games           int          `json:"games"`
	Totals          stats.Counts `json:"totals"`
	Points          int          `json:"points"`
	PointsPerGame   string       `json:"pointsPerGame"`
	FieldGoalPct    string       `json:"fieldGoalPct"`
	ThreePointPct   string       `json:"threePointPct"`
	FreeThrowPct    string       `json:"freeThrowPct"`
	ReboundsPerGame string       `json:"reboundsPerGame"`
}

func seasonSummaryDTO(player, scopeID string, s season.Summary) SeasonSummaryDTO {
	return SeasonSummaryDTO{
		Player:          player,
		ScopeID:         scopeID,
		Games:           s.Games,
		Totals:          s.Totals,
		Points:          s.Points,
		PointsPerGame:   s.PointsPerGame.StringFixed(1),
		FieldGoalPct:    stats.FormatPct(s.FieldGoalPct),
		ThreePointPct:   stats.FormatPct(s.ThreePointPct),
		FreeThrowPct:    stats.FormatPct(s.FreeThrowPct),
		ReboundsPerGame: s.ReboundsPerGame.StringFixed(1),
	}
}

// CreateScopeRequest creates a team scope.
type CreateScopeRequest struct {
	Name string `json:"name"`
}

// =============================================================================
// BILLING
// =============================================================================

// BillingDTO is the entitlement state for display.
type BillingDTO struct {
	Plan             entitlement.Plan `json:"plan"`
	CreditsRemaining int              `json:"creditsRemaining"`
	FreeGamesLeft    int              `json:"freeGamesLeft"`
	UnlimitedUntil   string           `json:"unlimitedUntil,omitempty"`
	MayFinalize      bool             `json:"mayFinalize"`
}

func billingDTO(b app.BillingView) BillingDTO {
	dto := BillingDTO{
		Plan:             b.State.Plan,
		CreditsRemaining: b.State.CreditsRemaining,
		FreeGamesLeft:    b.FreeGamesLeft,
		MayFinalize:      b.MayFinalize,
	}
	if b.State.UnlimitedUntil != nil {
		dto.UnlimitedUntil = b.State.UnlimitedUntil.Format(time.RFC3339)
	}
	return dto
}

// CheckoutRequest starts a purchase.
type CheckoutRequest struct {
	Plan string `json:"plan"`
}

// CheckoutDTO is the redirect hand-off.
type CheckoutDTO struct {
	TransactionID string `json:"transactionId"`
	URL           string `json:"url"`
}

// RedeemRequest resumes a purchase after returning from checkout.
type RedeemRequest struct {
	TransactionID string `json:"transactionId"`
}

// ShareDTO is the rendered share text.
type ShareDTO struct {
	Text string `json:"text"`
}
