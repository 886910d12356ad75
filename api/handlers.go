/*
handlers.go - HTTP API handlers for the stat engine

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response and JSON
  serialization, and delegates every decision to the app layer.

ENDPOINTS:
  Session:
    GET    /api/session            Live game state
    PUT    /api/session            Update draft metadata
    POST   /api/session/stats      Apply one counter tap
    POST   /api/session/undo       Undo the most recent tap
    POST   /api/session/reset      Zero the counters (undoable)
    POST   /api/session/new        Start a fresh draft
    POST   /api/session/finalize   Freeze the game (entitlement-gated)

  Games / season:
    GET    /api/games              List by player+scope
    DELETE /api/games/{id}         Delete after confirmation
    GET    /api/games/{id}/share   Share text for a game
    GET    /api/season             Season totals and averages
    GET    /api/players            Player names within a scope
    GET    /api/scopes             Team scopes
    POST   /api/scopes             Create a team scope

  Billing:
    GET    /api/billing            Entitlement state
    GET    /api/billing/plans      Purchasable products
    POST   /api/billing/checkout   Create checkout, returns redirect URL
    POST   /api/billing/redeem     Resumption point after checkout

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 402: Finalize refused by the entitlement gate
  - 404: Resource not found
  - 409: Transaction not redeemable yet / plan contract violation
  - 502: Payment gateway unreachable (retryable)
  - 500: Internal errors
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtside/stat-engine/app"
	"github.com/courtside/stat-engine/entitlement"
	"github.com/courtside/stat-engine/gateway"
)

// Handler holds the app layer every endpoint delegates to.
type Handler struct {
	App *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionDTO(h.App.Session()))
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req UpdateDraftRequest
	if !decode(w, r, &req) {
		return
	}
	err := h.App.UpdateDraft(r.Context(), app.DraftMeta{
		Player:   req.Player,
		Opponent: req.Opponent,
		GameDate: req.GameDate,
		Note:     req.Note,
		ScopeID:  req.ScopeID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionDTO(h.App.Session()))
}

func (h *Handler) RecordStat(w http.ResponseWriter, r *http.Request) {
	var req RecordStatRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Delta == 0 {
		req.Delta = 1 // a bare tap is an increment
	}
	if _, err := h.App.RecordStat(r.Context(), req.Key, req.Delta); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionDTO(h.App.Session()))
}

func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.App.Undo(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionDTO(h.App.Session()))
}

func (h *Handler) ResetCounts(w http.ResponseWriter, r *http.Request) {
	if _, err := h.App.ResetCounts(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionDTO(h.App.Session()))
}

func (h *Handler) StartNewDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.App.StartNewDraft(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionDTO(h.App.Session()))
}

func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	record, err := h.App.Finalize(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameRecordDTO(record))
}

// =============================================================================
// GAME / SEASON HANDLERS
// =============================================================================

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	scopeID := r.URL.Query().Get("scope")

	var records = h.App.GamesInScope(scopeID)
	if player != "" {
		records = h.App.Games(player, scopeID)
	}

	dtos := make([]GameRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = gameRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.App.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ShareGame(w http.ResponseWriter, r *http.Request) {
	text, err := h.App.ShareText(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ShareDTO{Text: text})
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	scopeID := r.URL.Query().Get("scope")
	if player == "" {
		writeError(w, http.StatusBadRequest, "player query parameter is required", nil)
		return
	}
	summary := h.App.SeasonSummary(player, scopeID)
	writeJSON(w, http.StatusOK, seasonSummaryDTO(player, scopeID, summary))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players := h.App.Players(r.URL.Query().Get("scope"))
	if players == nil {
		players = []string{}
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *Handler) ListScopes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.App.Scopes())
}

func (h *Handler) CreateScope(w http.ResponseWriter, r *http.Request) {
	var req CreateScopeRequest
	if !decode(w, r, &req) {
		return
	}
	scope, err := h.App.AddScope(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scope)
}

// =============================================================================
// BILLING HANDLERS
// =============================================================================

func (h *Handler) GetBilling(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, billingDTO(h.App.Billing()))
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.App.Plans())
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.App.BeginCheckout(r.Context(), req.Plan)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CheckoutDTO{TransactionID: session.TransactionID, URL: session.URL})
}

func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.App.ResumeRedemption(r.Context(), req.TransactionID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, billingDTO(h.App.Billing()))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain failures onto the documented statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation failed", err)
	case errors.Is(err, entitlement.ErrFinalizeNotAllowed):
		writeError(w, http.StatusPaymentRequired, "finalize requires a purchase", err)
	case errors.Is(err, app.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found", err)
	case errors.Is(err, app.ErrNotRedeemable):
		writeError(w, http.StatusConflict, "transaction not paid yet", err)
	case errors.Is(err, entitlement.ErrUnrecognizedPlan):
		// Loud on purpose: a paid purchase with an unknown plan token
		// must be reconciled, not dropped.
		writeError(w, http.StatusConflict, "unrecognized plan token", err)
	case errors.Is(err, gateway.ErrGateway):
		writeError(w, http.StatusBadGateway, "payment gateway unavailable, try again", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}
