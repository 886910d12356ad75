package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/stat-engine/app"
	"github.com/courtside/stat-engine/entitlement"
	"github.com/courtside/stat-engine/gateway"
	"github.com/courtside/stat-engine/stats"
	"github.com/courtside/stat-engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testNow = time.Date(2026, time.May, 2, 9, 30, 0, 0, time.UTC)

type fixture struct {
	app   *app.App
	store *store.Memory
	gw    *gateway.Fake
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemory()
	gw := gateway.NewFake()
	a, err := app.New(context.Background(), app.Options{
		Store:   st,
		Gateway: gw,
		Now:     func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return &fixture{app: a, store: st, gw: gw}
}

func (f *fixture) namePlayer(t *testing.T, player string) {
	t.Helper()
	require.NoError(t, f.app.UpdateDraft(context.Background(), app.DraftMeta{Player: player}))
}

func (f *fixture) reload(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), app.Options{
		Store:   f.store,
		Gateway: f.gw,
		Now:     func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return a
}

// redeemCredit walks the full purchase flow on the fake gateway and
// returns the transaction id.
func (f *fixture) redeemCredit(t *testing.T, planToken string) string {
	t.Helper()
	ctx := context.Background()
	session, err := f.app.BeginCheckout(ctx, planToken)
	require.NoError(t, err)
	f.gw.CompletePayment(session.TransactionID)
	_, err = f.app.ResumeRedemption(ctx, session.TransactionID)
	require.NoError(t, err)
	return session.TransactionID
}

// =============================================================================
// FIRST RUN
// =============================================================================

func TestNew_FirstRun_MaterializesDefaults(t *testing.T) {
	f := newFixture(t)

	scopes := f.app.Scopes()
	require.Len(t, scopes, 1)
	assert.Equal(t, "My Team", scopes[0].Name)

	b := f.app.Billing()
	assert.Equal(t, entitlement.PlanFree, b.State.Plan)
	assert.Equal(t, entitlement.TrialLimit, b.FreeGamesLeft)
	assert.True(t, b.MayFinalize)

	v := f.app.Session()
	assert.Equal(t, scopes[0].ID, v.Draft.ScopeID, "draft is bound to the default scope")
}

func TestNew_MalformedBlobs_DegradeToDefaults(t *testing.T) {
	f := newFixture(t)
	f.store.Corrupt(store.KeyDraft, []byte(`{"counts": "nope"`))
	f.store.Corrupt(store.KeyGames, []byte(`12`))
	f.store.Corrupt(store.KeyEntitlement, []byte(`garbage`))
	f.store.Corrupt(store.KeyRedemptions, []byte(`[`))

	a := f.reload(t)

	assert.True(t, a.Session().Draft.Counts.IsZero())
	assert.Empty(t, a.GamesInScope(a.Scopes()[0].ID))
	assert.Equal(t, entitlement.PlanFree, a.Billing().State.Plan)
}

// =============================================================================
// LIVE SESSION
// =============================================================================

func TestRecordStat_Undo_WriteThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.RecordStat(ctx, stats.TwoPointMade, 1)
	require.NoError(t, err)
	counts, err := f.app.RecordStat(ctx, stats.Assist, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.TwoPointMade)

	// Draft survives a reload; history does not.
	a2 := f.reload(t)
	assert.Equal(t, counts, a2.Session().Draft.Counts)
	assert.False(t, a2.Session().CanUndo)

	// Undo in the live app reverses the assist.
	counts, err = f.app.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Assist)
	assert.Equal(t, 1, counts.TwoPointMade)
}

func TestRecordStat_UnknownKey_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.RecordStat(context.Background(), "dunks", 1)

	assert.True(t, errors.Is(err, app.ErrValidation))
}

func TestResetCounts_IsUndoable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.app.RecordStat(ctx, stats.Steal, 1)
	require.NoError(t, err)

	zeroed, err := f.app.ResetCounts(ctx)
	require.NoError(t, err)
	assert.True(t, zeroed.IsZero())

	restored, err := f.app.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, restored)
}

// =============================================================================
// FINALIZE - Validation, trial gate, pipeline
// =============================================================================

func TestFinalize_MissingPlayer_BlocksWithoutMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.app.RecordStat(ctx, stats.TwoPointMade, 1)
	require.NoError(t, err)

	_, err = f.app.Finalize(ctx)

	assert.True(t, errors.Is(err, app.ErrValidation))
	assert.Equal(t, entitlement.TrialLimit, f.app.Billing().FreeGamesLeft, "no entitlement consumed")
	assert.Equal(t, 1, f.app.Session().Draft.Counts.TwoPointMade, "draft untouched")
}

func TestFinalize_FreeTrial_TwoGamesThenBlocked(t *testing.T) {
	// GIVEN: a fresh free plan with TrialLimit = 2
	// WHEN: finalizing three times
	// THEN: two records exist, the third attempt fails and creates none

	f := newFixture(t)
	ctx := context.Background()
	f.namePlayer(t, "Jordan")
	scopeID := f.app.Scopes()[0].ID

	for i := 0; i < 2; i++ {
		_, err := f.app.RecordStat(ctx, stats.TwoPointMade, 1)
		require.NoError(t, err)
		_, err = f.app.Finalize(ctx)
		require.NoError(t, err)
	}

	_, err := f.app.Finalize(ctx)
	assert.True(t, errors.Is(err, entitlement.ErrFinalizeNotAllowed))

	assert.Len(t, f.app.Games("Jordan", scopeID), 2)
	assert.Equal(t, 2, f.app.Billing().State.FreeUsageCount)
	assert.False(t, f.app.Billing().MayFinalize)
}

func TestFinalize_SnapshotFrozen_HistoryCleared(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.namePlayer(t, "Jordan")
	require.NoError(t, f.app.UpdateDraft(ctx, app.DraftMeta{Player: "Jordan", Opponent: "Hawks", GameDate: "2026-05-01", Note: "great D"}))

	_, err := f.app.RecordStat(ctx, stats.ThreePointMade, 1)
	require.NoError(t, err)

	record, err := f.app.Finalize(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, record.Counts.ThreePointMade)
	assert.Equal(t, "Hawks", record.Opponent)
	assert.Equal(t, "2026-05-01", record.GameDate)
	assert.NotEmpty(t, record.ID)

	v := f.app.Session()
	assert.True(t, v.Draft.Counts.IsZero(), "live counts reset for the next game")
	assert.False(t, v.CanUndo, "history discarded on finalize")
	assert.Equal(t, "Jordan", v.Draft.Player, "player kept for the next game")
	assert.Empty(t, v.Draft.Opponent)

	// The record survives a reload.
	a2 := f.reload(t)
	got := a2.Games("Jordan", record.ScopeID)
	require.Len(t, got, 1)
	assert.Equal(t, record.ID, got[0].ID)
}

func TestFinalize_ConsumesCreditNotTrial(t *testing.T) {
	// A metered finalize must charge only the credit arm; the free
	// usage counter stays where it was (single-charge contract).

	f := newFixture(t)
	ctx := context.Background()
	f.namePlayer(t, "Jordan")
	f.redeemCredit(t, "credit_1")

	before := f.app.Billing().State
	require.Equal(t, entitlement.PlanCredits, before.Plan)

	_, err := f.app.Finalize(ctx)
	require.NoError(t, err)

	after := f.app.Billing().State
	assert.Equal(t, 0, after.CreditsRemaining)
	assert.Equal(t, before.FreeUsageCount, after.FreeUsageCount)
}

func TestDeleteGame_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.namePlayer(t, "Jordan")
	record, err := f.app.Finalize(ctx)
	require.NoError(t, err)

	require.NoError(t, f.app.DeleteGame(ctx, record.ID))
	require.NoError(t, f.app.DeleteGame(ctx, record.ID))
	require.NoError(t, f.app.DeleteGame(ctx, "never-existed"))

	assert.Empty(t, f.app.Games("Jordan", record.ScopeID))
}

// =============================================================================
// SEASON QUERIES
// =============================================================================

func TestSeasonSummary_AcrossFinalizedGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.namePlayer(t, "Jordan")
	f.redeemCredit(t, "credit_10")

	games := []map[stats.StatKey]int{
		{stats.TwoPointMade: 1},
		{stats.TwoPointMade: 2, stats.ThreePointMade: 1, stats.FreeThrowMade: 1},
		{stats.FreeThrowMade: 2},
	}
	for _, g := range games {
		for k, n := range g {
			for i := 0; i < n; i++ {
				_, err := f.app.RecordStat(ctx, k, 1)
				require.NoError(t, err)
			}
		}
		_, err := f.app.Finalize(ctx)
		require.NoError(t, err)
	}

	s := f.app.SeasonSummary("Jordan", f.app.Scopes()[0].ID)

	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 12, s.Points)
	assert.Equal(t, "4", s.PointsPerGame.String())
}

func TestScopes_PartitionGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	travel, err := f.app.AddScope(ctx, "Travel Team")
	require.NoError(t, err)
	require.NoError(t, f.app.UpdateDraft(ctx, app.DraftMeta{Player: "Jordan", ScopeID: travel.ID}))

	_, err = f.app.Finalize(ctx)
	require.NoError(t, err)

	assert.Len(t, f.app.Games("Jordan", travel.ID), 1)
	assert.Empty(t, f.app.Games("Jordan", f.app.Scopes()[0].ID))
	assert.Equal(t, []string{"Jordan"}, f.app.Players(travel.ID))
}

// =============================================================================
// BILLING - Checkout and the redemption resumption point
// =============================================================================

func TestBeginCheckout_UnknownPlan_FailsBeforeGateway(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.BeginCheckout(context.Background(), "vip_2029")

	assert.True(t, errors.Is(err, entitlement.ErrUnrecognizedPlan))
}

func TestBeginCheckout_GatewayDown_SurfacedRetryable(t *testing.T) {
	f := newFixture(t)
	f.gw.FailNext = true

	_, err := f.app.BeginCheckout(context.Background(), "credit_1")

	assert.True(t, errors.Is(err, gateway.ErrGateway))
	assert.Equal(t, entitlement.PlanFree, f.app.Billing().State.Plan, "no entitlement mutation")
}

func TestResumeRedemption_FullFlow(t *testing.T) {
	f := newFixture(t)

	txID := f.redeemCredit(t, "credit_1")

	b := f.app.Billing()
	assert.Equal(t, entitlement.PlanCredits, b.State.Plan)
	assert.Equal(t, 1, b.State.CreditsRemaining)

	// Page refresh: same transaction id again. Idempotent, and served
	// without a gateway round trip.
	f.gw.FailNext = true
	s, err := f.app.ResumeRedemption(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CreditsRemaining)
}

func TestResumeRedemption_UnpaidTransaction_NotRedeemable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.app.BeginCheckout(ctx, "credit_1")
	require.NoError(t, err)

	// Checkout abandoned: transaction exists but was never paid.
	_, err = f.app.ResumeRedemption(ctx, session.TransactionID)

	assert.True(t, errors.Is(err, app.ErrNotRedeemable))
	assert.Equal(t, entitlement.PlanFree, f.app.Billing().State.Plan)
}

func TestResumeRedemption_VerificationFailure_NoMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.app.BeginCheckout(ctx, "credit_1")
	require.NoError(t, err)
	f.gw.CompletePayment(session.TransactionID)

	f.gw.FailNext = true
	_, err = f.app.ResumeRedemption(ctx, session.TransactionID)
	assert.True(t, errors.Is(err, gateway.ErrGateway))
	assert.Equal(t, entitlement.PlanFree, f.app.Billing().State.Plan)

	// Reloading the resumption point retries and succeeds.
	_, err = f.app.ResumeRedemption(ctx, session.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entitlement.PlanCredits, f.app.Billing().State.Plan)
}

func TestRedemption_SurvivesReload(t *testing.T) {
	f := newFixture(t)
	txID := f.redeemCredit(t, "credit_10")

	a2 := f.reload(t)

	b := a2.Billing()
	assert.Equal(t, 10, b.State.CreditsRemaining)

	// Replay after reload is still a no-op.
	s, err := a2.ResumeRedemption(context.Background(), txID)
	require.NoError(t, err)
	assert.Equal(t, 10, s.CreditsRemaining)
}

// =============================================================================
// SHARE
// =============================================================================

func TestShareText_RendersBoxScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.app.UpdateDraft(ctx, app.DraftMeta{Player: "Jordan", Opponent: "Hawks", GameDate: "2026-05-01"}))
	_, err := f.app.RecordStat(ctx, stats.TwoPointMade, 1)
	require.NoError(t, err)

	record, err := f.app.Finalize(ctx)
	require.NoError(t, err)

	text, err := f.app.ShareText(record.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Jordan")
	assert.Contains(t, text, "vs Hawks")
	assert.Contains(t, text, "PTS 2")
	assert.Contains(t, text, "FG 1/1 (100.0%)")
}

func TestShareText_MissingGame(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.ShareText("nope")

	assert.True(t, errors.Is(err, app.ErrGameNotFound))
}
