package app

import (
	"fmt"
	"strings"

	"github.com/courtside/stat-engine/stats"
)

// ShareText renders a finalized game as plain text for the device
// share sheet. Cosmetic only; not part of ledger correctness.
func (a *App) ShareText(id string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.games.Get(id)
	if !ok {
		return "", ErrGameNotFound
	}

	c := r.Counts
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s", r.Player, r.GameDate)
	if r.Opponent != "" {
		fmt.Fprintf(&b, " vs %s", r.Opponent)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "PTS %d | REB %d | AST %d | STL %d\n",
		stats.Points(c), stats.Rebounds(c), c.Assist, c.Steal)
	fmt.Fprintf(&b, "FG %d/%d (%s)  3PT %d/%d  FT %d/%d (%s)\n",
		stats.FieldGoalsMade(c), stats.FieldGoalsAttempted(c), stats.FormatPct(stats.FieldGoalPct(c)),
		c.ThreePointMade, stats.ThreePointAttempted(c),
		c.FreeThrowMade, stats.FreeThrowsAttempted(c), stats.FormatPct(stats.FreeThrowPct(c)))
	fmt.Fprintf(&b, "TO %d  PF %d", c.Turnover, c.Foul)
	if r.Note != "" {
		b.WriteString("\n" + r.Note)
	}
	return b.String(), nil
}
