package session

import (
	"fmt"

	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/commandlog"
	"github.com/boardsmith/boardsmith/internal/element"
)

// Reconstruct rebuilds a game from def/configs/settings/seed and replays
// entries in order. Replay trusts the log: selection validation and
// turn/availability checks are skipped (the entries are historical fact),
// while the action's Execute function still runs so derived state and
// emitted animation events reproduce exactly (spec §4.4: "validation
// disabled for non-random checks"). Determinism comes from the seed feeding
// every randomized decision identically on every reconstruction.
func Reconstruct(def Definition, configs []element.PlayerConfig, settings element.Settings, seed int64, entries []commandlog.Entry) (*Game, error) {
	g, err := New(def, configs, settings, &seed)
	if err != nil {
		return nil, fmt.Errorf("session: reconstruct: %w", err)
	}

	for _, entry := range entries {
		if err := g.applyHistorical(entry); err != nil {
			return nil, fmt.Errorf("session: reconstruct: entry %d: %w", entry.Index, err)
		}
	}
	return g, nil
}

// applyHistorical runs one already-validated entry's execute function
// directly and advances the flow, bypassing PerformAction's turn/selection
// checks.
func (g *Game) applyHistorical(entry commandlog.Entry) error {
	def, ok := findAction(g.Def.Actions, entry.ActionName)
	if !ok {
		return fmt.Errorf("unknown action %q", entry.ActionName)
	}
	player := g.Element.PlayerBySeat(entry.Player)
	ctx := &action.Context{Game: g.Element, Player: player, Args: entry.Args}

	if def.Execute != nil {
		result, err := def.Execute(entry.Args, ctx)
		if err != nil {
			return fmt.Errorf("replayed execute for %q: %w", entry.ActionName, err)
		}
		if result.FollowUp != nil {
			g.followUpQueue = append(g.followUpQueue, *result.FollowUp)
		}
	}
	g.advance()
	return nil
}

// StateAt reconstructs the game through entries[0:k] (exclusive of k) and
// returns seat's view at that point — read-only, and never replaces the
// live game (spec §4.4 "time travel").
func StateAt(def Definition, configs []element.PlayerConfig, settings element.Settings, seed int64, log *commandlog.Log, k, seat int) (StateView, error) {
	g, err := Reconstruct(def, configs, settings, seed, log.At(k))
	if err != nil {
		return StateView{}, err
	}
	return g.GetState(seat), nil
}

// History returns the full command log in append order (spec §4.6
// "getHistory()").
func (g *Game) History() []commandlog.Entry {
	return g.Log.Entries()
}
